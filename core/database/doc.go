// Package database opens the GORM connection backing the shared translation memory.
//
// Two drivers are supported: "sqlite" for a local file (the default) and "mysql" for a
// memory shared by several translators. Connect pings the database before returning, so a
// returned *gorm.DB is known to be reachable.
//
//	db, err := database.Connect(cfg.Database)
package database
