// Package config loads the application configuration.
//
// Values come from environment variables, optionally seeded from a .env file in the config
// directory. Every field's default lives in its `default` struct tag. Nested keys map to
// upper-case variables joined by underscores:
//
//	FILES_ORIGINAL=HW.EXE
//	FILES_TABLE=strings.txt
//	SCAN_STRICT=false
//	STORAGE_BUCKET=translations
//	DATABASE_DRIVER=mysql
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	res, err := pipeline.Run(ctx, pipeline.Options{Files: cfg.Files, Scan: cfg.Scan}, l)
package config
