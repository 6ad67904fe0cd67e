package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Entry is one shared translation. Text columns hold escaped table text so any byte
// sequence survives a text column.
type Entry struct {
	ID          uint      `gorm:"primaryKey;column:id"`
	Digest      string    `gorm:"column:digest;type:char(64);uniqueIndex;not null"`
	Original    string    `gorm:"column:original;type:text;not null"`
	Translation string    `gorm:"column:translation;type:text;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Entry) TableName() string {
	return "translation_entries"
}

// Digest returns the hex sha256 of the raw original bytes, the entry's unique key.
func Digest(original string) string {
	sum := sha256.Sum256([]byte(original))
	return hex.EncodeToString(sum[:])
}
