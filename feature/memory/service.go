package memory

import (
	"context"
	"fmt"

	"slotpatch/core/table"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchSize = 200

// Service reads and writes the shared translation memory.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new translation memory service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, logger: logger}
}

// Migrate creates or updates the translation_entries table.
func (s *Service) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("failed to migrate translation memory: %w", err)
	}
	return nil
}

// Push upserts every entry of tbl. An existing entry for the same original gets the
// table's translation. It returns the number of entries sent.
func (s *Service) Push(ctx context.Context, tbl *table.Table) (int, error) {
	keys := tbl.Keys()
	if len(keys) == 0 {
		return 0, nil
	}

	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		value, _ := tbl.Get(key)
		entries = append(entries, Entry{
			Digest:      Digest(key),
			Original:    table.Escape([]byte(key)),
			Translation: table.Escape([]byte(value)),
		})
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "digest"}},
			DoUpdates: clause.AssignmentColumns([]string{"translation", "updated_at"}),
		}).
		CreateInBatches(&entries, batchSize).Error
	if err != nil {
		return 0, fmt.Errorf("failed to push translations: %w", err)
	}

	s.logger.Debug("Pushed translations", zap.Int("count", len(entries)))
	return len(entries), nil
}

// Pull loads the whole memory into a table, oldest entries first.
func (s *Service) Pull(ctx context.Context) (*table.Table, error) {
	var entries []Entry
	if err := s.db.WithContext(ctx).Order("id").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to pull translations: %w", err)
	}

	tbl := table.New()
	for _, e := range entries {
		original, err := table.Unescape(e.Original)
		if err != nil {
			return nil, fmt.Errorf("translation memory entry %d: %w", e.ID, err)
		}
		translation, err := table.Unescape(e.Translation)
		if err != nil {
			return nil, fmt.Errorf("translation memory entry %d: %w", e.ID, err)
		}
		if len(translation) == 0 {
			continue
		}
		tbl.Set(string(original), string(translation))
	}

	s.logger.Debug("Pulled translations", zap.Int("count", tbl.Len()))
	return tbl, nil
}
