// Package metastore is the clip catalog: a sqlite table of catalogued
// recordings plus the per-split id lists that partition them. The
// dataset pipeline only ever reads from it.
package metastore

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aviaudio/chirpdata/internal/errors"
	"github.com/aviaudio/chirpdata/internal/logging"
)

// Store wraps the catalog database connection.
type Store struct {
	DB  *gorm.DB
	log *slog.Logger
}

// Open opens (creating if needed) the sqlite catalog at path and runs
// schema migration. Use ":memory:" for an ephemeral catalog in tests.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.New(fmt.Errorf("failed to open catalog database: %w", err)).
			Component("metastore").
			Category(errors.CategoryDatabase).
			FileContext(path).
			Build()
	}

	if err := db.AutoMigrate(&Clip{}); err != nil {
		return nil, errors.New(fmt.Errorf("failed to migrate catalog schema: %w", err)).
			Component("metastore").
			Category(errors.CategoryDatabase).
			Build()
	}

	return &Store{DB: db, log: logging.ForService("metastore")}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save inserts or updates one clip keyed by its clip id.
func (s *Store) Save(clip *Clip) error {
	var existing Clip
	err := s.DB.Where("clip_id = ?", clip.ClipID).First(&existing).Error
	switch {
	case err == nil:
		clip.ID = existing.ID
		return s.DB.Save(clip).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.DB.Create(clip).Error
	default:
		return err
	}
}

// GetClip fetches one catalogued clip by clip id.
func (s *Store) GetClip(clipID string) (*Clip, error) {
	var clip Clip
	err := s.DB.Where("clip_id = ?", clipID).First(&clip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.New(errors.ErrClipNotFound).
			Component("metastore").
			Category(errors.CategoryDatabase).
			ClipContext(clipID).
			Build()
	}
	if err != nil {
		return nil, err
	}
	return &clip, nil
}

// CountClips returns the number of catalogued clips.
func (s *Store) CountClips() (int64, error) {
	var count int64
	err := s.DB.Model(&Clip{}).Count(&count).Error
	return count, err
}

// ClipsForSplit returns the catalogued clips for the given split ids,
// in split-file order. Ids without a catalog row are skipped; the
// index builder accounts separately for rows whose audio is missing,
// this covers ids that were never catalogued at all.
func (s *Store) ClipsForSplit(ids []string) ([]Clip, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []Clip
	if err := s.DB.Where("clip_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]Clip, len(rows))
	for _, row := range rows {
		byID[row.ClipID] = row
	}

	ordered := make([]Clip, 0, len(rows))
	for _, id := range ids {
		if clip, ok := byID[id]; ok {
			ordered = append(ordered, clip)
		} else {
			s.log.Debug("split id not in catalog", "clip_id", id)
		}
	}
	return ordered, nil
}
