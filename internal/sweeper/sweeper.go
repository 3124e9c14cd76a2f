// Package sweeper deletes images past the retention window, together
// with their comments, votes and likes.
package sweeper

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/giastylez/image-board/backend/internal/models"
)

const (
	defaultRetention = 48 * time.Hour
	defaultInterval  = time.Hour
)

type Sweeper struct {
	db        *gorm.DB
	retention time.Duration
	interval  time.Duration
}

func New(db *gorm.DB) *Sweeper {
	return &Sweeper{
		db:        db,
		retention: defaultRetention,
		interval:  defaultInterval,
	}
}

// NewWithWindow creates a sweeper with explicit retention and cycle
// interval. Used by tests.
func NewWithWindow(db *gorm.DB, retention, interval time.Duration) *Sweeper {
	return &Sweeper{db: db, retention: retention, interval: interval}
}

// Run sweeps once immediately, then once per interval until ctx is
// cancelled. A failed cycle is logged and retried next interval; the
// loop itself never returns an error.
func (s *Sweeper) Run(ctx context.Context) {
	log.Printf("Retention sweeper started (window %s, every %s)", s.retention, s.interval)

	for {
		if err := s.Sweep(); err != nil {
			log.Printf("Error in cleanup cycle: %v", err)
		}

		select {
		case <-ctx.Done():
			log.Println("Retention sweeper stopped")
			return
		case <-time.After(s.interval):
		}
	}
}

// Sweep deletes every image older than the retention window. Children
// go first, then the image; the cascade is deliberately not wrapped in
// a transaction (a crash mid-cascade may orphan children, accepted).
func (s *Sweeper) Sweep() error {
	cutoff := time.Now().UTC().Add(-s.retention)

	var old []models.Image
	if err := s.db.Where("created_at < ?", cutoff).Find(&old).Error; err != nil {
		return err
	}

	for _, image := range old {
		if err := s.db.Where("image_id = ?", image.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := s.db.Where("image_id = ?", image.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := s.db.Where("image_id = ?", image.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := s.db.Delete(&image).Error; err != nil {
			return err
		}

		log.Printf("Deleted old image: %s", image.ID)
	}

	return nil
}
