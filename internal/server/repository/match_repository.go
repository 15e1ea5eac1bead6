package repository

import (
	"context"

	"rotape-service/internal/ports/models"

	"gorm.io/gorm"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// ReplaceForEvent swaps the stored snapshot for a fresh resolution run
func (r *MatchRepository) ReplaceForEvent(ctx context.Context, eventID uint, pairs []models.MatchPair) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("event_id = ?", eventID).Delete(&models.MatchPair{}).Error; err != nil {
			return err
		}
		if len(pairs) == 0 {
			return nil
		}
		return tx.Create(&pairs).Error
	})
}

// ListByEvent returns the last resolved pairs for an event
func (r *MatchRepository) ListByEvent(ctx context.Context, eventID uint) ([]models.MatchPair, error) {
	var pairs []models.MatchPair
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("score DESC, id ASC").Find(&pairs).Error
	return pairs, err
}
