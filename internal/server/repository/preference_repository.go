package repository

import (
	"context"
	"errors"

	"rotape-service/internal/ports/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Put upserts the preference keyed by (event_id, voter_id). Resubmission
// overwrites the ranked slots and message of the existing row.
func (r *PreferenceRepository) Put(ctx context.Context, pref *models.Preference) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "event_id"}, {Name: "voter_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"first_choice", "second_choice", "third_choice", "message", "updated_at",
			}),
		}).
		Create(pref).Error
}

// GetByEventAndVoter fetches one preference record; (nil, nil) when absent
func (r *PreferenceRepository) GetByEventAndVoter(ctx context.Context, eventID, voterID uint) (*models.Preference, error) {
	var pref models.Preference
	err := r.db.WithContext(ctx).Where("event_id = ? AND voter_id = ?", eventID, voterID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// ListByEvent returns the full ledger for an event, ordered by created_at
// then voter_id so match resolution is deterministic.
func (r *PreferenceRepository) ListByEvent(ctx context.Context, eventID uint) ([]models.Preference, error) {
	var prefs []models.Preference
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC, voter_id ASC").
		Find(&prefs).Error
	return prefs, err
}
