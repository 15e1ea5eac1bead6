package repository

import (
	"context"
	"errors"

	"rotape-service/internal/ports/models"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InnoDB aborts one of two transactions whose lock acquisition order crosses
const (
	mysqlErrLockDeadlock    = 1213
	mysqlErrLockWaitTimeout = 1205
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a new application record
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// GetByKey fetches an application by its key; returns (nil, nil) when absent
func (r *ApplicationRepository) GetByKey(ctx context.Context, appKey string) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).Where("app_key = ?", appKey).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetByEventAndUID fetches a user's application for an event; (nil, nil) when absent
func (r *ApplicationRepository) GetByEventAndUID(ctx context.Context, eventID, uid uint) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).Where("event_id = ? AND uid = ?", eventID, uid).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// ListByEvent returns all applications for an event
func (r *ApplicationRepository) ListByEvent(ctx context.Context, eventID uint) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&apps).Error
	return apps, err
}

// UpdateStatus sets the status of an application
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, appKey, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("app_key = ?", appKey).
		Update("status", status).Error
}

// CompareAndSetNickname commits a nickname in one transaction. The target row
// and any paid rows of the same event/category holding the candidate name are
// locked before the write, so two concurrent allocators can never both commit
// the same name. Returns false when the current nickname no longer equals
// expected, the candidate name was taken in the meantime, or InnoDB aborted
// the transaction to break a lock conflict between two allocators; the caller
// re-reads and retries in all three cases.
func (r *ApplicationRepository) CompareAndSetNickname(ctx context.Context, appKey, expected, next string) (bool, error) {
	committed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app models.Application
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("app_key = ?", appKey).
			First(&app).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if app.Nickname != expected {
			return nil
		}

		var taken int64
		err = tx.Model(&models.Application{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ? AND gender = ? AND status = ? AND nickname = ? AND app_key <> ?",
				app.EventID, app.Gender, models.StatusPaid, next, appKey).
			Count(&taken).Error
		if err != nil {
			return err
		}
		if taken > 0 {
			return nil
		}

		if err := tx.Model(&app).Update("nickname", next).Error; err != nil {
			return err
		}
		committed = true
		return nil
	})
	if lockConflict(err) {
		return false, nil
	}
	return committed, err
}

// lockConflict reports whether err is an InnoDB deadlock or lock wait
// timeout, both of which mean another allocator held conflicting locks and
// this transaction lost the race.
func lockConflict(err error) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	return mysqlErr.Number == mysqlErrLockDeadlock || mysqlErr.Number == mysqlErrLockWaitTimeout
}
