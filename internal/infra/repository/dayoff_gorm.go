package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/crewapp/crew-scheduler/internal/domain/dayoff"
	"github.com/crewapp/crew-scheduler/internal/models"
)

type DayOffGormRepository struct {
	db *gorm.DB
}

func NewDayOffGormRepository(db *gorm.DB) *DayOffGormRepository {
	return &DayOffGormRepository{db: db}
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (r *DayOffGormRepository) CreateBatch(
	ctx context.Context,
	items []*models.DayOff,
) error {
	return r.db.WithContext(ctx).Create(items).Error
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *DayOffGormRepository) GetForUser(
	ctx context.Context,
	id uint,
	userID uint,
) (*models.DayOff, error) {

	var item models.DayOff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *DayOffGormRepository) ListForUser(
	ctx context.Context,
	userID uint,
) ([]models.DayOff, error) {

	var items []models.DayOff
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("init_hour ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *DayOffGormRepository) ListForPeriod(
	ctx context.Context,
	userID uint,
	start time.Time,
	end time.Time,
) ([]models.DayOff, error) {

	// Overlap, not containment: a multi-day entry straddling the month
	// boundary still marks the visible days.
	var items []models.DayOff
	if err := r.db.WithContext(ctx).
		Where(
			"user_id = ? AND init_hour < ? AND end_hour >= ?",
			userID, end, start,
		).
		Order("init_hour ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *DayOffGormRepository) ListSeries(
	ctx context.Context,
	userID uint,
	seriesID string,
) ([]models.DayOff, error) {

	var items []models.DayOff
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND series_id = ?", userID, seriesID).
		Order("init_hour ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *DayOffGormRepository) ListSeriesFrom(
	ctx context.Context,
	userID uint,
	seriesID string,
	from time.Time,
) ([]models.DayOff, error) {

	var items []models.DayOff
	if err := r.db.WithContext(ctx).
		Where(
			"user_id = ? AND series_id = ? AND init_hour >= ?",
			userID, seriesID, from,
		).
		Order("init_hour ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *DayOffGormRepository) Save(
	ctx context.Context,
	item *models.DayOff,
) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *DayOffGormRepository) SaveAll(
	ctx context.Context,
	items []models.DayOff,
) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(&items).Error
}

// --------------------------------------------------
// Delete
// --------------------------------------------------

func (r *DayOffGormRepository) Delete(
	ctx context.Context,
	item *models.DayOff,
) error {
	return r.db.WithContext(ctx).Delete(item).Error
}

func (r *DayOffGormRepository) DeleteSeries(
	ctx context.Context,
	userID uint,
	seriesID string,
) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND series_id = ?", userID, seriesID).
		Delete(&models.DayOff{}).Error
}

func (r *DayOffGormRepository) DeleteSeriesFrom(
	ctx context.Context,
	userID uint,
	seriesID string,
	from time.Time,
) error {
	return r.db.WithContext(ctx).
		Where(
			"user_id = ? AND series_id = ? AND init_hour >= ?",
			userID, seriesID, from,
		).
		Delete(&models.DayOff{}).Error
}

// Compile-time check
var _ domain.Repository = (*DayOffGormRepository)(nil)
