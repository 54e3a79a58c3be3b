package dayoff

import (
	"context"
	"time"

	"github.com/crewapp/crew-scheduler/internal/models"
)

type Repository interface {
	// -------- Create --------
	CreateBatch(
		ctx context.Context,
		items []*models.DayOff,
	) error

	// -------- Read --------
	GetForUser(
		ctx context.Context,
		id uint,
		userID uint,
	) (*models.DayOff, error)

	ListForUser(
		ctx context.Context,
		userID uint,
	) ([]models.DayOff, error)

	// ListForPeriod returns occurrences overlapping [start, end).
	ListForPeriod(
		ctx context.Context,
		userID uint,
		start time.Time,
		end time.Time,
	) ([]models.DayOff, error)

	ListSeries(
		ctx context.Context,
		userID uint,
		seriesID string,
	) ([]models.DayOff, error)

	ListSeriesFrom(
		ctx context.Context,
		userID uint,
		seriesID string,
		from time.Time,
	) ([]models.DayOff, error)

	// -------- Write --------
	Save(
		ctx context.Context,
		item *models.DayOff,
	) error

	SaveAll(
		ctx context.Context,
		items []models.DayOff,
	) error

	// -------- Delete --------
	Delete(
		ctx context.Context,
		item *models.DayOff,
	) error

	DeleteSeries(
		ctx context.Context,
		userID uint,
		seriesID string,
	) error

	DeleteSeriesFrom(
		ctx context.Context,
		userID uint,
		seriesID string,
		from time.Time,
	) error
}
