package dayoff

import (
	"context"
	"time"

	"github.com/crewapp/crew-scheduler/internal/cache"
	domain "github.com/crewapp/crew-scheduler/internal/domain/dayoff"
	"github.com/crewapp/crew-scheduler/internal/models"
	"github.com/crewapp/crew-scheduler/internal/timezone"
)

type ListDayOffs struct {
	repo  domain.Repository
	cache *cache.Cache
	tz    string
}

func NewListDayOffs(
	repo domain.Repository,
	cache *cache.Cache,
	tz string,
) *ListDayOffs {
	return &ListDayOffs{
		repo:  repo,
		cache: cache,
		tz:    tz,
	}
}

func (uc *ListDayOffs) ExecuteAll(
	ctx context.Context,
	userID uint,
) ([]models.DayOff, error) {
	return uc.repo.ListForUser(ctx, userID)
}

// ExecuteMonth returns the occurrences overlapping the given calendar month.
// Month boundaries are taken in the deployment timezone, matching how the
// calendar view truncates days.
func (uc *ListDayOffs) ExecuteMonth(
	ctx context.Context,
	userID uint,
	year int,
	month int,
) ([]models.DayOff, error) {

	if items, ok := uc.cache.GetMonth(ctx, userID, year, month); ok {
		return items, nil
	}

	loc := timezone.Location(uc.tz)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	items, err := uc.repo.ListForPeriod(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	uc.cache.SetMonth(ctx, userID, year, month, items)
	return items, nil
}
