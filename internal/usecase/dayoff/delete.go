package dayoff

import (
	"context"

	"github.com/crewapp/crew-scheduler/internal/audit"
	"github.com/crewapp/crew-scheduler/internal/cache"
	domain "github.com/crewapp/crew-scheduler/internal/domain/dayoff"
	"github.com/crewapp/crew-scheduler/internal/httperr"
)

type DeleteDayOff struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Cache
}

func NewDeleteDayOff(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Cache,
) *DeleteDayOff {
	return &DeleteDayOff{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *DeleteDayOff) Execute(
	ctx context.Context,
	userID uint,
	id uint,
	scope domain.Scope,
) error {

	row, err := uc.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return httperr.ErrBusiness("dayoff_not_found")
	}

	if !row.Repeat || row.SeriesID == "" {
		scope = domain.ScopeSingle
	}

	switch scope {
	case domain.ScopeSingle:
		err = uc.repo.Delete(ctx, row)
	case domain.ScopeFuture:
		err = uc.repo.DeleteSeriesFrom(ctx, userID, row.SeriesID, row.InitHour)
	case domain.ScopeAll:
		err = uc.repo.DeleteSeries(ctx, userID, row.SeriesID)
	default:
		return httperr.ErrBusiness("invalid_scope")
	}
	if err != nil {
		return err
	}

	uc.cache.InvalidateUser(ctx, userID)

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "dayoff_deleted",
		Entity:   "dayoff",
		EntityID: &row.ID,
		Metadata: map[string]any{"scope": string(scope)},
	})

	return nil
}
