package dayoff

import (
	"context"
	"time"

	"github.com/crewapp/crew-scheduler/internal/audit"
	"github.com/crewapp/crew-scheduler/internal/cache"
	domain "github.com/crewapp/crew-scheduler/internal/domain/dayoff"
	"github.com/crewapp/crew-scheduler/internal/httperr"
	"github.com/crewapp/crew-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type UpdateDayOffInput struct {
	InitHour time.Time
	EndHour  time.Time
}

// ======================================================
// USE CASE
// ======================================================

type UpdateDayOff struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Cache
}

func NewUpdateDayOff(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Cache,
) *UpdateDayOff {
	return &UpdateDayOff{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute applies the new interval to the addressed occurrence and, for
// future/all scopes, shifts every sibling occurrence by the same deltas.
// Shifting (rather than overwriting) keeps the series cadence: changing
// 08:00-18:00 to 09:00-17:00 on one occurrence moves every selected
// occurrence's start an hour later and end an hour earlier, on its own day.
func (uc *UpdateDayOff) Execute(
	ctx context.Context,
	userID uint,
	id uint,
	scope domain.Scope,
	in UpdateDayOffInput,
) (*models.DayOff, error) {

	if in.EndHour.Before(in.InitHour) {
		return nil, httperr.ErrBusiness("invalid_time_range")
	}

	row, err := uc.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("dayoff_not_found")
	}

	// A standalone entry has no series context; scope degenerates to single.
	if !row.Repeat || row.SeriesID == "" {
		scope = domain.ScopeSingle
	}

	initDelta := in.InitHour.Sub(row.InitHour)
	endDelta := in.EndHour.Sub(row.EndHour)

	var updated *models.DayOff

	switch scope {
	case domain.ScopeSingle:
		row.InitHour = in.InitHour
		row.EndHour = in.EndHour
		if err := uc.repo.Save(ctx, row); err != nil {
			return nil, err
		}
		updated = row

	case domain.ScopeFuture, domain.ScopeAll:
		var rows []models.DayOff
		if scope == domain.ScopeFuture {
			rows, err = uc.repo.ListSeriesFrom(ctx, userID, row.SeriesID, row.InitHour)
		} else {
			rows, err = uc.repo.ListSeries(ctx, userID, row.SeriesID)
		}
		if err != nil {
			return nil, err
		}

		for i := range rows {
			rows[i].InitHour = rows[i].InitHour.Add(initDelta)
			rows[i].EndHour = rows[i].EndHour.Add(endDelta)
		}
		if err := uc.repo.SaveAll(ctx, rows); err != nil {
			return nil, err
		}

		for i := range rows {
			if rows[i].ID == row.ID {
				updated = &rows[i]
			}
		}
		if updated == nil {
			updated = row
		}

	default:
		return nil, httperr.ErrBusiness("invalid_scope")
	}

	uc.cache.InvalidateUser(ctx, userID)

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "dayoff_updated",
		Entity:   "dayoff",
		EntityID: &row.ID,
		Metadata: map[string]any{"scope": string(scope)},
	})

	return updated, nil
}
