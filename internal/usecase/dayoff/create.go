package dayoff

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crewapp/crew-scheduler/internal/audit"
	"github.com/crewapp/crew-scheduler/internal/cache"
	domain "github.com/crewapp/crew-scheduler/internal/domain/dayoff"
	"github.com/crewapp/crew-scheduler/internal/httperr"
	"github.com/crewapp/crew-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateDayOffInput struct {
	UserID uint

	InitHour time.Time
	EndHour  time.Time

	Repeat      bool
	RepeatType  string
	RepeatValue string
}

// ======================================================
// USE CASE
// ======================================================

type CreateDayOff struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Cache
}

func NewCreateDayOff(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Cache,
) *CreateDayOff {
	return &CreateDayOff{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute expands the draft into its occurrence rows and persists them.
// The returned row is the base occurrence (the one the draft described).
func (uc *CreateDayOff) Execute(
	ctx context.Context,
	in CreateDayOffInput,
) (*models.DayOff, error) {

	if in.EndHour.Before(in.InitHour) {
		return nil, httperr.ErrBusiness("invalid_time_range")
	}

	repeatType := domain.RepeatNone
	count := 1

	if in.Repeat {
		rt, err := domain.ParseRepeatType(in.RepeatType)
		if err != nil {
			return nil, err
		}
		if rt == domain.RepeatNone {
			return nil, httperr.ErrBusiness("invalid_repeat_type")
		}
		repeatType = rt

		count, err = domain.ParseOccurrenceCount(in.RepeatValue)
		if err != nil {
			return nil, err
		}
	}

	occurrences, err := domain.Expand(in.InitHour, in.EndHour, repeatType, count)
	if err != nil {
		return nil, err
	}

	seriesID := ""
	if in.Repeat {
		seriesID = uuid.NewString()
	}

	rows := make([]*models.DayOff, 0, len(occurrences))
	for _, occ := range occurrences {
		row := &models.DayOff{
			UserID:   in.UserID,
			SeriesID: seriesID,
			InitHour: occ.InitHour,
			EndHour:  occ.EndHour,
			Repeat:   in.Repeat,
		}
		if in.Repeat {
			row.RepeatType = string(repeatType)
			row.RepeatValue = in.RepeatValue
		}
		rows = append(rows, row)
	}

	if err := uc.repo.CreateBatch(ctx, rows); err != nil {
		return nil, err
	}

	uc.cache.InvalidateUser(ctx, in.UserID)

	base := rows[0]
	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "dayoff_created",
		Entity:   "dayoff",
		EntityID: &base.ID,
		Metadata: map[string]any{
			"occurrences": len(rows),
			"repeat":      in.Repeat,
		},
	})

	return base, nil
}
