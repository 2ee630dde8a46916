package scheduling

import (
	"context"
	"fmt"
	"time"

	exceptionRepo "slotify/database/repository/exception"
	templateRepo "slotify/database/repository/template"
	timeslotRepo "slotify/database/repository/timeslot"
	"slotify/models"
	"slotify/utils"

	"go.uber.org/zap"
)

// Service orchestrates slot generation: template lookup (through the
// owner-scoped cache), idempotency keys, exception overlay, persistence.
type Service struct {
	Templates  templateRepo.TemplateRepository
	Slots      timeslotRepo.TimeSlotRepository
	Exceptions exceptionRepo.ExceptionRepository
	Cache      *utils.TemplateCache
	Generator  *Generator
	Logger     *zap.Logger
}

func NewService(
	templates templateRepo.TemplateRepository,
	slots timeslotRepo.TimeSlotRepository,
	exceptions exceptionRepo.ExceptionRepository,
	cache *utils.TemplateCache,
) *Service {
	return &Service{
		Templates:  templates,
		Slots:      slots,
		Exceptions: exceptions,
		Cache:      cache,
		Generator:  NewGenerator(),
		Logger:     utils.GetLogger(),
	}
}

// RegenerateForOwner expands the owner's active template over the range,
// overlays schedule exceptions and persists surviving candidates. Existing
// slot keys are read first, so re-running over the same range inserts
// nothing new.
func (s *Service) RegenerateForOwner(ctx context.Context, owner string, dates DateRange, materializeBlocked bool) (int, error) {
	tmpl, err := s.template(ctx, owner)
	if err != nil {
		return 0, err
	}
	if tmpl == nil {
		return 0, fmt.Errorf("no active template for owner %s", owner)
	}

	existing, err := s.Slots.ExistingKeys(ctx, owner, dates.From, dates.To)
	if err != nil {
		return 0, err
	}

	candidates, err := s.Generator.Generate(*tmpl, dates, existing)
	if err != nil {
		return 0, err
	}

	exceptions, err := s.Exceptions.ListByOwner(ctx, owner)
	if err != nil {
		return 0, err
	}

	loc, err := time.LoadLocation(tmpl.Timezone)
	if err != nil {
		return 0, ValidationError{Field: "timezone", Message: fmt.Sprintf("unknown zone %q", tmpl.Timezone)}
	}
	horizonLocal, err := time.ParseInLocation("2006-01-02", dates.To, loc)
	if err != nil {
		return 0, ValidationError{Field: "dateRange", Message: "to date must be YYYY-MM-DD"}
	}
	horizon := horizonLocal.AddDate(0, 0, 1).UTC()

	final := ApplyExceptions(candidates, exceptions, horizon, materializeBlocked)
	inserted, err := s.Slots.InsertMany(ctx, final)
	if err != nil {
		return 0, err
	}

	s.Logger.Info("slot regeneration complete",
		zap.String("owner", owner),
		zap.String("from", dates.From),
		zap.String("to", dates.To),
		zap.Int("candidates", len(candidates)),
		zap.Int("inserted", inserted))
	return inserted, nil
}

// SaveTemplate upserts a template. When a major field changed against the
// stored version, the owner's cache entry is dropped and all future unbooked
// slots are deleted so the next regeneration rebuilds them.
func (s *Service) SaveTemplate(ctx context.Context, tmpl models.WeeklyTemplate) ([]string, error) {
	if err := validateTemplate(tmpl); err != nil {
		return nil, err
	}

	var changed []string
	prev, err := s.Templates.GetByID(ctx, tmpl.ID)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		changed = models.MajorFieldsChanged(*prev, tmpl)
	}

	tmpl.UpdatedAt = time.Now().UTC()
	if err := s.Templates.Upsert(ctx, tmpl); err != nil {
		return nil, err
	}

	if len(changed) > 0 {
		if err := s.Cache.Invalidate(ctx, tmpl.Owner); err != nil {
			s.Logger.Warn("template cache invalidation failed",
				zap.String("owner", tmpl.Owner), zap.Error(err))
		}
		deleted, err := s.Slots.DeleteFutureUnbooked(ctx, tmpl.Owner, time.Now().UTC())
		if err != nil {
			return changed, err
		}
		s.Logger.Info("major template change, future unbooked slots dropped",
			zap.String("owner", tmpl.Owner),
			zap.Strings("changedFields", changed),
			zap.Int64("deleted", deleted))
	}
	return changed, nil
}

// ApplyExceptionToMaterialized blocks already-persisted slots that fall
// inside the exception's occurrences, for owners who want blackout windows
// visible on slots generated before the exception existed.
func (s *Service) ApplyExceptionToMaterialized(ctx context.Context, exc models.ScheduleException, dates DateRange) (int, error) {
	slots, err := s.Slots.ListByOwner(ctx, exc.Owner, dates.From, dates.To)
	if err != nil {
		return 0, err
	}

	horizon := exc.EndDatetime.AddDate(1, 0, 0)
	occurrences := ExpandException(exc, horizon)

	blocked := 0
	for _, slot := range slots {
		if slot.Status == models.SlotBooked {
			continue
		}
		window := Interval{Start: slot.StartTime, End: slot.EndTime}
		for _, occ := range occurrences {
			if window.Intersects(occ) {
				if err := s.Slots.SetBlocked(ctx, slot.ID, true, exc.Reason); err != nil {
					s.Logger.Warn("failed to block slot",
						zap.String("slotId", slot.ID), zap.Error(err))
					break
				}
				blocked++
				break
			}
		}
	}
	return blocked, nil
}

func (s *Service) template(ctx context.Context, owner string) (*models.WeeklyTemplate, error) {
	if tmpl, ok := s.Cache.Get(ctx, owner); ok {
		return tmpl, nil
	}
	tmpl, err := s.Templates.GetByOwner(ctx, owner)
	if err != nil || tmpl == nil {
		return tmpl, err
	}
	if err := s.Cache.Set(ctx, *tmpl); err != nil {
		s.Logger.Warn("template cache write failed",
			zap.String("owner", owner), zap.Error(err))
	}
	return tmpl, nil
}

func validateTemplate(tmpl models.WeeklyTemplate) error {
	if tmpl.Owner == "" {
		return ValidationError{Field: "owner", Message: "owner is required"}
	}
	if _, err := time.LoadLocation(tmpl.Timezone); err != nil {
		return ValidationError{Field: "timezone", Message: fmt.Sprintf("unknown zone %q", tmpl.Timezone)}
	}
	if tmpl.MinBookingMinutes < 0 || tmpl.MinBookingMinutes > 4320 {
		return ValidationError{Field: "minBookingMinutes", Message: "outside [0,4320]"}
	}
	if tmpl.MaxBookingDays < 0 || tmpl.MaxBookingDays > 365 {
		return ValidationError{Field: "maxBookingDays", Message: "outside [0,365]"}
	}
	for wd, day := range tmpl.Days {
		if !day.Enabled {
			continue
		}
		for _, block := range day.Blocks {
			if err := ValidateBlock(block); err != nil {
				return err
			}
		}
		if conflicts := DetectOverlap(day.Blocks); len(conflicts) > 0 {
			return ValidationError{
				Field:   "days",
				Message: fmt.Sprintf("weekday %d has %d overlapping time blocks", wd, len(conflicts)),
			}
		}
	}
	return nil
}
