package scheduling

import (
	"fmt"
	"time"

	"slotify/models"
	"slotify/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// templateBatchSize bounds how many templates a batch run expands at once.
const templateBatchSize = 10

// Generator expands weekly templates into dated UTC slots. Now is injectable
// so generation is deterministic under test.
type Generator struct {
	Now    func() time.Time
	Logger *zap.Logger
}

func NewGenerator() *Generator {
	return &Generator{
		Now:    time.Now,
		Logger: utils.GetLogger(),
	}
}

// DateRange is an inclusive range of provider-local calendar dates.
type DateRange struct {
	From string // "YYYY-MM-DD"
	To   string
}

// Generate expands one template over the date range, walking the provider's
// local calendar. Candidates too soon (before now+MinBookingMinutes), beyond
// the MaxBookingDays horizon, or already present in existing are skipped.
func (g *Generator) Generate(
	tmpl models.WeeklyTemplate,
	dates DateRange,
	existing map[models.SlotKey]struct{},
) ([]models.TimeSlot, error) {
	loc, err := time.LoadLocation(tmpl.Timezone)
	if err != nil {
		return nil, ValidationError{Field: "timezone", Message: fmt.Sprintf("unknown zone %q", tmpl.Timezone)}
	}
	from, err := time.ParseInLocation("2006-01-02", dates.From, loc)
	if err != nil {
		return nil, ValidationError{Field: "dateRange", Message: "from date must be YYYY-MM-DD"}
	}
	to, err := time.ParseInLocation("2006-01-02", dates.To, loc)
	if err != nil {
		return nil, ValidationError{Field: "dateRange", Message: "to date must be YYYY-MM-DD"}
	}

	now := g.Now().UTC()
	notBefore := now.Add(time.Duration(tmpl.MinBookingMinutes) * time.Minute)
	localToday := now.In(loc)
	horizonDate := time.Date(localToday.Year(), localToday.Month(), localToday.Day(), 0, 0, 0, 0, loc).
		AddDate(0, 0, tmpl.MaxBookingDays)

	var slots []models.TimeSlot
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.After(horizonDate) {
			continue
		}
		day := tmpl.Days[d.Weekday()]
		if !day.Enabled || len(day.Blocks) == 0 {
			continue
		}
		if conflicts := DetectOverlap(day.Blocks); len(conflicts) > 0 {
			g.Logger.Warn("skipping day with overlapping time blocks",
				zap.String("owner", tmpl.Owner),
				zap.String("date", d.Format("2006-01-02")),
				zap.Int("conflicts", len(conflicts)))
			continue
		}
		for _, block := range day.Blocks {
			if err := ValidateBlock(block); err != nil {
				g.Logger.Warn("skipping invalid time block",
					zap.String("owner", tmpl.Owner),
					zap.String("date", d.Format("2006-01-02")),
					zap.Error(err))
				continue
			}
			slots = append(slots, g.expandBlock(tmpl, d, block, loc, notBefore, existing)...)
		}
	}
	return slots, nil
}

// expandBlock walks a single block from its local start to its local end in
// steps of slotDuration+bufferMinutes. A trailing partial slot never fits.
func (g *Generator) expandBlock(
	tmpl models.WeeklyTemplate,
	day time.Time,
	block models.TimeBlock,
	loc *time.Location,
	notBefore time.Time,
	existing map[models.SlotKey]struct{},
) []models.TimeSlot {
	startMin, _ := MinutesOfDay(block.StartTime)
	endMin, _ := MinutesOfDay(block.EndTime)
	step := block.SlotDuration + block.BufferMinutes
	dateStr := day.Format("2006-01-02")

	var out []models.TimeSlot
	for m := startMin; m+block.SlotDuration <= endMin; m += step {
		localStart := time.Date(day.Year(), day.Month(), day.Day(), m/60, m%60, 0, 0, loc)
		// A wall time inside a spring-forward gap normalizes into the
		// adjacent hour and would collide with a real slot's UTC start.
		if localStart.Hour()*60+localStart.Minute() != m || localStart.Day() != day.Day() {
			continue
		}
		utcStart := localStart.UTC()
		if utcStart.Before(notBefore) {
			continue
		}
		key := models.MakeSlotKey(tmpl.Owner, dateStr, block.StartTime, formatMinutes(m))
		if _, dup := existing[key]; dup {
			continue
		}
		out = append(out, models.TimeSlot{
			ID:            uuid.New().String(),
			Owner:         tmpl.Owner,
			Event:         tmpl.ID,
			Date:          dateStr,
			BlockStart:    block.StartTime,
			LocalStart:    formatMinutes(m),
			StartTime:     utcStart,
			EndTime:       utcStart.Add(time.Duration(block.SlotDuration) * time.Minute),
			Status:        models.SlotAvailable,
			LocationTypes: tmpl.LocationTypes,
			Billing:       tmpl.Billing,
		})
	}
	return out
}

// GenerateBatch expands many templates over a shared range in fixed-size
// batches to bound peak memory. Ordering and per-template results match what
// one-at-a-time generation would produce.
func (g *Generator) GenerateBatch(
	templates []models.WeeklyTemplate,
	dates DateRange,
	existingByOwner map[string]map[models.SlotKey]struct{},
) (map[string][]models.TimeSlot, error) {
	results := make(map[string][]models.TimeSlot, len(templates))
	for lo := 0; lo < len(templates); lo += templateBatchSize {
		hi := lo + templateBatchSize
		if hi > len(templates) {
			hi = len(templates)
		}
		for _, tmpl := range templates[lo:hi] {
			slots, err := g.Generate(tmpl, dates, existingByOwner[tmpl.Owner])
			if err != nil {
				g.Logger.Error("batch generation failed for template",
					zap.String("owner", tmpl.Owner),
					zap.String("template", tmpl.ID),
					zap.Error(err))
				continue
			}
			results[tmpl.Owner] = append(results[tmpl.Owner], slots...)
		}
	}
	return results, nil
}
