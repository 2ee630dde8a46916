package scheduling

import (
	"testing"
	"time"

	"slotify/models"

	"go.uber.org/zap"
)

func testGenerator(now time.Time) *Generator {
	return &Generator{
		Now:    func() time.Time { return now },
		Logger: zap.NewNop(),
	}
}

func torontoTemplate() models.WeeklyTemplate {
	tmpl := models.WeeklyTemplate{
		ID:             "evt-1",
		Owner:          "prov-1",
		Timezone:       "America/Toronto",
		MaxBookingDays: 60,
		Status:         models.TemplateActive,
	}
	tmpl.Days[time.Monday] = models.DailyConfig{
		Enabled: true,
		Blocks: []models.TimeBlock{
			{StartTime: "09:00", EndTime: "10:00", SlotDuration: 30, BufferMinutes: 0},
		},
	}
	return tmpl
}

func TestGenerateMondayTwoSlots(t *testing.T) {
	// 2025-03-10 is a Monday after the US/Canada DST switch (Mar 9):
	// Toronto is UTC-4, so local 09:00 is 13:00Z.
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	gen := testGenerator(now)

	slots, err := gen.Generate(torontoTemplate(), DateRange{From: "2025-03-10", To: "2025-03-10"}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}

	wantStarts := []time.Time{
		time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 13, 30, 0, 0, time.UTC),
	}
	for i, slot := range slots {
		if !slot.StartTime.Equal(wantStarts[i]) {
			t.Errorf("slot %d start = %v, want %v", i, slot.StartTime, wantStarts[i])
		}
		if got := slot.DurationMinutes(); got != 30 {
			t.Errorf("slot %d duration = %d, want 30", i, got)
		}
		if slot.Status != models.SlotAvailable {
			t.Errorf("slot %d status = %s, want available", i, slot.Status)
		}
		if slot.Date != "2025-03-10" || slot.BlockStart != "09:00" {
			t.Errorf("slot %d identity = %s/%s", i, slot.Date, slot.BlockStart)
		}
	}
}

func TestGenerateBeforeDSTUsesStandardOffset(t *testing.T) {
	// 2025-03-03 is a Monday before the DST switch: Toronto is UTC-5.
	now := time.Date(2025, 2, 20, 12, 0, 0, 0, time.UTC)
	gen := testGenerator(now)

	slots, err := gen.Generate(torontoTemplate(), DateRange{From: "2025-03-03", To: "2025-03-03"}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}
	want := time.Date(2025, 3, 3, 14, 0, 0, 0, time.UTC)
	if !slots[0].StartTime.Equal(want) {
		t.Errorf("first slot start = %v, want %v (UTC-5)", slots[0].StartTime, want)
	}
}

func TestGenerateBufferSpacing(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tmpl := torontoTemplate()
	tmpl.Days[time.Monday].Blocks[0] = models.TimeBlock{
		StartTime: "09:00", EndTime: "11:00", SlotDuration: 30, BufferMinutes: 15,
	}

	slots, err := testGenerator(now).Generate(tmpl, DateRange{From: "2025-03-10", To: "2025-03-10"}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// 09:00, 09:45, 10:30; 11:15 would overrun the block end.
	if len(slots) != 3 {
		t.Fatalf("got %d slots, want 3", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if gap := slots[i].StartTime.Sub(slots[i-1].StartTime); gap != 45*time.Minute {
			t.Errorf("gap %d = %v, want 45m", i, gap)
		}
	}
}

func TestGenerateNoPartialTrailingSlot(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tmpl := torontoTemplate()
	tmpl.Days[time.Monday].Blocks[0] = models.TimeBlock{
		StartTime: "09:00", EndTime: "09:50", SlotDuration: 30, BufferMinutes: 0,
	}

	slots, err := testGenerator(now).Generate(tmpl, DateRange{From: "2025-03-10", To: "2025-03-10"}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// 09:30+30m would overrun 09:50.
	if len(slots) != 1 {
		t.Errorf("got %d slots, want 1 (no partial trailing slot)", len(slots))
	}
}

func TestGenerateSkipsSpringForwardGap(t *testing.T) {
	// Toronto springs forward at 02:00 on Sunday 2025-03-09: local 02:00
	// does not exist and would normalize onto 01:00 EST, colliding with the
	// real 01:00 slot's UTC start.
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tmpl := torontoTemplate()
	tmpl.Days[time.Monday] = models.DailyConfig{}
	tmpl.Days[time.Sunday] = models.DailyConfig{
		Enabled: true,
		Blocks: []models.TimeBlock{
			{StartTime: "01:00", EndTime: "04:00", SlotDuration: 60, BufferMinutes: 0},
		},
	}

	slots, err := testGenerator(now).Generate(tmpl, DateRange{From: "2025-03-09", To: "2025-03-09"}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// 01:00 EST and 03:00 EDT survive; the nonexistent 02:00 is dropped.
	want := []time.Time{
		time.Date(2025, 3, 9, 6, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 9, 7, 0, 0, 0, time.UTC),
	}
	if len(slots) != len(want) {
		t.Fatalf("got %d slots, want %d: %+v", len(slots), len(want), slots)
	}
	seen := make(map[time.Time]bool)
	for i, slot := range slots {
		if !slot.StartTime.Equal(want[i]) {
			t.Errorf("slot %d start = %v, want %v", i, slot.StartTime, want[i])
		}
		if seen[slot.StartTime] {
			t.Errorf("duplicate UTC start %v", slot.StartTime)
		}
		seen[slot.StartTime] = true
	}
}

func TestGenerateMinBookingNoticeCutoff(t *testing.T) {
	// 12:45Z is 08:45 Toronto time on generation day; with 30 minutes of
	// mandatory notice the 13:00Z slot is too soon but 13:30Z survives.
	now := time.Date(2025, 3, 10, 12, 45, 0, 0, time.UTC)
	tmpl := torontoTemplate()
	tmpl.MinBookingMinutes = 30

	slots, err := testGenerator(now).Generate(tmpl, DateRange{From: "2025-03-10", To: "2025-03-10"}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1", len(slots))
	}
	want := time.Date(2025, 3, 10, 13, 30, 0, 0, time.UTC)
	if !slots[0].StartTime.Equal(want) {
		t.Errorf("surviving slot start = %v, want %v", slots[0].StartTime, want)
	}
}

func TestGenerateMaxBookingDaysHorizon(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tmpl := torontoTemplate()
	tmpl.MaxBookingDays = 5 // horizon ends Mar 6, the Monday is Mar 10

	slots, err := testGenerator(now).Generate(tmpl, DateRange{From: "2025-03-10", To: "2025-03-10"}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("got %d slots, want 0 beyond the advance-booking horizon", len(slots))
	}
}

func TestGenerateIdempotence(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	gen := testGenerator(now)
	dates := DateRange{From: "2025-03-09", To: "2025-03-15"}

	first, err := gen.Generate(torontoTemplate(), dates, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("first run produced no slots")
	}

	existing := make(map[models.SlotKey]struct{}, len(first))
	for _, slot := range first {
		existing[slot.Key()] = struct{}{}
	}

	second, err := gen.Generate(torontoTemplate(), dates, existing)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("re-run produced %d slots, want 0", len(second))
	}
}

func TestGenerateUniqueUTCStarts(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tmpl := torontoTemplate()
	tmpl.Days[time.Monday].Blocks = []models.TimeBlock{
		{StartTime: "09:00", EndTime: "10:00", SlotDuration: 30, BufferMinutes: 0},
		{StartTime: "10:00", EndTime: "12:00", SlotDuration: 60, BufferMinutes: 0},
	}
	tmpl.Days[time.Tuesday] = models.DailyConfig{
		Enabled: true,
		Blocks: []models.TimeBlock{
			{StartTime: "09:00", EndTime: "10:00", SlotDuration: 30, BufferMinutes: 0},
		},
	}

	slots, err := testGenerator(now).Generate(tmpl, DateRange{From: "2025-03-09", To: "2025-03-15"}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	seen := make(map[time.Time]bool)
	for _, slot := range slots {
		if seen[slot.StartTime] {
			t.Errorf("duplicate UTC start %v", slot.StartTime)
		}
		seen[slot.StartTime] = true
	}
}

func TestGenerateSkipsDisabledAndOverlappingDays(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tmpl := torontoTemplate()
	tmpl.Days[time.Monday].Enabled = false
	tmpl.Days[time.Tuesday] = models.DailyConfig{
		Enabled: true,
		Blocks: []models.TimeBlock{
			{StartTime: "09:00", EndTime: "10:30", SlotDuration: 30, BufferMinutes: 0},
			{StartTime: "10:00", EndTime: "11:00", SlotDuration: 30, BufferMinutes: 0},
		},
	}

	slots, err := testGenerator(now).Generate(tmpl, DateRange{From: "2025-03-09", To: "2025-03-15"}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Monday disabled, Tuesday has overlapping blocks, everything else empty.
	if len(slots) != 0 {
		t.Errorf("got %d slots, want 0", len(slots))
	}
}

func TestGenerateCarriesBillingAndLocation(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tmpl := torontoTemplate()
	tmpl.LocationTypes = []string{"video", "in_person"}
	tmpl.Billing = &models.BillingOverride{Amount: 75, Currency: "cad", DueInDays: 7}

	slots, err := testGenerator(now).Generate(tmpl, DateRange{From: "2025-03-10", To: "2025-03-10"}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("no slots generated")
	}
	for _, slot := range slots {
		if slot.Billing == nil || slot.Billing.Amount != 75 {
			t.Errorf("slot %s missing billing override", slot.ID)
		}
		if len(slot.LocationTypes) != 2 {
			t.Errorf("slot %s missing location types", slot.ID)
		}
		if slot.Event != tmpl.ID || slot.Owner != tmpl.Owner {
			t.Errorf("slot %s identity fields wrong", slot.ID)
		}
	}
}

func TestGenerateBatchMatchesSingle(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	gen := testGenerator(now)
	dates := DateRange{From: "2025-03-09", To: "2025-03-15"}

	var templates []models.WeeklyTemplate
	for i := 0; i < 25; i++ { // spans three batches of 10
		tmpl := torontoTemplate()
		tmpl.ID = "evt-" + string(rune('a'+i))
		tmpl.Owner = "prov-" + string(rune('a'+i))
		templates = append(templates, tmpl)
	}

	batched, err := gen.GenerateBatch(templates, dates, nil)
	if err != nil {
		t.Fatalf("GenerateBatch: %v", err)
	}
	for _, tmpl := range templates {
		single, err := gen.Generate(tmpl, dates, nil)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		got := batched[tmpl.Owner]
		if len(got) != len(single) {
			t.Errorf("owner %s: batch %d slots, single %d", tmpl.Owner, len(got), len(single))
			continue
		}
		for i := range got {
			if !got[i].StartTime.Equal(single[i].StartTime) {
				t.Errorf("owner %s slot %d start differs", tmpl.Owner, i)
			}
		}
	}
}
