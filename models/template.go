package models

import "time"

// TimeBlock is a local start/end range within one day, walked in steps of
// SlotDuration+BufferMinutes when slots are generated.
type TimeBlock struct {
	StartTime     string `bson:"startTime" json:"startTime"`         // local "HH:MM"
	EndTime       string `bson:"endTime" json:"endTime"`             // local "HH:MM", exclusive
	SlotDuration  int    `bson:"slotDuration" json:"slotDuration"`   // minutes, 15-480
	BufferMinutes int    `bson:"bufferMinutes" json:"bufferMinutes"` // minutes, 0-120
}

// DailyConfig holds one weekday's setup within a weekly template.
type DailyConfig struct {
	Enabled bool        `bson:"enabled" json:"enabled"`
	Blocks  []TimeBlock `bson:"blocks,omitempty" json:"blocks,omitempty"`
}

// BillingOverride attaches invoice terms to a template; when present, slots
// generated from the template carry it and booking creation raises an invoice.
type BillingOverride struct {
	Amount    float64 `bson:"amount" json:"amount"`
	Currency  string  `bson:"currency" json:"currency"`
	DueInDays int     `bson:"dueInDays" json:"dueInDays"`
}

// TemplateStatus marks whether a template is producing slots.
type TemplateStatus string

const (
	TemplateActive   TemplateStatus = "active"
	TemplateInactive TemplateStatus = "inactive"
)

// WeeklyTemplate is a provider's recurring availability definition.
// Days is indexed by time.Weekday (0 = Sunday).
type WeeklyTemplate struct {
	ID                string           `bson:"id" json:"id"`
	Owner             string           `bson:"owner" json:"owner"`
	Timezone          string           `bson:"timezone" json:"timezone"` // IANA zone name
	Days              [7]DailyConfig   `bson:"days" json:"days"`
	MinBookingMinutes int              `bson:"minBookingMinutes" json:"minBookingMinutes"` // 0-4320
	MaxBookingDays    int              `bson:"maxBookingDays" json:"maxBookingDays"`       // 0-365
	SlotDuration      int              `bson:"slotDuration" json:"slotDuration"`           // default for blocks that omit it
	BufferMinutes     int              `bson:"bufferMinutes" json:"bufferMinutes"`
	LocationTypes     []string         `bson:"locationTypes,omitempty" json:"locationTypes,omitempty"`
	DateRangeStart    string           `bson:"dateRangeStart,omitempty" json:"dateRangeStart,omitempty"` // "YYYY-MM-DD"
	DateRangeEnd      string           `bson:"dateRangeEnd,omitempty" json:"dateRangeEnd,omitempty"`
	Status            TemplateStatus   `bson:"status" json:"status"`
	Billing           *BillingOverride `bson:"billing,omitempty" json:"billing,omitempty"`
	CreatedAt         time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// MajorTemplateFields is the enumerated set of fields whose change forces
// regeneration of all future unbooked slots. Checked by name, never by
// structural diffing.
var MajorTemplateFields = []string{
	"timezone",
	"locationTypes",
	"dateRange",
	"days",
	"status",
}

// MajorFieldsChanged reports which major fields differ between two versions
// of a template.
func MajorFieldsChanged(prev, next WeeklyTemplate) []string {
	var changed []string
	if prev.Timezone != next.Timezone {
		changed = append(changed, "timezone")
	}
	if !equalStrings(prev.LocationTypes, next.LocationTypes) {
		changed = append(changed, "locationTypes")
	}
	if prev.DateRangeStart != next.DateRangeStart || prev.DateRangeEnd != next.DateRangeEnd {
		changed = append(changed, "dateRange")
	}
	if !equalDays(prev.Days, next.Days) {
		changed = append(changed, "days")
	}
	if prev.Status != next.Status {
		changed = append(changed, "status")
	}
	return changed
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalDays(a, b [7]DailyConfig) bool {
	for i := range a {
		if a[i].Enabled != b[i].Enabled || len(a[i].Blocks) != len(b[i].Blocks) {
			return false
		}
		for j := range a[i].Blocks {
			if a[i].Blocks[j] != b[i].Blocks[j] {
				return false
			}
		}
	}
	return true
}
