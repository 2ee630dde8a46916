package models

import "time"

// RecurrenceType is the unit a recurring exception steps by.
type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceYearly  RecurrenceType = "yearly"
)

// RecurrencePattern describes how a schedule exception repeats.
type RecurrencePattern struct {
	Type           RecurrenceType `bson:"type" json:"type"`
	Interval       int            `bson:"interval,omitempty" json:"interval,omitempty"` // default 1
	DaysOfWeek     []time.Weekday `bson:"daysOfWeek,omitempty" json:"daysOfWeek,omitempty"`
	DayOfMonth     int            `bson:"dayOfMonth,omitempty" json:"dayOfMonth,omitempty"`
	EndDate        *time.Time     `bson:"endDate,omitempty" json:"endDate,omitempty"`
	MaxOccurrences int            `bson:"maxOccurrences,omitempty" json:"maxOccurrences,omitempty"` // default 100
}

// ScheduleException is an owner-declared blackout interval, optionally
// recurring, that suppresses generated slots. Occurrences are computed on
// demand and never persisted individually.
type ScheduleException struct {
	ID            string             `bson:"id" json:"id"`
	Event         string             `bson:"event" json:"event"`
	Owner         string             `bson:"owner" json:"owner"`
	Timezone      string             `bson:"timezone" json:"timezone"` // IANA zone; recurring occurrences keep local wall time in it
	StartDatetime time.Time          `bson:"startDatetime" json:"startDatetime"` // UTC
	EndDatetime   time.Time          `bson:"endDatetime" json:"endDatetime"`     // UTC, must exceed StartDatetime
	Reason        string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Recurring     bool               `bson:"recurring" json:"recurring"`
	Pattern       *RecurrencePattern `bson:"pattern,omitempty" json:"pattern,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
