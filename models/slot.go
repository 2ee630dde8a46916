package models

import (
	"fmt"
	"time"
)

// SlotStatus is the occupancy state of a materialized time slot.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotBlocked   SlotStatus = "blocked"
)

// TimeSlot is a single bookable, dated unit of time generated from a weekly
// template. StartTime/EndTime are UTC; Date and BlockStart identify where in
// the provider's local calendar the slot came from.
type TimeSlot struct {
	ID            string           `bson:"id" json:"id"`
	Owner         string           `bson:"owner" json:"owner"`
	Event         string           `bson:"event" json:"event"` // originating template ID
	Date          string           `bson:"date" json:"date"`   // local "YYYY-MM-DD"
	BlockStart    string           `bson:"blockStart" json:"blockStart"` // local "HH:MM" of the source time block
	LocalStart    string           `bson:"localStart" json:"localStart"` // local "HH:MM" of this slot
	StartTime     time.Time        `bson:"startTime" json:"startTime"`   // UTC
	EndTime       time.Time        `bson:"endTime" json:"endTime"`       // UTC
	Status        SlotStatus       `bson:"status" json:"status"`
	BlockReason   string           `bson:"blockReason,omitempty" json:"blockReason,omitempty"`
	BookingID     string           `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	LocationTypes []string         `bson:"locationTypes,omitempty" json:"locationTypes,omitempty"`
	Billing       *BillingOverride `bson:"billing,omitempty" json:"billing,omitempty"`
}

// SlotKey identifies a slot for idempotent re-generation: two generation runs
// over the same template may never materialize the same key twice.
type SlotKey string

// Key builds the slot's identity key from owner, local date, source block
// start and the slot's own local start.
func (s TimeSlot) Key() SlotKey {
	return MakeSlotKey(s.Owner, s.Date, s.BlockStart, s.LocalStart)
}

func MakeSlotKey(owner, date, blockStart, localStart string) SlotKey {
	return SlotKey(fmt.Sprintf("%s|%s|%s|%s", owner, date, blockStart, localStart))
}

// DurationMinutes returns the slot length in whole minutes.
func (s TimeSlot) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime) / time.Minute)
}
