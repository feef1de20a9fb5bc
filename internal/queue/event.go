// Package queue defines message payloads exchanged over the message broker
// along with the publisher and the background consumer.
package queue

// BookingCreatedEvent is published after a booking request has been
// persisted.  A recurring request produces a single event covering all of
// its slots.  It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type BookingCreatedEvent struct {
	EventID   string      `json:"eventId"`
	UserID    uint64      `json:"userId"`
	DeskID    uint64      `json:"deskId"`
	DeskName  string      `json:"deskName"`
	Slots     []EventSlot `json:"slots"`
	CreatedAt string      `json:"createdAt"`
}

// EventSlot is one reserved interval inside a BookingCreatedEvent.
// Timestamps use the naive wire format shared with the HTTP API.
type EventSlot struct {
	BookingID uint64 `json:"bookingId"`
	StartAt   string `json:"startAt"`
	EndAt     string `json:"endAt"`
}
