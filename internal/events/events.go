package events

import "time"

const (
	TypeBookingCreated = "booking:created"
	TypeBookingDeleted = "booking:deleted"
)

// Event is the unit published on the bus. Payload must be JSON-marshalable
// since subscribers forward it over websocket and Kafka as-is.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// BookingCreatedPayload carries enough detail for live UI refresh and the
// notification fan-out without a second read of the ledger.
type BookingCreatedPayload struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Subject     string    `json:"subject,omitempty"`
	Sections    []string  `json:"sections"`
	Years       []int     `json:"years"`
	Department  string    `json:"department"`
	RoomID      string    `json:"room"`
	UserID      string    `json:"-"`
	Date        time.Time `json:"date"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

type BookingDeletedPayload struct {
	ID string `json:"id"`
}
