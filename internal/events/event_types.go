package events

import (
	"time"

	"github.com/medisphere/care-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded     EventType = "login_succeeded"
	EventLoginFailed        EventType = "login_failed"
	EventPatientRegistered  EventType = "patient_registered"
	EventAppointmentCreated EventType = "appointment_created"
)

// Event represents an audit event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LoginSucceededPayload payload.
type LoginSucceededPayload struct {
	Role *domain.Role `json:"role,omitempty"`
}

// LoginFailedPayload payload.
type LoginFailedPayload struct {
	Reason string `json:"reason"`
}

// AppointmentCreatedPayload payload.
type AppointmentCreatedPayload struct {
	AppointmentID  string    `json:"appointment_id"`
	PractitionerID string    `json:"practitioner_id"`
	ScheduledAt    time.Time `json:"scheduled_at"`
}
