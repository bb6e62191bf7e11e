package dto

import (
	"time"

	"github.com/medisphere/care-service/internal/domain"
)

// AppointmentCreateRequest payload for booking.
type AppointmentCreateRequest struct {
	PractitionerID string    `json:"practitioner_id"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	Reason         string    `json:"reason"`
}

// AppointmentResponse is the wire shape for an appointment.
type AppointmentResponse struct {
	ID             string    `json:"id"`
	PatientID      string    `json:"patient_id"`
	PractitionerID string    `json:"practitioner_id"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	Reason         string    `json:"reason"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// FromAppointment maps a domain appointment to its response shape.
func FromAppointment(a domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:             a.ID,
		PatientID:      a.PatientID,
		PractitionerID: a.PractitionerID,
		ScheduledAt:    a.ScheduledAt,
		Reason:         a.Reason,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
	}
}

// FromAppointments maps a slice of appointments.
func FromAppointments(appointments []domain.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, FromAppointment(a))
	}
	return out
}
