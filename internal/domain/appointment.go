package domain

import "time"

// AppointmentStatus tracks the booking lifecycle.
type AppointmentStatus string

const (
	AppointmentStatusRequested AppointmentStatus = "REQUESTED"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// Appointment links a patient to a practitioner at a scheduled time.
type Appointment struct {
	ID             string
	PatientID      string
	PractitionerID string
	ScheduledAt    time.Time
	Reason         string
	Status         AppointmentStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
