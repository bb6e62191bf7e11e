package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/medisphere/care-service/internal/domain"
	"github.com/medisphere/care-service/internal/events"
	"github.com/medisphere/care-service/internal/repository"
	apperrors "github.com/medisphere/care-service/pkg/util/errorutil"
)

// AppointmentService exposes the booking slice. Callers are identified by
// the token subject; the service resolves it to an account per request.
type AppointmentService struct {
	appointments  repository.AppointmentRepository
	patients      repository.PatientRepository
	practitioners repository.PractitionerRepository
	dispatcher    events.Dispatcher
}

// NewAppointmentService builds the service.
func NewAppointmentService(
	appointments repository.AppointmentRepository,
	patients repository.PatientRepository,
	practitioners repository.PractitionerRepository,
	dispatcher events.Dispatcher,
) *AppointmentService {
	return &AppointmentService{
		appointments:  appointments,
		patients:      patients,
		practitioners: practitioners,
		dispatcher:    dispatcher,
	}
}

// Book creates an appointment for the calling patient.
func (s *AppointmentService) Book(ctx context.Context, caller domain.Identity, practitionerID string, scheduledAt time.Time, reason string) (*domain.Appointment, error) {
	patient, err := s.patients.GetByEmail(ctx, caller.Subject)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewForbidden("patient account required")
		}
		return nil, err
	}

	practitioner, err := s.practitioners.GetByID(ctx, practitionerID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("practitioner", nil)
		}
		return nil, err
	}
	if !practitioner.Active {
		return nil, apperrors.NewValidationError("practitioner not accepting appointments", nil)
	}
	if !scheduledAt.After(time.Now()) {
		return nil, apperrors.NewValidationError("scheduled_at must be in the future", nil)
	}

	appointment := &domain.Appointment{
		PatientID:      patient.ID,
		PractitionerID: practitioner.ID,
		ScheduledAt:    scheduledAt,
		Reason:         reason,
		Status:         domain.AppointmentStatusRequested,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAppointmentCreated,
			Subject:   caller.Subject,
			Timestamp: time.Now(),
			Payload: events.AppointmentCreatedPayload{
				AppointmentID:  appointment.ID,
				PractitionerID: practitioner.ID,
				ScheduledAt:    scheduledAt,
			},
		})
	}
	return appointment, nil
}

// ListForPatient returns the calling patient's appointments.
func (s *AppointmentService) ListForPatient(ctx context.Context, caller domain.Identity) ([]domain.Appointment, error) {
	patient, err := s.patients.GetByEmail(ctx, caller.Subject)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewForbidden("patient account required")
		}
		return nil, err
	}
	return s.appointments.ListByPatient(ctx, patient.ID)
}

// ListForPractitioner returns the calling practitioner's schedule.
func (s *AppointmentService) ListForPractitioner(ctx context.Context, caller domain.Identity) ([]domain.Appointment, error) {
	practitioner, err := s.practitioners.GetByEmail(ctx, caller.Subject)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewForbidden("practitioner account required")
		}
		return nil, err
	}
	return s.appointments.ListByPractitioner(ctx, practitioner.ID)
}

// GetPatientProfile resolves the calling patient's profile.
func (s *AppointmentService) GetPatientProfile(ctx context.Context, caller domain.Identity) (*domain.Patient, error) {
	patient, err := s.patients.GetByEmail(ctx, caller.Subject)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("profile", nil)
		}
		return nil, err
	}
	return patient, nil
}

// ListPractitioners returns the practitioner directory for administrators.
func (s *AppointmentService) ListPractitioners(ctx context.Context) ([]domain.Practitioner, error) {
	return s.practitioners.List(ctx)
}
