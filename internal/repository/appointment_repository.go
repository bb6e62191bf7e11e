package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medisphere/care-service/internal/domain"
)

// AppointmentRepository defines persistence access for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]domain.Appointment, error)
	ListByPractitioner(ctx context.Context, practitionerID string) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
}

type appointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository returns a Postgres-backed implementation.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{pool: pool}
}

const appointmentColumns = `id, patient_id, practitioner_id, scheduled_at, reason, status, created_at, updated_at`

func (r *appointmentRepository) Create(ctx context.Context, appointment *domain.Appointment) error {
	const query = `
        INSERT INTO appointments (patient_id, practitioner_id, scheduled_at, reason, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		appointment.PatientID,
		appointment.PractitionerID,
		appointment.ScheduledAt,
		appointment.Reason,
		appointment.Status,
	).Scan(&appointment.ID, &appointment.CreatedAt, &appointment.UpdatedAt)
}

func (r *appointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	const query = `SELECT ` + appointmentColumns + ` FROM appointments WHERE id=$1`

	var a domain.Appointment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.PatientID,
		&a.PractitionerID,
		&a.ScheduledAt,
		&a.Reason,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]domain.Appointment, error) {
	const query = `SELECT ` + appointmentColumns + `
        FROM appointments WHERE patient_id=$1 ORDER BY scheduled_at DESC`
	return r.list(ctx, query, patientID)
}

func (r *appointmentRepository) ListByPractitioner(ctx context.Context, practitionerID string) ([]domain.Appointment, error) {
	const query = `SELECT ` + appointmentColumns + `
        FROM appointments WHERE practitioner_id=$1 ORDER BY scheduled_at DESC`
	return r.list(ctx, query, practitionerID)
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	const query = `UPDATE appointments SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *appointmentRepository) list(ctx context.Context, query string, arg any) ([]domain.Appointment, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		var a domain.Appointment
		if err := rows.Scan(
			&a.ID,
			&a.PatientID,
			&a.PractitionerID,
			&a.ScheduledAt,
			&a.Reason,
			&a.Status,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}
