package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/medisphere/care-service/internal/auth"
	"github.com/medisphere/care-service/internal/config"
	"github.com/medisphere/care-service/internal/domain"
	"github.com/medisphere/care-service/internal/events"
	"github.com/medisphere/care-service/internal/repository"
	apperrors "github.com/medisphere/care-service/pkg/util/errorutil"
)

// AuthService coordinates registration and login flows. Credential
// verification happens here; minting tokens is delegated to the issuer.
type AuthService struct {
	patients      repository.PatientRepository
	practitioners repository.PractitionerRepository
	issuer        *auth.Issuer
	dispatcher    events.Dispatcher
	throttle      *LoginThrottle
	bcryptCost    int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	PatientRepo      repository.PatientRepository
	PractitionerRepo repository.PractitionerRepository
	Issuer           *auth.Issuer
	Dispatcher       events.Dispatcher
	Throttle         *LoginThrottle
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		patients:      deps.PatientRepo,
		practitioners: deps.PractitionerRepo,
		issuer:        deps.Issuer,
		dispatcher:    deps.Dispatcher,
		throttle:      deps.Throttle,
		bcryptCost:    cfg.Auth.BcryptCost,
	}
}

// RegisterPatient creates a new patient account and logs it in.
func (s *AuthService) RegisterPatient(ctx context.Context, name, email, password string) (*domain.Patient, string, time.Time, error) {
	if _, err := s.patients.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	patient := &domain.Patient{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Status:       domain.PatientStatusActive,
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.issuer.Issue(domain.Identity{Subject: patient.Email})
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.EventPatientRegistered, patient.Email, nil)
	return patient, token, exp, nil
}

// LoginPatient authenticates a patient and mints a token.
func (s *AuthService) LoginPatient(ctx context.Context, email, password string) (*domain.Patient, string, time.Time, error) {
	if !s.throttle.Allow(ctx, email) {
		return nil, "", time.Time{}, apperrors.NewTooManyRequests("too many failed login attempts")
	}

	patient, err := s.patients.GetByEmail(ctx, email)
	if err != nil {
		s.recordFailure(ctx, email, "unknown account")
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	if patient.Status != domain.PatientStatusActive {
		s.recordFailure(ctx, email, "account suspended")
		return nil, "", time.Time{}, errors.New("account suspended")
	}
	if err := auth.ComparePassword(patient.PasswordHash, password); err != nil {
		s.recordFailure(ctx, email, "bad password")
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}

	token, exp, err := s.issuer.Issue(domain.Identity{Subject: patient.Email})
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.throttle.Reset(ctx, email)
	s.publish(ctx, events.EventLoginSucceeded, patient.Email, events.LoginSucceededPayload{})
	return patient, token, exp, nil
}

// LoginPractitioner authenticates a practitioner and mints a role-bearing token.
func (s *AuthService) LoginPractitioner(ctx context.Context, email, password string) (*domain.Practitioner, string, time.Time, error) {
	if !s.throttle.Allow(ctx, email) {
		return nil, "", time.Time{}, apperrors.NewTooManyRequests("too many failed login attempts")
	}

	practitioner, err := s.practitioners.GetByEmail(ctx, email)
	if err != nil {
		s.recordFailure(ctx, email, "unknown account")
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	if !practitioner.Active {
		s.recordFailure(ctx, email, "account inactive")
		return nil, "", time.Time{}, errors.New("account inactive")
	}
	if err := auth.ComparePassword(practitioner.PasswordHash, password); err != nil {
		s.recordFailure(ctx, email, "bad password")
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}

	identity := domain.Identity{Subject: practitioner.Email, Role: &practitioner.Role}
	token, exp, err := s.issuer.Issue(identity)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.throttle.Reset(ctx, email)
	s.publish(ctx, events.EventLoginSucceeded, practitioner.Email,
		events.LoginSucceededPayload{Role: &practitioner.Role})
	return practitioner, token, exp, nil
}

// Logout no-ops server-side: tokens are stateless and expire on their own.
// The client clears its stored record.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, email, reason string) {
	s.throttle.RecordFailure(ctx, email)
	s.publish(ctx, events.EventLoginFailed, email, events.LoginFailedPayload{Reason: reason})
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subject string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
