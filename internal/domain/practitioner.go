package domain

import "time"

// Practitioner models a clinician or administrator account.
type Practitioner struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Specialty    *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
