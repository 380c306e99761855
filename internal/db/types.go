package db

import (
	"time"

	"github.com/google/uuid"
)

// ProfileRow is a stored processed profile. The full normalized profile
// lives in Data; the flat columns are denormalized for listing and for the
// credibility stats population.
type ProfileRow struct {
	URNID           string
	FullName        string
	CurrentTitle    string
	CurrentCompany  string
	Location        string
	Industry        string
	EducationLevel  string
	CareerLevel     string
	YearsExperience float64
	Data            []byte
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProcessingRun records one execution of the process/vectorize pipeline.
type ProcessingRun struct {
	ID               uuid.UUID
	Kind             string
	Status           string
	ProfilesTotal    int
	ProfilesUpserted int
	StartedAt        time.Time
	CompletedAt      *time.Time
}

// Processing run statuses.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)
