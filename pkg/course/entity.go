package course

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("course not found")
	ErrIDRequired     = errors.New("course id is required")
	ErrInvalidID      = errors.New("invalid course id")
	ErrHasEnrollments = errors.New("course has enrollments")
	ErrTitleRequired  = errors.New("course title is required")
)

// Course is a catalogue entry owned by the admin that created it.
type Course struct {
	ID          uuid.UUID
	Title       string
	Description string
	ImageURL    string
	Duration    string // free text, e.g. "12 weeks"
	Level       string
	AdminID     uuid.UUID
	CreatedAt   time.Time
}

// Patch holds a partial update; nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	ImageURL    *string
	Duration    *string
	Level       *string
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.ImageURL == nil && p.Duration == nil && p.Level == nil
}

// Apply returns c with the patch fields written over it.
func (p Patch) Apply(c Course) Course {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.ImageURL != nil {
		c.ImageURL = *p.ImageURL
	}
	if p.Duration != nil {
		c.Duration = *p.Duration
	}
	if p.Level != nil {
		c.Level = *p.Level
	}
	return c
}

// Repository is the storage port for courses.
type Repository interface {
	Create(ctx context.Context, c Course) (Course, error)
	Get(ctx context.Context, id uuid.UUID) (Course, error)
	List(ctx context.Context) ([]Course, error)
	Update(ctx context.Context, c Course) (Course, error)
	// Delete removes the course with its lessons, assignments and submissions.
	// It fails with ErrHasEnrollments while any student is enrolled.
	Delete(ctx context.Context, id uuid.UUID) error
}
