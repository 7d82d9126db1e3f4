package enrollment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/prudvireddyNS/mentor/pkg/course"
)

var ErrAlreadyEnrolled = errors.New("already enrolled")

// Enrollment binds a student to a course.
type Enrollment struct {
	ID         uuid.UUID
	StudentID  uuid.UUID
	CourseID   uuid.UUID
	EnrolledAt time.Time
	Progress   float64 // percent of the course completed
}

// EnrolledCourse is a course as seen from a student's enrollment list.
type EnrolledCourse struct {
	EnrollmentID uuid.UUID
	Course       course.Course
	EnrolledAt   time.Time
}

type Repository interface {
	// Create fails with ErrAlreadyEnrolled when the pair already exists.
	Create(ctx context.Context, e Enrollment) (Enrollment, error)
	IsEnrolled(ctx context.Context, studentID, courseID uuid.UUID) (bool, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]EnrolledCourse, error)
}

// CourseReader is the slice of the course catalogue enrollment needs.
type CourseReader interface {
	Get(ctx context.Context, id uuid.UUID) (course.Course, error)
}
