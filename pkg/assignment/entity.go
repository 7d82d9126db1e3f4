package assignment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/prudvireddyNS/mentor/pkg/course"
)

var (
	ErrNotFound           = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNotEnrolled        = errors.New("not enrolled in this course")
	ErrTitleRequired      = errors.New("assignment title is required")
	ErrInvalidGrade       = errors.New("grade must not be negative")
)

// Status is how an assignment looks from the viewer's side of the due date.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOverdue   Status = "overdue"
	StatusSubmitted Status = "submitted"
	StatusPast      Status = "past"
)

type Assignment struct {
	ID          uuid.UUID
	CourseID    uuid.UUID
	CourseTitle string // filled on reads
	Title       string
	Description string
	DueDate     time.Time
	TotalPoints int
	CreatedAt   time.Time
}

type Submission struct {
	ID           uuid.UUID
	AssignmentID uuid.UUID
	StudentID    uuid.UUID
	SubmittedAt  time.Time
	Content      string
	Grade        *float64
	Feedback     *string
}

func (s Submission) Graded() bool { return s.Grade != nil }

// StudentView is an assignment with the viewing student's latest submission.
type StudentView struct {
	Assignment
	Submission *Submission
	Status     Status
}

// AdminView is an assignment with submission counters.
type AdminView struct {
	Assignment
	SubmissionCount int
	GradedCount     int
	Status          Status
}

// SubmissionDetail is a submission with the author's contact data.
type SubmissionDetail struct {
	Submission
	StudentName  string
	StudentEmail string
}

type Repository interface {
	Create(ctx context.Context, a Assignment) (Assignment, error)
	Get(ctx context.Context, id uuid.UUID) (Assignment, error)
	// ListForStudent returns assignments of every course the student is enrolled in.
	ListForStudent(ctx context.Context, studentID uuid.UUID) ([]Assignment, error)
	ListWithCounts(ctx context.Context) ([]AdminView, error)

	CreateSubmission(ctx context.Context, s Submission) (Submission, error)
	// Grade fails with ErrSubmissionNotFound unless the submission belongs to the assignment.
	Grade(ctx context.Context, assignmentID, submissionID uuid.UUID, grade float64, feedback string) (Submission, error)
	ListSubmissions(ctx context.Context, assignmentID uuid.UUID) ([]SubmissionDetail, error)
	SubmissionsByStudent(ctx context.Context, studentID uuid.UUID) ([]Submission, error)
	LatestSubmission(ctx context.Context, assignmentID, studentID uuid.UUID) (Submission, error)
}

type EnrollmentChecker interface {
	IsEnrolled(ctx context.Context, studentID, courseID uuid.UUID) (bool, error)
}

type CourseReader interface {
	Get(ctx context.Context, id uuid.UUID) (course.Course, error)
}
