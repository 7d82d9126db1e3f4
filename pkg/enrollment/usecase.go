package enrollment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type UseCase interface {
	Enroll(ctx context.Context, studentID, courseID uuid.UUID) (Enrollment, error)
	ListForStudent(ctx context.Context, studentID uuid.UUID) ([]EnrolledCourse, error)
	IsEnrolled(ctx context.Context, studentID, courseID uuid.UUID) (bool, error)
}

type service struct {
	repo    Repository
	courses CourseReader
	now     func() time.Time
}

func NewService(repo Repository, courses CourseReader) UseCase {
	return &service{repo: repo, courses: courses, now: time.Now}
}

// Enroll checks the course exists and that the student is not enrolled yet.
// The unique (student, course) constraint settles concurrent attempts.
func (s *service) Enroll(ctx context.Context, studentID, courseID uuid.UUID) (Enrollment, error) {
	if _, err := s.courses.Get(ctx, courseID); err != nil {
		return Enrollment{}, err
	}
	enrolled, err := s.repo.IsEnrolled(ctx, studentID, courseID)
	if err != nil {
		return Enrollment{}, err
	}
	if enrolled {
		return Enrollment{}, ErrAlreadyEnrolled
	}
	return s.repo.Create(ctx, Enrollment{
		ID:         uuid.New(),
		StudentID:  studentID,
		CourseID:   courseID,
		EnrolledAt: s.now().UTC(),
	})
}

func (s *service) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]EnrolledCourse, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *service) IsEnrolled(ctx context.Context, studentID, courseID uuid.UUID) (bool, error) {
	return s.repo.IsEnrolled(ctx, studentID, courseID)
}
