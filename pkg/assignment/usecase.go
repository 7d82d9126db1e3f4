package assignment

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prudvireddyNS/mentor/pkg/auth"
)

type UseCase interface {
	Create(ctx context.Context, a Assignment) (Assignment, error)
	Submit(ctx context.Context, studentID, assignmentID uuid.UUID, content string) (Submission, error)
	Grade(ctx context.Context, assignmentID, submissionID uuid.UUID, grade float64, feedback string) (Submission, error)
	ListForStudent(ctx context.Context, studentID uuid.UUID) ([]StudentView, error)
	UpcomingForStudent(ctx context.Context, studentID uuid.UUID) ([]StudentView, error)
	ListForAdmin(ctx context.Context) ([]AdminView, error)
	Details(ctx context.Context, viewer auth.User, id uuid.UUID) (StudentView, error)
	Submissions(ctx context.Context, assignmentID uuid.UUID) ([]SubmissionDetail, error)
	StudentSubmission(ctx context.Context, studentID, assignmentID uuid.UUID) (StudentView, error)
}

type service struct {
	repo        Repository
	courses     CourseReader
	enrollments EnrollmentChecker
	now         func() time.Time
}

func NewService(repo Repository, courses CourseReader, enrollments EnrollmentChecker) UseCase {
	return &service{repo: repo, courses: courses, enrollments: enrollments, now: time.Now}
}

func (s *service) Create(ctx context.Context, a Assignment) (Assignment, error) {
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return Assignment{}, ErrTitleRequired
	}
	c, err := s.courses.Get(ctx, a.CourseID)
	if err != nil {
		return Assignment{}, err
	}
	a.ID = uuid.New()
	a.CourseTitle = c.Title
	a.CreatedAt = s.now().UTC()
	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return Assignment{}, err
	}
	created.CourseTitle = c.Title
	return created, nil
}

func (s *service) Submit(ctx context.Context, studentID, assignmentID uuid.UUID, content string) (Submission, error) {
	a, err := s.enrolledAssignment(ctx, studentID, assignmentID)
	if err != nil {
		return Submission{}, err
	}
	return s.repo.CreateSubmission(ctx, Submission{
		ID:           uuid.New(),
		AssignmentID: a.ID,
		StudentID:    studentID,
		SubmittedAt:  s.now().UTC(),
		Content:      content,
	})
}

func (s *service) Grade(ctx context.Context, assignmentID, submissionID uuid.UUID, grade float64, feedback string) (Submission, error) {
	if grade < 0 {
		return Submission{}, ErrInvalidGrade
	}
	return s.repo.Grade(ctx, assignmentID, submissionID, grade, feedback)
}

func (s *service) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]StudentView, error) {
	return s.studentViews(ctx, studentID, false)
}

func (s *service) UpcomingForStudent(ctx context.Context, studentID uuid.UUID) ([]StudentView, error) {
	return s.studentViews(ctx, studentID, true)
}

func (s *service) studentViews(ctx context.Context, studentID uuid.UUID, upcomingOnly bool) ([]StudentView, error) {
	assignments, err := s.repo.ListForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	subs, err := s.repo.SubmissionsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	latest := latestByAssignment(subs)

	now := s.now()
	views := make([]StudentView, 0, len(assignments))
	for _, a := range assignments {
		if upcomingOnly && !a.DueDate.After(now) {
			continue
		}
		views = append(views, studentView(a, latest[a.ID], now))
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].DueDate.Before(views[j].DueDate) })
	return views, nil
}

func (s *service) ListForAdmin(ctx context.Context) ([]AdminView, error) {
	views, err := s.repo.ListWithCounts(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range views {
		views[i].Status = StatusUpcoming
		if views[i].DueDate.Before(now) {
			views[i].Status = StatusPast
		}
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].DueDate.Before(views[j].DueDate) })
	return views, nil
}

// Details shows an assignment to any authenticated user. Students must be
// enrolled in the course and see their own submission.
func (s *service) Details(ctx context.Context, viewer auth.User, id uuid.UUID) (StudentView, error) {
	if viewer.Role != auth.RoleStudent {
		a, err := s.repo.Get(ctx, id)
		if err != nil {
			return StudentView{}, err
		}
		return studentView(a, nil, s.now()), nil
	}
	return s.StudentSubmission(ctx, viewer.ID, id)
}

func (s *service) Submissions(ctx context.Context, assignmentID uuid.UUID) ([]SubmissionDetail, error) {
	if _, err := s.repo.Get(ctx, assignmentID); err != nil {
		return nil, err
	}
	subs, err := s.repo.ListSubmissions(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(subs, func(i, j int) bool { return subs[i].SubmittedAt.After(subs[j].SubmittedAt) })
	return subs, nil
}

func (s *service) StudentSubmission(ctx context.Context, studentID, assignmentID uuid.UUID) (StudentView, error) {
	a, err := s.enrolledAssignment(ctx, studentID, assignmentID)
	if err != nil {
		return StudentView{}, err
	}
	sub, err := s.repo.LatestSubmission(ctx, assignmentID, studentID)
	switch {
	case errors.Is(err, ErrSubmissionNotFound):
		return studentView(a, nil, s.now()), nil
	case err != nil:
		return StudentView{}, err
	}
	return studentView(a, &sub, s.now()), nil
}

func (s *service) enrolledAssignment(ctx context.Context, studentID, assignmentID uuid.UUID) (Assignment, error) {
	a, err := s.repo.Get(ctx, assignmentID)
	if err != nil {
		return Assignment{}, err
	}
	ok, err := s.enrollments.IsEnrolled(ctx, studentID, a.CourseID)
	if err != nil {
		return Assignment{}, err
	}
	if !ok {
		return Assignment{}, ErrNotEnrolled
	}
	return a, nil
}

func studentView(a Assignment, sub *Submission, now time.Time) StudentView {
	v := StudentView{Assignment: a, Submission: sub, Status: StatusUpcoming}
	switch {
	case sub != nil:
		v.Status = StatusSubmitted
	case a.DueDate.Before(now):
		v.Status = StatusOverdue
	}
	return v
}

func latestByAssignment(subs []Submission) map[uuid.UUID]*Submission {
	out := make(map[uuid.UUID]*Submission, len(subs))
	for i := range subs {
		s := &subs[i]
		if cur, ok := out[s.AssignmentID]; !ok || s.SubmittedAt.After(cur.SubmittedAt) {
			out[s.AssignmentID] = s
		}
	}
	return out
}
