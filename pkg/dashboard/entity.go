package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecentWindow bounds what counts as a recent enrollment.
const RecentWindow = 30 * 24 * time.Hour

type CourseEnrollment struct {
	CourseID        uuid.UUID `db:"course_id"`
	CourseTitle     string    `db:"course_title"`
	EnrollmentCount int       `db:"enrollment_count"`
}

type Stats struct {
	TotalStudents       int `db:"total_students"`
	TotalCourses        int `db:"total_courses"`
	TotalEnrollments    int `db:"total_enrollments"`
	TotalAssignments    int `db:"total_assignments"`
	TotalSubmissions    int `db:"total_submissions"`
	PendingSubmissions  int `db:"pending_submissions"`
	UpcomingAssignments int `db:"upcoming_assignments"`
	RecentEnrollments   int `db:"recent_enrollments"`
	CourseEnrollments   []CourseEnrollment
}

type Repository interface {
	// Counts fills every counter; assignments due after now are upcoming and
	// enrollments after since are recent.
	Counts(ctx context.Context, now, since time.Time) (Stats, error)
	CourseEnrollments(ctx context.Context) ([]CourseEnrollment, error)
}
