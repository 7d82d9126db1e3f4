package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/prudvireddyNS/mentor/pkg/dashboard"
)

const dashboardCounts = `
SELECT
	(SELECT COUNT(*) FROM users WHERE role = 'student')                        AS total_students,
	(SELECT COUNT(*) FROM courses)                                             AS total_courses,
	(SELECT COUNT(*) FROM enrollments)                                         AS total_enrollments,
	(SELECT COUNT(*) FROM assignments)                                         AS total_assignments,
	(SELECT COUNT(*) FROM assignment_submissions)                              AS total_submissions,
	(SELECT COUNT(*) FROM assignment_submissions WHERE grade IS NULL)          AS pending_submissions,
	(SELECT COUNT(*) FROM assignments WHERE due_date > $1)                     AS upcoming_assignments,
	(SELECT COUNT(*) FROM enrollments WHERE enrolled_at > $2)                  AS recent_enrollments
`

const courseEnrollments = `
SELECT c.id AS course_id, c.title AS course_title, COUNT(e.id) AS enrollment_count
FROM courses c
LEFT JOIN enrollments e ON e.course_id = c.id
GROUP BY c.id, c.title
ORDER BY enrollment_count DESC, c.title
`

// DashboardRepository aggregates admin statistics.
type DashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) *DashboardRepository { return &DashboardRepository{db: db} }

func (r *DashboardRepository) Counts(ctx context.Context, now, since time.Time) (dashboard.Stats, error) {
	var stats dashboard.Stats
	if err := r.db.GetContext(ctx, &stats, dashboardCounts, now, since); err != nil {
		return dashboard.Stats{}, err
	}
	return stats, nil
}

func (r *DashboardRepository) CourseEnrollments(ctx context.Context) ([]dashboard.CourseEnrollment, error) {
	var rows []dashboard.CourseEnrollment
	if err := r.db.SelectContext(ctx, &rows, courseEnrollments); err != nil {
		return nil, err
	}
	return rows, nil
}
