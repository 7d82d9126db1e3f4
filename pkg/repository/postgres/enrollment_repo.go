package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/prudvireddyNS/mentor/pkg/enrollment"
)

type enrolledCourseRow struct {
	EnrollmentID uuid.UUID `db:"enrollment_id"`
	EnrolledAt   time.Time `db:"enrolled_at"`
	courseRow
}

// EnrollmentRepository stores student enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository { return &EnrollmentRepository{db: db} }

func (r *EnrollmentRepository) Create(ctx context.Context, e enrollment.Enrollment) (enrollment.Enrollment, error) {
	query, args, err := psql.Insert("enrollments").
		Columns("id", "student_id", "course_id", "enrolled_at", "progress").
		Values(e.ID, e.StudentID, e.CourseID, e.EnrolledAt, e.Progress).
		ToSql()
	if err != nil {
		return enrollment.Enrollment{}, fmt.Errorf("build insert enrollment: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return enrollment.Enrollment{}, enrollment.ErrAlreadyEnrolled
		}
		return enrollment.Enrollment{}, err
	}
	return e, nil
}

func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, studentID, courseID uuid.UUID) (bool, error) {
	var ok bool
	err := r.db.GetContext(ctx, &ok,
		`SELECT EXISTS (SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`, studentID, courseID)
	return ok, err
}

func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]enrollment.EnrolledCourse, error) {
	query, args, err := psql.Select(
		"e.id AS enrollment_id", "e.enrolled_at",
		"c.id", "c.title", "c.description", "c.image_url", "c.duration", "c.level", "c.admin_id", "c.created_at",
	).
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		Where(sq.Eq{"e.student_id": studentID}).
		OrderBy("e.enrolled_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build enrollment list: %w", err)
	}
	var rows []enrolledCourseRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]enrollment.EnrolledCourse, 0, len(rows))
	for _, row := range rows {
		out = append(out, enrollment.EnrolledCourse{
			EnrollmentID: row.EnrollmentID,
			Course:       row.courseRow.toDomain(),
			EnrolledAt:   row.EnrolledAt.UTC(),
		})
	}
	return out, nil
}
