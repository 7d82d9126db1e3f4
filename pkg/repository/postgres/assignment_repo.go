package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/prudvireddyNS/mentor/pkg/assignment"
)

var assignmentColumns = []string{
	"a.id", "a.course_id", "c.title AS course_title", "a.title", "a.description",
	"a.due_date", "a.total_points", "a.created_at",
}

var submissionColumns = []string{"id", "assignment_id", "student_id", "submitted_at", "content", "grade", "feedback"}

type assignmentRow struct {
	ID          uuid.UUID `db:"id"`
	CourseID    uuid.UUID `db:"course_id"`
	CourseTitle string    `db:"course_title"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	DueDate     time.Time `db:"due_date"`
	TotalPoints int       `db:"total_points"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r assignmentRow) toDomain() assignment.Assignment {
	return assignment.Assignment{
		ID:          r.ID,
		CourseID:    r.CourseID,
		CourseTitle: r.CourseTitle,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate.UTC(),
		TotalPoints: r.TotalPoints,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

type adminAssignmentRow struct {
	assignmentRow
	SubmissionCount int `db:"submission_count"`
	GradedCount     int `db:"graded_count"`
}

type submissionRow struct {
	ID           uuid.UUID `db:"id"`
	AssignmentID uuid.UUID `db:"assignment_id"`
	StudentID    uuid.UUID `db:"student_id"`
	SubmittedAt  time.Time `db:"submitted_at"`
	Content      string    `db:"content"`
	Grade        *float64  `db:"grade"`
	Feedback     *string   `db:"feedback"`
}

func (r submissionRow) toDomain() assignment.Submission {
	return assignment.Submission{
		ID:           r.ID,
		AssignmentID: r.AssignmentID,
		StudentID:    r.StudentID,
		SubmittedAt:  r.SubmittedAt.UTC(),
		Content:      r.Content,
		Grade:        r.Grade,
		Feedback:     r.Feedback,
	}
}

type submissionDetailRow struct {
	submissionRow
	StudentName  string `db:"student_name"`
	StudentEmail string `db:"student_email"`
}

// AssignmentRepository stores assignments and their submissions.
type AssignmentRepository struct {
	db *sqlx.DB
}

func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository { return &AssignmentRepository{db: db} }

func selectAssignments() sq.SelectBuilder {
	return psql.Select(assignmentColumns...).From("assignments a").Join("courses c ON c.id = a.course_id")
}

func (r *AssignmentRepository) Create(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	query, args, err := psql.Insert("assignments").
		Columns("id", "course_id", "title", "description", "due_date", "total_points", "created_at").
		Values(a.ID, a.CourseID, a.Title, a.Description, a.DueDate, a.TotalPoints, a.CreatedAt).
		ToSql()
	if err != nil {
		return assignment.Assignment{}, fmt.Errorf("build insert assignment: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return assignment.Assignment{}, err
	}
	return a, nil
}

func (r *AssignmentRepository) Get(ctx context.Context, id uuid.UUID) (assignment.Assignment, error) {
	query, args, err := selectAssignments().Where(sq.Eq{"a.id": id}).ToSql()
	if err != nil {
		return assignment.Assignment{}, fmt.Errorf("build assignment query: %w", err)
	}
	var row assignmentRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return assignment.Assignment{}, notFound(err, assignment.ErrNotFound)
	}
	return row.toDomain(), nil
}

func (r *AssignmentRepository) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]assignment.Assignment, error) {
	query, args, err := selectAssignments().
		Join("enrollments e ON e.course_id = a.course_id").
		Where(sq.Eq{"e.student_id": studentID}).
		OrderBy("a.due_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build student assignments: %w", err)
	}
	var rows []assignmentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *AssignmentRepository) ListWithCounts(ctx context.Context) ([]assignment.AdminView, error) {
	cols := append(append([]string{}, assignmentColumns...),
		"COUNT(s.id) AS submission_count",
		"COUNT(s.grade) AS graded_count",
	)
	query, args, err := psql.Select(cols...).
		From("assignments a").
		Join("courses c ON c.id = a.course_id").
		LeftJoin("assignment_submissions s ON s.assignment_id = a.id").
		GroupBy("a.id", "c.title").
		OrderBy("a.due_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build admin assignments: %w", err)
	}
	var rows []adminAssignmentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]assignment.AdminView, 0, len(rows))
	for _, row := range rows {
		out = append(out, assignment.AdminView{
			Assignment:      row.assignmentRow.toDomain(),
			SubmissionCount: row.SubmissionCount,
			GradedCount:     row.GradedCount,
		})
	}
	return out, nil
}

func (r *AssignmentRepository) CreateSubmission(ctx context.Context, s assignment.Submission) (assignment.Submission, error) {
	query, args, err := psql.Insert("assignment_submissions").
		Columns("id", "assignment_id", "student_id", "submitted_at", "content").
		Values(s.ID, s.AssignmentID, s.StudentID, s.SubmittedAt, s.Content).
		ToSql()
	if err != nil {
		return assignment.Submission{}, fmt.Errorf("build insert submission: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return assignment.Submission{}, err
	}
	return s, nil
}

func (r *AssignmentRepository) Grade(ctx context.Context, assignmentID, submissionID uuid.UUID, grade float64, feedback string) (assignment.Submission, error) {
	query, args, err := psql.Update("assignment_submissions").
		Set("grade", grade).
		Set("feedback", feedback).
		Where(sq.Eq{"id": submissionID, "assignment_id": assignmentID}).
		Suffix("RETURNING id, assignment_id, student_id, submitted_at, content, grade, feedback").
		ToSql()
	if err != nil {
		return assignment.Submission{}, fmt.Errorf("build grade submission: %w", err)
	}
	var row submissionRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return assignment.Submission{}, notFound(err, assignment.ErrSubmissionNotFound)
	}
	return row.toDomain(), nil
}

func (r *AssignmentRepository) ListSubmissions(ctx context.Context, assignmentID uuid.UUID) ([]assignment.SubmissionDetail, error) {
	query, args, err := psql.Select(
		"s.id", "s.assignment_id", "s.student_id", "s.submitted_at", "s.content", "s.grade", "s.feedback",
		"TRIM(u.first_name || ' ' || u.last_name) AS student_name", "u.email AS student_email",
	).
		From("assignment_submissions s").
		Join("users u ON u.id = s.student_id").
		Where(sq.Eq{"s.assignment_id": assignmentID}).
		OrderBy("s.submitted_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build submissions query: %w", err)
	}
	var rows []submissionDetailRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]assignment.SubmissionDetail, 0, len(rows))
	for _, row := range rows {
		out = append(out, assignment.SubmissionDetail{
			Submission:   row.submissionRow.toDomain(),
			StudentName:  row.StudentName,
			StudentEmail: row.StudentEmail,
		})
	}
	return out, nil
}

func (r *AssignmentRepository) SubmissionsByStudent(ctx context.Context, studentID uuid.UUID) ([]assignment.Submission, error) {
	return r.submissions(ctx, sq.Eq{"student_id": studentID})
}

func (r *AssignmentRepository) LatestSubmission(ctx context.Context, assignmentID, studentID uuid.UUID) (assignment.Submission, error) {
	query, args, err := psql.Select(submissionColumns...).
		From("assignment_submissions").
		Where(sq.Eq{"assignment_id": assignmentID, "student_id": studentID}).
		OrderBy("submitted_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return assignment.Submission{}, fmt.Errorf("build latest submission: %w", err)
	}
	var row submissionRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return assignment.Submission{}, notFound(err, assignment.ErrSubmissionNotFound)
	}
	return row.toDomain(), nil
}

func (r *AssignmentRepository) submissions(ctx context.Context, where sq.Eq) ([]assignment.Submission, error) {
	query, args, err := psql.Select(submissionColumns...).
		From("assignment_submissions").
		Where(where).
		OrderBy("submitted_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build submissions query: %w", err)
	}
	var rows []submissionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]assignment.Submission, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
