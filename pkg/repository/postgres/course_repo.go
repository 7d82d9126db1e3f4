package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/prudvireddyNS/mentor/pkg/course"
	storage "github.com/prudvireddyNS/mentor/pkg/storage/postgres"
)

var courseColumns = []string{"id", "title", "description", "image_url", "duration", "level", "admin_id", "created_at"}

type courseRow struct {
	ID          uuid.UUID     `db:"id"`
	Title       string        `db:"title"`
	Description string        `db:"description"`
	ImageURL    string        `db:"image_url"`
	Duration    string        `db:"duration"`
	Level       string        `db:"level"`
	AdminID     uuid.NullUUID `db:"admin_id"`
	CreatedAt   time.Time     `db:"created_at"`
}

func (r courseRow) toDomain() course.Course {
	return course.Course{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Duration:    r.Duration,
		Level:       r.Level,
		AdminID:     r.AdminID.UUID,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

// CourseRepository stores the course catalogue.
type CourseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) *CourseRepository { return &CourseRepository{db: db} }

func (r *CourseRepository) Create(ctx context.Context, c course.Course) (course.Course, error) {
	query, args, err := psql.Insert("courses").
		Columns(courseColumns...).
		Values(c.ID, c.Title, c.Description, c.ImageURL, c.Duration, c.Level, c.AdminID, c.CreatedAt).
		ToSql()
	if err != nil {
		return course.Course{}, fmt.Errorf("build insert course: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return course.Course{}, err
	}
	return c, nil
}

func (r *CourseRepository) Get(ctx context.Context, id uuid.UUID) (course.Course, error) {
	query, args, err := psql.Select(courseColumns...).From("courses").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return course.Course{}, fmt.Errorf("build course query: %w", err)
	}
	var row courseRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return course.Course{}, notFound(err, course.ErrNotFound)
	}
	return row.toDomain(), nil
}

func (r *CourseRepository) List(ctx context.Context) ([]course.Course, error) {
	query, args, err := psql.Select(courseColumns...).From("courses").OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build course list: %w", err)
	}
	var rows []courseRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *CourseRepository) Update(ctx context.Context, c course.Course) (course.Course, error) {
	query, args, err := psql.Update("courses").SetMap(map[string]any{
		"title":       c.Title,
		"description": c.Description,
		"image_url":   c.ImageURL,
		"duration":    c.Duration,
		"level":       c.Level,
	}).Where(sq.Eq{"id": c.ID}).ToSql()
	if err != nil {
		return course.Course{}, fmt.Errorf("build update course: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return course.Course{}, err
	}
	if err := affected(res, course.ErrNotFound); err != nil {
		return course.Course{}, err
	}
	return c, nil
}

// cascade lists the statements that remove a course, children first.
func cascade(id uuid.UUID) []sq.DeleteBuilder {
	return []sq.DeleteBuilder{
		psql.Delete("assignment_submissions").
			Where(sq.Expr("assignment_id IN (SELECT id FROM assignments WHERE course_id = ?)", id)),
		psql.Delete("assignments").Where(sq.Eq{"course_id": id}),
		psql.Delete("lessons").Where(sq.Eq{"course_id": id}),
		psql.Delete("courses").Where(sq.Eq{"id": id}),
	}
}

// Delete removes the course and everything hanging off it in one transaction.
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	lock, lockArgs, err := psql.Select("id").From("courses").Where(sq.Eq{"id": id}).Suffix("FOR UPDATE").ToSql()
	if err != nil {
		return fmt.Errorf("build lock course: %w", err)
	}
	exists, existsArgs, err := psql.Select("1").From("enrollments").Where(sq.Eq{"course_id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return fmt.Errorf("build enrollment check: %w", err)
	}
	return storage.WithTx(ctx, r.db, nil, func(ctx context.Context, tx storage.DBTX) error {
		var locked uuid.UUID
		if err := tx.GetContext(ctx, &locked, lock, lockArgs...); err != nil {
			return notFound(err, course.ErrNotFound)
		}
		var enrolled bool
		if err := tx.GetContext(ctx, &enrolled, exists, existsArgs...); err != nil {
			return err
		}
		if enrolled {
			return course.ErrHasEnrollments
		}
		for _, b := range cascade(id) {
			stmt, args, err := b.ToSql()
			if err != nil {
				return fmt.Errorf("build cascade: %w", err)
			}
			if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
				return err
			}
		}
		return nil
	})
}
