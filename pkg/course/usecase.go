package course

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UseCase is the course catalogue application service.
type UseCase interface {
	Create(ctx context.Context, adminID uuid.UUID, c Course) (Course, error)
	Get(ctx context.Context, id uuid.UUID) (Course, error)
	List(ctx context.Context) ([]Course, error)
	Update(ctx context.Context, id uuid.UUID, p Patch) (Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase { return &service{repo: repo, now: time.Now} }

// ParseID accepts a path parameter as sent by browser clients, where a
// missing id often arrives as the literal "undefined".
func ParseID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "undefined" {
		return uuid.Nil, ErrIDRequired
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}

func (s *service) Create(ctx context.Context, adminID uuid.UUID, c Course) (Course, error) {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return Course{}, ErrTitleRequired
	}
	c.ID = uuid.New()
	c.AdminID = adminID
	c.CreatedAt = s.now().UTC()
	return s.repo.Create(ctx, c)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (Course, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Course, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, p Patch) (Course, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Course{}, err
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return Course{}, ErrTitleRequired
	}
	if p.Empty() {
		return current, nil
	}
	return s.repo.Update(ctx, p.Apply(current))
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
