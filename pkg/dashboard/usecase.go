package dashboard

import (
	"context"
	"sort"
	"time"
)

type UseCase interface {
	Stats(ctx context.Context) (Stats, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase { return &service{repo: repo, now: time.Now} }

func (s *service) Stats(ctx context.Context) (Stats, error) {
	now := s.now().UTC()
	stats, err := s.repo.Counts(ctx, now, now.Add(-RecentWindow))
	if err != nil {
		return Stats{}, err
	}
	perCourse, err := s.repo.CourseEnrollments(ctx)
	if err != nil {
		return Stats{}, err
	}
	sort.SliceStable(perCourse, func(i, j int) bool {
		return perCourse[i].EnrollmentCount > perCourse[j].EnrollmentCount
	})
	if perCourse == nil {
		perCourse = []CourseEnrollment{}
	}
	stats.CourseEnrollments = perCourse
	return stats, nil
}
