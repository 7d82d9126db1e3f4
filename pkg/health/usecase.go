package health

import (
	"context"
	"errors"
	"fmt"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Report maps each checker name to "ok" or its error text.
type Report map[string]string

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	Ready(ctx context.Context) (Report, error)
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers. Nil checkers are skipped.
func NewService(checkers ...Checker) ReadinessUseCase {
	s := &service{}
	for _, ch := range checkers {
		if ch != nil {
			s.checkers = append(s.checkers, ch)
		}
	}
	return s
}

// Ready runs every checker; the error joins all failures.
func (s *service) Ready(ctx context.Context) (Report, error) {
	report := make(Report, len(s.checkers))
	var errs []error
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			report[ch.Name()] = err.Error()
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
			continue
		}
		report[ch.Name()] = "ok"
	}
	return report, errors.Join(errs...)
}
