package application

import (
	"context"
	"errors"

	"voicenote/internal/domain"
)

// PagePublisher creates a document in the workspace service and returns
// the URL of the created page.
type PagePublisher interface {
	CreatePage(ctx context.Context, note *domain.Note) (string, error)
}

// EventScheduler creates a calendar entry for a schedulable note.
type EventScheduler interface {
	Schedule(ctx context.Context, note *domain.Note) error
}

type NoopPagePublisher struct{}

func (n *NoopPagePublisher) CreatePage(_ context.Context, _ *domain.Note) (string, error) {
	return "", nil
}

type NoopScheduler struct{}

func (n *NoopScheduler) Schedule(_ context.Context, _ *domain.Note) error {
	return nil
}

// MultiScheduler fans a note out to several schedulers. Every scheduler is
// attempted; errors are joined rather than short-circuiting.
type MultiScheduler []EventScheduler

func (m MultiScheduler) Schedule(ctx context.Context, note *domain.Note) error {
	var errs []error
	for _, s := range m {
		if err := s.Schedule(ctx, note); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
