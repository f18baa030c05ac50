package outbound

import (
	"context"
	"errors"
	"time"

	"story-production-api/domain"
)

// ErrProjectNotFound is returned by Get when no project has the given id.
var ErrProjectNotFound = errors.New("project not found")

type ProjectRecord struct {
	ID        string
	UserID    string
	Title     string
	Content   domain.StoryData
	UpdatedAt time.Time
}

// ProjectStorePort persists productions as opaque JSON documents keyed by
// project id and owner.
type ProjectStorePort interface {
	Upsert(ctx context.Context, record ProjectRecord) error
	Get(ctx context.Context, id string) (*ProjectRecord, error)
	ListByUser(ctx context.Context, userID string) ([]ProjectRecord, error)
	Delete(ctx context.Context, id string) error
}
