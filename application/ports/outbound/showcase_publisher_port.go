package outbound

import (
	"context"

	"story-production-api/domain"
)

// ShowcasePublisherPort publishes a production snapshot for public sharing
// and returns its URL.
type ShowcasePublisherPort interface {
	Publish(ctx context.Context, projectID string, story domain.StoryData) (string, error)
}
