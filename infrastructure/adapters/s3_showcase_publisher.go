package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"

	"story-production-api/application/ports/outbound"
	"story-production-api/config"
	"story-production-api/domain"
)

type s3ShowcasePublisher struct {
	logger   outbound.LoggerPort
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

func NewS3ShowcasePublisher(logger outbound.LoggerPort, s3Svc *s3.S3, s3Config *config.S3Config) outbound.ShowcasePublisherPort {
	return &s3ShowcasePublisher{
		logger:   logger,
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

// Publish uploads the production snapshot as a public JSON document so the
// showcase page can load it without authentication.
func (p *s3ShowcasePublisher) Publish(ctx context.Context, projectID string, story domain.StoryData) (string, error) {
	payload, err := json.Marshal(story)
	if err != nil {
		p.logger.ErrorWithFields(err, "Failed to marshal showcase snapshot", map[string]interface{}{
			"project_id": projectID,
		})
		return "", err
	}

	itemPath := fmt.Sprintf("showcase/%s.json", projectID)

	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(p.s3Config.BucketName),
		Key:           aws.String(itemPath),
		Body:          bytes.NewReader(payload),
		ContentLength: aws.Int64(int64(len(payload))),
		ContentType:   aws.String("application/json"),
	}

	_, err = p.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		p.logger.ErrorWithFields(err, "Failed to upload showcase snapshot to S3", map[string]interface{}{
			"bucket":     p.s3Config.BucketName,
			"project_id": projectID,
		})
		return "", err
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.s3Config.BucketName, p.s3Config.Region, itemPath)
	p.logger.DebugWithFields("Published showcase snapshot", map[string]interface{}{
		"url": url,
	})

	return url, nil
}
