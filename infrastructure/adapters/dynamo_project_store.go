package adapters

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"

	"story-production-api/application/ports/outbound"
	"story-production-api/config"
	"story-production-api/domain"
)

type dynamoProjectItem struct {
	ID        string `dynamodbav:"id"`
	UserID    string `dynamodbav:"user_id"`
	Title     string `dynamodbav:"title"`
	Content   string `dynamodbav:"content"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

type dynamoProjectStore struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoProjectStore(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB, dynamoConfig *config.DynamoConfig) outbound.ProjectStorePort {
	return &dynamoProjectStore{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

// Upsert writes the production as an opaque JSON document. The content stays
// byte-compatible with the StoryData wire shape so projects survive version
// changes.
func (s *dynamoProjectStore) Upsert(ctx context.Context, record outbound.ProjectRecord) error {
	content, err := json.Marshal(record.Content)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to marshal project content", map[string]interface{}{
			"project_id": record.ID,
		})
		return err
	}

	item := dynamoProjectItem{
		ID:        record.ID,
		UserID:    record.UserID,
		Title:     record.Title,
		Content:   string(content),
		UpdatedAt: record.UpdatedAt.UTC().Format(time.RFC3339),
	}

	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to marshal project item", map[string]interface{}{
			"project_id": record.ID,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(s.dynamoConfig.TableName),
	}

	_, err = s.dynamoSvc.PutItemWithContext(ctx, input)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to save project item", map[string]interface{}{
			"project_id": record.ID,
		})
		return err
	}

	return nil
}

func (s *dynamoProjectStore) Get(ctx context.Context, id string) (*outbound.ProjectRecord, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.dynamoConfig.TableName),
		Key: map[string]*dynamodb.AttributeValue{
			"id": {S: aws.String(id)},
		},
	}

	result, err := s.dynamoSvc.GetItemWithContext(ctx, input)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to get project item", map[string]interface{}{
			"project_id": id,
		})
		return nil, err
	}
	if len(result.Item) == 0 {
		return nil, outbound.ErrProjectNotFound
	}

	return s.unmarshalRecord(result.Item)
}

func (s *dynamoProjectStore) ListByUser(ctx context.Context, userID string) ([]outbound.ProjectRecord, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.dynamoConfig.TableName),
		IndexName:              aws.String(s.dynamoConfig.UserIndexName),
		KeyConditionExpression: aws.String("user_id = :user_id"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":user_id": {S: aws.String(userID)},
		},
	}

	result, err := s.dynamoSvc.QueryWithContext(ctx, input)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to query projects", map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	records := make([]outbound.ProjectRecord, 0, len(result.Items))
	for _, item := range result.Items {
		record, err := s.unmarshalRecord(item)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	return records, nil
}

func (s *dynamoProjectStore) Delete(ctx context.Context, id string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(s.dynamoConfig.TableName),
		Key: map[string]*dynamodb.AttributeValue{
			"id": {S: aws.String(id)},
		},
	}

	_, err := s.dynamoSvc.DeleteItemWithContext(ctx, input)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to delete project item", map[string]interface{}{
			"project_id": id,
		})
		return err
	}

	return nil
}

func (s *dynamoProjectStore) unmarshalRecord(item map[string]*dynamodb.AttributeValue) (*outbound.ProjectRecord, error) {
	var stored dynamoProjectItem
	if err := dynamodbattribute.UnmarshalMap(item, &stored); err != nil {
		s.logger.Error(err, "Failed to unmarshal project item")
		return nil, err
	}

	var content domain.StoryData
	if err := json.Unmarshal([]byte(stored.Content), &content); err != nil {
		s.logger.ErrorWithFields(err, "Failed to unmarshal project content", map[string]interface{}{
			"project_id": stored.ID,
		})
		return nil, err
	}

	updatedAt, err := time.Parse(time.RFC3339, stored.UpdatedAt)
	if err != nil {
		updatedAt = time.Time{}
	}

	return &outbound.ProjectRecord{
		ID:        stored.ID,
		UserID:    stored.UserID,
		Title:     stored.Title,
		Content:   content,
		UpdatedAt: updatedAt,
	}, nil
}
