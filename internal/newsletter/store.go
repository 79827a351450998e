package newsletter

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/forgepoint/site-server/internal/domain"
)

// Store is the subscriber record store. The managed database owns the
// schema and durability guarantees; this interface is just the slice of
// it the newsletter flow needs.
type Store interface {
	Get(ctx context.Context, email string) (*domain.Subscriber, error)
	Put(ctx context.Context, sub domain.Subscriber) error
	List(ctx context.Context) ([]domain.Subscriber, error)
}

// DynamoStore keeps subscriber records in a DynamoDB table keyed by email.
type DynamoStore struct {
	client    *dynamodb.Client
	tableName string
}

// NewDynamoStore creates a subscriber store against the given table.
// An empty profile uses the default credential chain (IAM role on ECS).
func NewDynamoStore(ctx context.Context, tableName, region, profile string) (*DynamoStore, error) {
	var cfg aws.Config
	var err error

	if profile != "" {
		cfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
			awsconfig.WithSharedConfigProfile(profile),
		)
	} else {
		cfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &DynamoStore{
		client:    dynamodb.NewFromConfig(cfg),
		tableName: tableName,
	}, nil
}

// Get fetches a subscriber by email. Returns (nil, nil) when absent.
func (s *DynamoStore) Get(ctx context.Context, email string) (*domain.Subscriber, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("getting subscriber: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var sub domain.Subscriber
	if err := attributevalue.UnmarshalMap(out.Item, &sub); err != nil {
		return nil, fmt.Errorf("unmarshaling subscriber: %w", err)
	}
	return &sub, nil
}

// Put writes a subscriber record, replacing any existing one.
func (s *DynamoStore) Put(ctx context.Context, sub domain.Subscriber) error {
	item, err := attributevalue.MarshalMap(sub)
	if err != nil {
		return fmt.Errorf("marshaling subscriber: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("putting subscriber: %w", err)
	}
	return nil
}

// List scans the full table. Subscriber counts for a small business site
// stay well under anything a paginated scan can't handle.
func (s *DynamoStore) List(ctx context.Context) ([]domain.Subscriber, error) {
	var subs []domain.Subscriber
	var lastKey map[string]types.AttributeValue

	for {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.tableName),
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scanning subscribers: %w", err)
		}

		var page []domain.Subscriber
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshaling subscribers: %w", err)
		}
		subs = append(subs, page...)

		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}

	return subs, nil
}
