// Package dynamostore persists posts and submissions in DynamoDB.
//
// The posts table has a single string hash key "pk". Each post is stored as
// a POST#<id> item plus a SLUG#<slug> marker item pointing back at it; the
// marker is written in the same transaction with an attribute_not_exists
// condition so slugs stay unique. Submissions live in their own table keyed
// by "id".
package dynamostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/printologia/printshop/internal/domain"
)

// API is the part of the DynamoDB client the store uses.
type API interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, opts ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, opts ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, opts ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Config configures the DynamoDB connection.
type Config struct {
	Region string

	// Endpoint overrides the AWS endpoint, e.g. http://localhost:8000 for
	// DynamoDB Local.
	Endpoint string

	// Static credentials. When empty the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string

	PostsTable       string
	SubmissionsTable string
}

// Store holds the client and table names shared by the repositories.
type Store struct {
	api              API
	postsTable       string
	submissionsTable string
}

// NewClient builds a DynamoDB client from cfg.
func NewClient(ctx context.Context, cfg Config) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// New creates a store on top of an existing client.
func New(api API, cfg Config) *Store {
	return &Store{
		api:              api,
		postsTable:       cfg.PostsTable,
		submissionsTable: cfg.SubmissionsTable,
	}
}

// Posts returns the post repository.
func (s *Store) Posts() *PostRepository {
	return &PostRepository{api: s.api, table: s.postsTable}
}

// Submissions returns the submission repository.
func (s *Store) Submissions() *SubmissionRepository {
	return &SubmissionRepository{api: s.api, table: s.submissionsTable}
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "dynamodb"
}

// Check implements ports.HealthChecker. Both tables must be ACTIVE.
func (s *Store) Check(ctx context.Context) error {
	for _, table := range []string{s.postsTable, s.submissionsTable} {
		out, err := s.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
		if err != nil {
			return domain.NewUnavailableError("dynamodb", err.Error())
		}

		if out.Table == nil || out.Table.TableStatus != types.TableStatusActive {
			return domain.NewUnavailableError("dynamodb", "table "+table+" is not active")
		}
	}

	return nil
}

// translate maps SDK errors onto the domain taxonomy. Conditional check
// failures are handled by the callers, which know what the condition meant.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%s store: %w", entity, domain.NewUnavailableError("dynamodb", err.Error()))
	}
}

// cancellationCodes returns the per-item reason codes of a canceled
// transaction, or nil if err is not a cancellation.
func cancellationCodes(err error) []string {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return nil
	}

	codes := make([]string, len(tce.CancellationReasons))
	for i, r := range tce.CancellationReasons {
		codes[i] = aws.ToString(r.Code)
	}

	return codes
}
