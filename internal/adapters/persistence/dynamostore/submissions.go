package dynamostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/printologia/printshop/internal/domain"
	"github.com/printologia/printshop/internal/ports"
)

var _ ports.SubmissionRepository = (*SubmissionRepository)(nil)

// SubmissionRepository implements ports.SubmissionRepository on the
// submissions table.
type SubmissionRepository struct {
	api   API
	table string
}

func (r *SubmissionRepository) Save(ctx context.Context, submission *domain.Submission) error {
	av, err := attributevalue.MarshalMap(toSubmissionItem(submission))
	if err != nil {
		return fmt.Errorf("marshaling submission: %w", err)
	}

	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.table),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})

	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return domain.NewConflictErrorWithDetails("submission", "id already exists", submission.ID)
	}

	return translate(err, "submission")
}

func (r *SubmissionRepository) Get(ctx context.Context, id string) (*domain.Submission, error) {
	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, translate(err, "submission")
	}

	if len(out.Item) == 0 {
		return nil, domain.NewNotFoundError("submission", id)
	}

	var it submissionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("unmarshaling submission: %w", err)
	}

	return it.toDomain(), nil
}
