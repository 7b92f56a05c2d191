package dynamostore

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/printologia/printshop/internal/domain"
	"github.com/printologia/printshop/internal/ports"
)

const codeConditionalCheckFailed = "ConditionalCheckFailed"

var _ ports.PostRepository = (*PostRepository)(nil)

// PostRepository implements ports.PostRepository on the posts table.
type PostRepository struct {
	api   API
	table string
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	postAV, err := attributevalue.MarshalMap(toPostItem(post))
	if err != nil {
		return fmt.Errorf("marshaling post: %w", err)
	}

	slugAV, err := attributevalue.MarshalMap(toSlugItem(post))
	if err != nil {
		return fmt.Errorf("marshaling slug: %w", err)
	}

	_, err = r.api.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: r.putIfAbsent(postAV)},
			{Put: r.putIfAbsent(slugAV)},
		},
	})

	if codes := cancellationCodes(err); codes != nil {
		if len(codes) > 1 && codes[1] == codeConditionalCheckFailed {
			return domain.NewConflictErrorWithDetails("post", "slug already exists", post.Slug)
		}

		return domain.NewConflictErrorWithDetails("post", "id already exists", post.ID)
	}

	return translate(err, "post")
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            postKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, translate(err, "post")
	}

	if len(out.Item) == 0 {
		return nil, domain.NewNotFoundError("post", id)
	}

	var it postItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("unmarshaling post: %w", err)
	}

	p := it.toDomain()

	return &p, nil
}

func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            slugKey(slug),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, translate(err, "post")
	}

	if len(out.Item) == 0 {
		return nil, domain.NewNotFoundError("post", slug)
	}

	var marker slugItem
	if err := attributevalue.UnmarshalMap(out.Item, &marker); err != nil {
		return nil, fmt.Errorf("unmarshaling slug: %w", err)
	}

	return r.GetByID(ctx, marker.PostID)
}

// Update replaces the post item. A slug change moves the marker in the same
// transaction.
func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	current, err := r.GetByID(ctx, post.ID)
	if err != nil {
		return err
	}

	postAV, err := attributevalue.MarshalMap(toPostItem(post))
	if err != nil {
		return fmt.Errorf("marshaling post: %w", err)
	}

	items := []types.TransactWriteItem{{Put: &types.Put{
		TableName:                aws.String(r.table),
		Item:                     postAV,
		ConditionExpression:      aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{"#pk": keyAttr},
	}}}

	if current.Slug != post.Slug {
		slugAV, err := attributevalue.MarshalMap(toSlugItem(post))
		if err != nil {
			return fmt.Errorf("marshaling slug: %w", err)
		}

		items = append(items,
			types.TransactWriteItem{Put: r.putIfAbsent(slugAV)},
			types.TransactWriteItem{Delete: &types.Delete{
				TableName: aws.String(r.table),
				Key:       slugKey(current.Slug),
			}},
		)
	}

	_, err = r.api.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})

	if codes := cancellationCodes(err); codes != nil {
		if codes[0] == codeConditionalCheckFailed {
			return domain.NewNotFoundError("post", post.ID)
		}

		return domain.NewConflictErrorWithDetails("post", "slug already exists", post.Slug)
	}

	return translate(err, "post")
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.api.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Delete: &types.Delete{
				TableName:                aws.String(r.table),
				Key:                      postKey(id),
				ConditionExpression:      aws.String("attribute_exists(#pk)"),
				ExpressionAttributeNames: map[string]string{"#pk": keyAttr},
			}},
			{Delete: &types.Delete{
				TableName: aws.String(r.table),
				Key:       slugKey(current.Slug),
			}},
		},
	})

	if cancellationCodes(err) != nil {
		return domain.NewNotFoundError("post", id)
	}

	return translate(err, "post")
}

// List scans every post item, then searches, sorts and pages in memory.
func (r *PostRepository) List(ctx context.Context, filter domain.PostFilter) ([]domain.Post, error) {
	posts, err := r.scan(ctx, filter)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(posts, func(a, b domain.Post) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	})

	if filter.Offset >= len(posts) {
		return []domain.Post{}, nil
	}

	end := min(filter.Offset+filter.Limit, len(posts))

	return posts[filter.Offset:end], nil
}

func (r *PostRepository) Count(ctx context.Context, filter domain.PostFilter) (int64, error) {
	posts, err := r.scan(ctx, filter)
	if err != nil {
		return 0, err
	}

	return int64(len(posts)), nil
}

func (r *PostRepository) scan(ctx context.Context, filter domain.PostFilter) ([]domain.Post, error) {
	expr := "#type = :post"
	names := map[string]string{"#type": "type"}
	values := map[string]types.AttributeValue{":post": &types.AttributeValueMemberS{Value: itemTypePost}}

	if filter.Published != nil {
		expr += " AND #published = :published"
		names["#published"] = "published"
		values[":published"] = &types.AttributeValueMemberBOOL{Value: *filter.Published}
	}

	paginator := dynamodb.NewScanPaginator(r.api, &dynamodb.ScanInput{
		TableName:                 aws.String(r.table),
		FilterExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})

	search := strings.ToLower(filter.Search)

	var posts []domain.Post

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, translate(err, "post")
		}

		var items []postItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshaling posts: %w", err)
		}

		for _, it := range items {
			if search != "" &&
				!strings.Contains(strings.ToLower(it.Title), search) &&
				!strings.Contains(strings.ToLower(it.Content), search) {
				continue
			}

			posts = append(posts, it.toDomain())
		}
	}

	return posts, nil
}

func (r *PostRepository) putIfAbsent(item map[string]types.AttributeValue) *types.Put {
	return &types.Put{
		TableName:                aws.String(r.table),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{"#pk": keyAttr},
	}
}
