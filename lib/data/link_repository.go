package data

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"portfolio/lib/constants"
	"portfolio/lib/models"
)

// LinkRepository reads visitor links by their identifier.
// A nil link with a nil error means the link is unknown or expired.
type LinkRepository interface {
	GetLink(ctx context.Context, tableName, linkID string) (*models.VisitorLink, error)
}

type DynamoDBClientInterface interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

var _ DynamoDBClientInterface = (*dynamodb.Client)(nil)

type LinkDao struct {
	DynamoDB DynamoDBClientInterface
	Logger   *logrus.Logger
	Now      func() time.Time
}

func (dao *LinkDao) GetLink(ctx context.Context, tableName, linkID string) (*models.VisitorLink, error) {
	result, err := dao.DynamoDB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			constants.LINK_ID_ATTRIBUTE: &types.AttributeValueMemberS{Value: linkID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error getting visitor link from %s: %w", tableName, err)
	}
	if len(result.Item) == 0 {
		return nil, nil
	}

	var link models.VisitorLink
	if err := attributevalue.UnmarshalMap(result.Item, &link); err != nil {
		return nil, fmt.Errorf("error unmarshaling visitor link: %w", err)
	}

	if link.Expired(dao.now()) {
		dao.Logger.WithFields(logrus.Fields{
			"operation": "GetLink",
			"link_id":   linkID,
			"ttl":       link.TTL,
		}).Debug("Visitor link past its TTL but not yet deleted")
		return nil, nil
	}
	return &link, nil
}

func (dao *LinkDao) now() time.Time {
	if dao.Now != nil {
		return dao.Now()
	}
	return time.Now()
}
