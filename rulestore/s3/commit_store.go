package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/matchgo/rulestore"
)

// Current is the reserved document name holding the name of the currently
// published rule-set document.
const Current = "CURRENT"

// CommitStore implements rulestore.Store backed by S3 with DynamoDB for
// atomic rule-set publishes. This lets several publishers push new rule-set
// versions without clobbering each other.
//
// Rule-set documents themselves live in S3 under version-unique names. The
// Current pointer is kept in DynamoDB: publishing puts the document to S3 and
// then commits a new version row with a conditional write, which provides
// the compare-and-swap semantics S3 lacks. Loaders read Current to discover
// the active document.
//
// Table schema:
//   - Partition key: base_uri (string) - the S3 prefix/path
//   - Sort key: version (number) - monotonically increasing version
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name matchgo-commits \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type CommitStore struct {
	s3Store   *Store
	ddbClient DDBClient
	tableName string
	baseURI   string // S3 bucket/prefix used as partition key
}

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ErrConcurrentModification is returned when a concurrent publish is
// detected.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// NewCommitStore creates a new S3+DynamoDB commit store.
// The baseURI should be "s3://bucket/prefix" format used as partition key.
func NewCommitStore(s3Store *Store, ddbClient DDBClient, tableName, baseURI string) *CommitStore {
	return &CommitStore{
		s3Store:   s3Store,
		ddbClient: ddbClient,
		tableName: tableName,
		baseURI:   baseURI,
	}
}

// Get reads a document. For Current, the active document name is read from
// DynamoDB.
func (s *CommitStore) Get(ctx context.Context, name string) ([]byte, error) {
	if name == Current {
		version, docName, err := s.getLatestVersion(ctx)
		if err != nil {
			return nil, err
		}
		if version == 0 {
			return nil, rulestore.ErrNotFound
		}
		return []byte(docName), nil
	}
	return s.s3Store.Get(ctx, name)
}

// Put writes a document. For Current, a new version is committed with a
// DynamoDB conditional write.
func (s *CommitStore) Put(ctx context.Context, name string, data []byte) error {
	if name == Current {
		return s.commitVersion(ctx, string(data))
	}
	return s.s3Store.Put(ctx, name, data)
}

// Delete removes a document. Current cannot be deleted.
func (s *CommitStore) Delete(ctx context.Context, name string) error {
	if name == Current {
		return errors.New("the CURRENT pointer cannot be deleted")
	}
	return s.s3Store.Delete(ctx, name)
}

// List lists documents under the prefix.
func (s *CommitStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.s3Store.List(ctx, prefix)
}

// getLatestVersion queries DynamoDB for the latest committed version.
func (s *CommitStore) getLatestVersion(ctx context.Context) (uint64, string, error) {
	resp, err := s.ddbClient.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: s.baseURI},
		},
		ScanIndexForward: aws.Bool(false), // Descending order
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("failed to query DynamoDB: %w", err)
	}

	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute in DynamoDB")
	}
	docAttr, ok := item["document_name"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid document_name attribute in DynamoDB")
	}

	var version uint64
	if _, err := fmt.Sscanf(versionAttr.Value, "%d", &version); err != nil {
		return 0, "", fmt.Errorf("failed to parse version: %w", err)
	}

	return version, docAttr.Value, nil
}

// commitVersion atomically commits a new rule-set version using a DynamoDB
// conditional write.
func (s *CommitStore) commitVersion(ctx context.Context, docName string) error {
	currentVersion, _, err := s.getLatestVersion(ctx)
	if err != nil {
		return err
	}
	return s.commitVersionAt(ctx, docName, currentVersion+1)
}

// commitVersionAt writes the version row for newVersion, failing with
// ErrConcurrentModification when another publisher got there first.
func (s *CommitStore) commitVersionAt(ctx context.Context, docName string, newVersion uint64) error {
	// Conditional put: only succeed if this version doesn't exist yet
	_, err := s.ddbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"base_uri":      &types.AttributeValueMemberS{Value: s.baseURI},
			"version":       &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", newVersion)},
			"document_name": &types.AttributeValueMemberS{Value: docName},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})

	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("failed to commit version to DynamoDB: %w", err)
	}

	return nil
}
