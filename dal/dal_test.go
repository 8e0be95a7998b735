package dal

import (
	"context"
	"daassist-web/models"
	"daassist-web/utils/logger"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type sessionItem struct {
	SessionID string            `dynamodbav:"session_id"`
	Values    map[string]string `dynamodbav:"values"`
	LastSeen  time.Time         `dynamodbav:"last_seen"`
}

// MemoryClientTestSuite exercises the in-memory backend
type MemoryClientTestSuite struct {
	suite.Suite
	ctx    context.Context
	client *MemoryClient
}

func (suite *MemoryClientTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.client = NewMemoryClient()
	err := suite.client.CreateTable(suite.ctx, &dynamodb.CreateTableInput{
		TableName: aws.String("test_sessions"),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("session_id"), KeyType: types.KeyTypeHash},
		},
	})
	require.NoError(suite.T(), err)
}

func TestMemoryClientTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryClientTestSuite))
}

func (suite *MemoryClientTestSuite) TestPutAndGet() {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	err := suite.client.PutItem(suite.ctx, "test_sessions", sessionItem{
		SessionID: "abc",
		Values:    map[string]string{"access_token": "tok"},
		LastSeen:  now,
	})
	require.NoError(suite.T(), err)

	var got sessionItem
	found, err := suite.client.GetItem(suite.ctx, "test_sessions", "session_id", "abc", &got)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), found)
	assert.Equal(suite.T(), "tok", got.Values["access_token"])
	assert.True(suite.T(), now.Equal(got.LastSeen))
}

func (suite *MemoryClientTestSuite) TestGetMissingItem() {
	var got sessionItem
	found, err := suite.client.GetItem(suite.ctx, "test_sessions", "session_id", "missing", &got)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), found)
}

func (suite *MemoryClientTestSuite) TestUpdateItemUpserts() {
	err := suite.client.UpdateItem(suite.ctx, "test_sessions", "session_id", "new", map[string]interface{}{
		"values": map[string]string{"refresh_token": "r"},
	})
	require.NoError(suite.T(), err)

	var got sessionItem
	found, err := suite.client.GetItem(suite.ctx, "test_sessions", "session_id", "new", &got)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), found)
	assert.Equal(suite.T(), "new", got.SessionID)
	assert.Equal(suite.T(), "r", got.Values["refresh_token"])
}

func (suite *MemoryClientTestSuite) TestDeleteAndScan() {
	for _, id := range []string{"b", "a", "c"} {
		require.NoError(suite.T(), suite.client.PutItem(suite.ctx, "test_sessions", sessionItem{SessionID: id}))
	}
	require.NoError(suite.T(), suite.client.DeleteItem(suite.ctx, "test_sessions", "session_id", "b"))

	var items []sessionItem
	require.NoError(suite.T(), suite.client.Scan(suite.ctx, "test_sessions", &items))
	require.Len(suite.T(), items, 2)
	assert.Equal(suite.T(), "a", items[0].SessionID)
	assert.Equal(suite.T(), "c", items[1].SessionID)
}

func (suite *MemoryClientTestSuite) TestUnknownTableIsResourceNotFound() {
	_, err := suite.client.DescribeTable(suite.ctx, "nope")
	require.Error(suite.T(), err)

	var apiErr smithy.APIError
	require.True(suite.T(), errors.As(err, &apiErr))
	assert.Equal(suite.T(), "ResourceNotFoundException", apiErr.ErrorCode())

	err = suite.client.PutItem(suite.ctx, "nope", sessionItem{SessionID: "x"})
	assert.Error(suite.T(), err)
}

func (suite *MemoryClientTestSuite) TestCreateTableTwice() {
	err := suite.client.CreateTable(suite.ctx, &dynamodb.CreateTableInput{
		TableName: aws.String("test_sessions"),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("session_id"), KeyType: types.KeyTypeHash},
		},
	})
	var inUse *types.ResourceInUseException
	assert.True(suite.T(), errors.As(err, &inUse))
}

func (suite *MemoryClientTestSuite) TestDescribeTable() {
	require.NoError(suite.T(), suite.client.PutItem(suite.ctx, "test_sessions", sessionItem{SessionID: "x"}))

	out, err := suite.client.DescribeTable(suite.ctx, "test_sessions")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), types.TableStatusActive, out.Table.TableStatus)
	assert.Equal(suite.T(), int64(1), aws.ToInt64(out.Table.ItemCount))
}

func TestBuildUpdateExpression(t *testing.T) {
	expr, names, values, err := buildUpdateExpression(map[string]interface{}{
		"values":    map[string]string{"k": "v"},
		"last_seen": "2024-01-01T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "SET #last_seen = :last_seen, #values = :values", expr)
	assert.Equal(t, "values", names["#values"])
	assert.Contains(t, values, ":last_seen")

	_, _, _, err = buildUpdateExpression(nil)
	assert.Error(t, err)
}

func TestNewDatabaseClientSelectsBackend(t *testing.T) {
	log := logger.NewLoggerWithOutput("error", "json", io.Discard)

	client, err := NewDatabaseClient(context.Background(), &models.Config{StorageBackend: models.StorageMemory}, log)
	require.NoError(t, err)
	assert.IsType(t, &MemoryClient{}, client)

	_, err = NewDatabaseClient(context.Background(), &models.Config{StorageBackend: "redis"}, log)
	assert.Error(t, err)
}
