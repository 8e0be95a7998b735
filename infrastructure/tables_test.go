package infrastructure

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTablesUsesPrefixedName(t *testing.T) {
	input, err := GetTables("dev_sessions")
	require.NoError(t, err)

	assert.Equal(t, "dev_sessions", aws.ToString(input.TableName))
	require.Len(t, input.KeySchema, 1)
	assert.Equal(t, "session_id", aws.ToString(input.KeySchema[0].AttributeName))
	assert.Equal(t, types.KeyTypeHash, input.KeySchema[0].KeyType)
	assert.Equal(t, types.BillingModePayPerRequest, input.BillingMode)
	assert.Nil(t, input.ProvisionedThroughput)
}

func TestGetTablesUnknownSchema(t *testing.T) {
	_, err := GetTables("dev_users")
	assert.Error(t, err)
}

func TestProvisionedBilling(t *testing.T) {
	schema, err := GetSchema("sessions")
	require.NoError(t, err)
	assert.Equal(t, "expires_at", schema.TimeToLiveAttribute)

	schema.BillingMode = "PROVISIONED"
	input := schema.ToDynamoInput()
	assert.Equal(t, types.BillingModeProvisioned, input.BillingMode)
	require.NotNil(t, input.ProvisionedThroughput)
	assert.Equal(t, int64(5), aws.ToInt64(input.ProvisionedThroughput.ReadCapacityUnits))
}

func TestExtractBaseTableName(t *testing.T) {
	assert.Equal(t, "sessions", ExtractBaseTableName("prod_sessions"))
	assert.Equal(t, "sessions", ExtractBaseTableName("sessions"))
}
