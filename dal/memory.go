package dal

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MemoryClient keeps tables in process memory. Items go through the same
// attributevalue encoding as DynamoDB so both backends store identical shapes.
type MemoryClient struct {
	mu     sync.RWMutex
	tables map[string]*memoryTable
}

type memoryTable struct {
	hashKey string
	items   map[string]map[string]types.AttributeValue
}

// NewMemoryClient creates an empty in-memory database
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{tables: make(map[string]*memoryTable)}
}

func notFound(tableName string) error {
	return &types.ResourceNotFoundException{
		Message: aws.String(fmt.Sprintf("Requested resource not found: Table: %s not found", tableName)),
	}
}

func (m *MemoryClient) table(tableName string) (*memoryTable, error) {
	t, ok := m.tables[tableName]
	if !ok {
		return nil, notFound(tableName)
	}
	return t, nil
}

func (m *MemoryClient) GetItem(ctx context.Context, tableName, key, value string, result interface{}) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, err := m.table(tableName)
	if err != nil {
		return false, err
	}
	item, ok := t.items[value]
	if !ok {
		return false, nil
	}
	return true, attributevalue.UnmarshalMap(item, result)
}

func (m *MemoryClient) PutItem(ctx context.Context, tableName string, item interface{}) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.table(tableName)
	if err != nil {
		return err
	}
	keyValue, ok := av[t.hashKey].(*types.AttributeValueMemberS)
	if !ok {
		return fmt.Errorf("item has no string attribute %q", t.hashKey)
	}
	t.items[keyValue.Value] = av
	return nil
}

func (m *MemoryClient) UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.table(tableName)
	if err != nil {
		return err
	}
	item, ok := t.items[keyValue]
	if !ok {
		// DynamoDB UpdateItem upserts
		item = map[string]types.AttributeValue{key: &types.AttributeValueMemberS{Value: keyValue}}
		t.items[keyValue] = item
	}
	for field, value := range updates {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", field, err)
		}
		item[field] = av
	}
	return nil
}

func (m *MemoryClient) DeleteItem(ctx context.Context, tableName, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.table(tableName)
	if err != nil {
		return err
	}
	delete(t.items, value)
	return nil
}

// Scan returns all items ordered by key
func (m *MemoryClient) Scan(ctx context.Context, tableName string, results interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, err := m.table(tableName)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(t.items))
	for k := range t.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]map[string]types.AttributeValue, 0, len(keys))
	for _, k := range keys {
		items = append(items, t.items[k])
	}
	return attributevalue.UnmarshalListOfMaps(items, results)
}

func (m *MemoryClient) CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error {
	name := aws.ToString(input.TableName)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tables[name]; exists {
		return &types.ResourceInUseException{Message: aws.String("Table already exists: " + name)}
	}

	hashKey := ""
	for _, k := range input.KeySchema {
		if k.KeyType == types.KeyTypeHash {
			hashKey = aws.ToString(k.AttributeName)
		}
	}
	if hashKey == "" {
		return fmt.Errorf("table %s has no hash key", name)
	}

	m.tables[name] = &memoryTable{
		hashKey: hashKey,
		items:   make(map[string]map[string]types.AttributeValue),
	}
	return nil
}

func (m *MemoryClient) DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, err := m.table(tableName)
	if err != nil {
		return nil, err
	}
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName:   aws.String(tableName),
			TableStatus: types.TableStatusActive,
			ItemCount:   aws.Int64(int64(len(t.items))),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(t.hashKey), KeyType: types.KeyTypeHash},
			},
		},
	}, nil
}
