package controllers

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/rsastri21/status-application/services"
)

// memStore is a minimal in-memory DynamoAPI covering the store operations
// the auth surface performs. The service-level tests exercise the richer
// query and transaction paths.
type memStore struct {
	keyAttrs map[string][]string
	items    map[string]map[string]map[string]types.AttributeValue

	getErr error
}

func newMemStore() *memStore {
	return &memStore{
		keyAttrs: map[string][]string{
			"Users":    {"username"},
			"Sessions": {"username", "sessionId"},
			"Posts":    {"username", "postId"},
		},
		items: map[string]map[string]map[string]types.AttributeValue{},
	}
}

func (m *memStore) keyString(table string, item map[string]types.AttributeValue) string {
	parts := make([]string, 0, len(m.keyAttrs[table]))
	for _, attr := range m.keyAttrs[table] {
		if s, ok := item[attr].(*types.AttributeValueMemberS); ok {
			parts = append(parts, s.Value)
		}
	}
	return strings.Join(parts, "|")
}

func (m *memStore) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	item, ok := m.items[tableName][m.keyString(tableName, key)]
	if !ok {
		return nil, services.ErrNotFound
	}
	return item, nil
}

func (m *memStore) PutItem(ctx context.Context, tableName string, item interface{}, conditionExpression string) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	key := m.keyString(tableName, av)
	if strings.Contains(conditionExpression, "attribute_not_exists") {
		if _, exists := m.items[tableName][key]; exists {
			return services.ErrAlreadyExists
		}
	}
	if m.items[tableName] == nil {
		m.items[tableName] = map[string]map[string]types.AttributeValue{}
	}
	m.items[tableName][key] = av
	return nil
}

func (m *memStore) UpdateItem(ctx context.Context, tableName string, key map[string]types.AttributeValue, updateExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error) {
	ks := m.keyString(tableName, key)
	item, ok := m.items[tableName][ks]
	if !ok {
		item = map[string]types.AttributeValue{}
		for attr, value := range key {
			item[attr] = value
		}
	}

	for _, clause := range strings.Split(strings.TrimPrefix(updateExpression, "SET "), ",") {
		parts := strings.SplitN(strings.TrimSpace(clause), " = ", 2)
		if len(parts) != 2 {
			continue
		}
		name := parts[0]
		if resolved, ok := expressionAttributeNames[name]; ok {
			name = resolved
		}
		item[name] = expressionAttributeValues[parts[1]]
	}

	if m.items[tableName] == nil {
		m.items[tableName] = map[string]map[string]types.AttributeValue{}
	}
	m.items[tableName][ks] = item
	return item, nil
}

func (m *memStore) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	delete(m.items[tableName], m.keyString(tableName, key))
	return nil
}

func (m *memStore) QueryItems(ctx context.Context, tableName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, filterExpression string) ([]map[string]types.AttributeValue, error) {
	return nil, nil
}

func (m *memStore) TransactWriteItems(ctx context.Context, items []types.TransactWriteItem) error {
	return nil
}
