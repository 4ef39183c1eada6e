package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is an in-memory DynamoAPI used by the service tests. It
// understands the expression subset this application issues: equality and
// inequality comparisons, BETWEEN ranges, attribute_not_exists conditions,
// and single-field SET updates.
type fakeDynamo struct {
	tables map[string]*fakeTable

	// Optional error injection, consumed on the next matching call.
	GetErr      error
	PutErr      error
	UpdateErr   error
	DeleteErr   error
	QueryErr    error
	TransactErr error
}

type fakeTable struct {
	keyAttrs []string
	items    map[string]map[string]types.AttributeValue
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string]*fakeTable{}}
}

// newFakeStore returns a fake preloaded with the four application tables.
func newFakeStore() *fakeDynamo {
	fake := newFakeDynamo()
	fake.AddTable("Users", "username")
	fake.AddTable("Sessions", "username", "sessionId")
	fake.AddTable("Relationships", "username", "friend")
	fake.AddTable("Posts", "username", "postId")
	return fake
}

func (f *fakeDynamo) AddTable(name string, keyAttrs ...string) {
	f.tables[name] = &fakeTable{keyAttrs: keyAttrs, items: map[string]map[string]types.AttributeValue{}}
}

func (f *fakeDynamo) table(name string) (*fakeTable, error) {
	table, ok := f.tables[name]
	if !ok {
		return nil, fmt.Errorf("unknown table '%s'", name)
	}
	return table, nil
}

func attrString(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (t *fakeTable) keyString(item map[string]types.AttributeValue) string {
	parts := make([]string, 0, len(t.keyAttrs))
	for _, attr := range t.keyAttrs {
		parts = append(parts, attrString(item[attr]))
	}
	return strings.Join(parts, "|")
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	dup := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		dup[k] = v
	}
	return dup
}

func (f *fakeDynamo) GetItem(_ context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	if err := f.GetErr; err != nil {
		f.GetErr = nil
		return nil, err
	}
	table, err := f.table(tableName)
	if err != nil {
		return nil, err
	}
	item, ok := table.items[table.keyString(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return copyItem(item), nil
}

func (f *fakeDynamo) PutItem(_ context.Context, tableName string, item interface{}, conditionExpression string) error {
	if err := f.PutErr; err != nil {
		f.PutErr = nil
		return err
	}
	table, err := f.table(tableName)
	if err != nil {
		return err
	}
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	return table.put(marshaled, conditionExpression)
}

func (t *fakeTable) put(item map[string]types.AttributeValue, conditionExpression string) error {
	key := t.keyString(item)
	if strings.Contains(conditionExpression, "attribute_not_exists") {
		if _, exists := t.items[key]; exists {
			return fmt.Errorf("conditional put: %w", ErrAlreadyExists)
		}
	}
	t.items[key] = item
	return nil
}

var setClauseRe = regexp.MustCompile(`([#\w]+) = :(\w+)`)

func (f *fakeDynamo) UpdateItem(
	_ context.Context,
	tableName string,
	key map[string]types.AttributeValue,
	updateExpression string,
	expressionAttributeValues map[string]types.AttributeValue,
	expressionAttributeNames map[string]string,
) (map[string]types.AttributeValue, error) {
	if err := f.UpdateErr; err != nil {
		f.UpdateErr = nil
		return nil, err
	}
	table, err := f.table(tableName)
	if err != nil {
		return nil, err
	}
	item, err := table.applyUpdate(key, updateExpression, expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		return nil, err
	}
	return copyItem(item), nil
}

func (t *fakeTable) applyUpdate(
	key map[string]types.AttributeValue,
	updateExpression string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (map[string]types.AttributeValue, error) {
	if !strings.HasPrefix(updateExpression, "SET ") {
		return nil, fmt.Errorf("unsupported update expression '%s'", updateExpression)
	}

	keyStr := t.keyString(key)
	item, exists := t.items[keyStr]
	if !exists {
		// DynamoDB creates the item on update if absent.
		item = copyItem(key)
		t.items[keyStr] = item
	}

	for _, clause := range setClauseRe.FindAllStringSubmatch(updateExpression, -1) {
		field, valueRef := clause[1], clause[2]
		if resolved, ok := names[field]; ok {
			field = resolved
		}
		value, ok := values[":"+valueRef]
		if !ok {
			return nil, fmt.Errorf("missing expression value ':%s'", valueRef)
		}
		item[field] = value
	}
	return item, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, tableName string, key map[string]types.AttributeValue) error {
	if err := f.DeleteErr; err != nil {
		f.DeleteErr = nil
		return err
	}
	table, err := f.table(tableName)
	if err != nil {
		return err
	}
	delete(table.items, table.keyString(key))
	return nil
}

var (
	betweenRe = regexp.MustCompile(`(\w+) BETWEEN :(\w+) AND :(\w+)`)
	compareRe = regexp.MustCompile(`(\w+) (=|<>) :(\w+)`)
)

func attrNumber(av types.AttributeValue) (int64, bool) {
	n, ok := av.(*types.AttributeValueMemberN)
	if !ok {
		return 0, false
	}
	value, err := strconv.ParseInt(n.Value, 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func attrEqual(a, b types.AttributeValue) bool {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberBOOL:
		bv, ok := b.(*types.AttributeValueMemberBOOL)
		return ok && av.Value == bv.Value
	default:
		return false
	}
}

// matchesExpression evaluates the conjunction of BETWEEN and =/<> clauses
// against an item.
func matchesExpression(item map[string]types.AttributeValue, expression string, values map[string]types.AttributeValue) bool {
	remaining := expression
	for _, clause := range betweenRe.FindAllStringSubmatch(expression, -1) {
		field, loRef, hiRef := clause[1], clause[2], clause[3]
		value, ok := attrNumber(item[field])
		if !ok {
			return false
		}
		lo, loOK := attrNumber(values[":"+loRef])
		hi, hiOK := attrNumber(values[":"+hiRef])
		if !loOK || !hiOK || value < lo || value > hi {
			return false
		}
		remaining = strings.Replace(remaining, clause[0], "", 1)
	}

	for _, clause := range compareRe.FindAllStringSubmatch(remaining, -1) {
		field, op, valueRef := clause[1], clause[2], clause[3]
		attr, present := item[field]
		if !present {
			return false
		}
		equal := attrEqual(attr, values[":"+valueRef])
		if (op == "=" && !equal) || (op == "<>" && equal) {
			return false
		}
	}
	return true
}

func (f *fakeDynamo) QueryItems(
	_ context.Context,
	tableName string,
	keyConditionExpression string,
	expressionAttributeValues map[string]types.AttributeValue,
	_ map[string]string,
	filterExpression string,
) ([]map[string]types.AttributeValue, error) {
	if err := f.QueryErr; err != nil {
		f.QueryErr = nil
		return nil, err
	}
	table, err := f.table(tableName)
	if err != nil {
		return nil, err
	}

	var results []map[string]types.AttributeValue
	for _, item := range table.items {
		if !matchesExpression(item, keyConditionExpression, expressionAttributeValues) {
			continue
		}
		if filterExpression != "" && !matchesExpression(item, filterExpression, expressionAttributeValues) {
			continue
		}
		results = append(results, copyItem(item))
	}
	return results, nil
}

// TransactWriteItems validates every condition first, then applies all
// writes, so a failed condition leaves the store untouched.
func (f *fakeDynamo) TransactWriteItems(_ context.Context, items []types.TransactWriteItem) error {
	if err := f.TransactErr; err != nil {
		f.TransactErr = nil
		return err
	}

	for _, item := range items {
		if item.Put == nil || item.Put.ConditionExpression == nil {
			continue
		}
		table, err := f.table(*item.Put.TableName)
		if err != nil {
			return err
		}
		if strings.Contains(*item.Put.ConditionExpression, "attribute_not_exists") {
			if _, exists := table.items[table.keyString(item.Put.Item)]; exists {
				return fmt.Errorf("transaction condition failed: %w", ErrAlreadyExists)
			}
		}
	}

	for _, item := range items {
		switch {
		case item.Put != nil:
			table, err := f.table(*item.Put.TableName)
			if err != nil {
				return err
			}
			table.items[table.keyString(item.Put.Item)] = copyItem(item.Put.Item)

		case item.Update != nil:
			table, err := f.table(*item.Update.TableName)
			if err != nil {
				return err
			}
			if _, err := table.applyUpdate(item.Update.Key, *item.Update.UpdateExpression, item.Update.ExpressionAttributeValues, item.Update.ExpressionAttributeNames); err != nil {
				return err
			}

		case item.Delete != nil:
			table, err := f.table(*item.Delete.TableName)
			if err != nil {
				return err
			}
			delete(table.items, table.keyString(item.Delete.Key))
		}
	}
	return nil
}
