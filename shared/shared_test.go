package shared_test

import (
	"testing"

	"eduspace/shared"
	"eduspace/shared/constant"
	"eduspace/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "true", input: "true", expected: ptr(true)},
		{name: "false", input: "false", expected: ptr(false)},
		{name: "numeric true", input: "1", expected: ptr(true)},
		{name: "empty", input: "", expected: nil},
		{name: "garbage", input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				assert.Nil(t, got)

				return
			}

			require.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "exact division", total: 20, limit: 10, expected: 2},
		{name: "remainder rounds up", total: 21, limit: 10, expected: 3},
		{name: "zero total", total: 0, limit: 10, expected: 1},
		{name: "zero limit", total: 20, limit: 0, expected: 1},
		{name: "fewer than one page", total: 3, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type request struct {
		Name     string `db:"name"`
		Capacity *int   `db:"capacity"`
		Ignored  string
	}

	capacity := 40
	fields := shared.TransformFields(request{Name: "ECE Lab", Capacity: &capacity, Ignored: "x"}, "admin@nitw.ac.in")

	assert.Equal(t, "ECE Lab", fields["name"])
	assert.Equal(t, &capacity, fields["capacity"])
	assert.Equal(t, "admin@nitw.ac.in", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)

	// untagged and zero-valued fields never reach the update map
	assert.NotContains(t, fields, "Ignored")

	empty := shared.TransformFields(request{}, "admin@nitw.ac.in")
	assert.NotContains(t, empty, "name")
	assert.NotContains(t, empty, "capacity")
}

func TestRandomToken(t *testing.T) {
	first, err := shared.RandomToken()
	require.NoError(t, err)

	second, err := shared.RandomToken()
	require.NoError(t, err)

	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:abc", shared.BuildCacheKey("room:get", "abc"))
	assert.Equal(t, "limiter:1.2.3.4:agent", shared.BuildCacheKey("limiter", "1.2.3.4", "agent"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 2, Limit: 10}
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "department", Operator: dto.FilterOperatorEq, Value: "ECE", Table: "rooms"},
		},
	}

	key := shared.BuildCacheKeyWithQuery("room:gets", params, filter)
	same := shared.BuildCacheKeyWithQuery("room:gets", params, filter)
	other := shared.BuildCacheKeyWithQuery("room:gets", dto.QueryParams{Page: 3, Limit: 10}, filter)

	assert.Equal(t, key, same)
	assert.NotEqual(t, key, other)
	assert.True(t, len(key) > len("room:gets:"))
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("some-id", "id", "rooms")

	require.Len(t, group.Filters, 1)

	filter, ok := group.Filters[0].(dto.Filter)
	require.True(t, ok)

	assert.Equal(t, "id", filter.Field)
	assert.Equal(t, "some-id", filter.Value)
	assert.Equal(t, dto.FilterOperatorEq, filter.Operator)
	assert.Equal(t, "rooms", filter.Table)
}

func ptr[T any](v T) *T {
	return &v
}
