package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValuesFilters(t *testing.T) {
	values, err := url.ParseQuery("status=eq.new&type=neq.general&email=someone@example.com")
	require.NoError(t, err)

	q := ParseValues(values, DefaultLimit)

	require.Len(t, q.Filters, 3)

	status, ok := q.Get("status")
	require.True(t, ok)
	assert.Equal(t, OpEq, status.Op)
	assert.Equal(t, "new", status.Value)

	typ, ok := q.Get("type")
	require.True(t, ok)
	assert.Equal(t, OpNeq, typ.Op)
	assert.Equal(t, "general", typ.Value)

	// bare value is an exact match
	email, ok := q.Get("email")
	require.True(t, ok)
	assert.Equal(t, OpEq, email.Op)
	assert.Equal(t, "someone@example.com", email.Value)
}

func TestParseValuesPagination(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantLimit  int
		wantOffset int
	}{
		{"explicit", "limit=10&offset=20", 10, 20},
		{"defaults", "", DefaultLimit, 0},
		{"malformed limit", "limit=abc", DefaultLimit, 0},
		{"negative offset", "offset=-5", DefaultLimit, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.raw)
			require.NoError(t, err)

			q := ParseValues(values, DefaultLimit)
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.Equal(t, tt.wantOffset, q.Offset)
		})
	}
}

func TestParseValuesCount(t *testing.T) {
	values, _ := url.ParseQuery("select=count&status=eq.new")
	q := ParseValues(values, DefaultLimit)

	assert.True(t, q.CountOnly)
	assert.True(t, q.Has("status"))
	assert.False(t, q.Has("select"))
}

func TestParseValuesIgnoresOrder(t *testing.T) {
	values, _ := url.ParseQuery("order=created_at.desc")
	q := ParseValues(values, DefaultLimit)

	assert.Empty(t, q.Filters)
}

func TestFilterMatch(t *testing.T) {
	assert.True(t, Eq("status", "new").Match("new"))
	assert.False(t, Eq("status", "new").Match("replied"))
	assert.True(t, Neq("status", "deleted").Match("new"))
	assert.False(t, Neq("status", "deleted").Match("deleted"))
}

func TestWithDoesNotMutate(t *testing.T) {
	base := Query{Filters: []Filter{Eq("status", "new")}}
	extended := base.With(Eq("is_read", "false"))

	assert.Len(t, base.Filters, 1)
	assert.Len(t, extended.Filters, 2)
	assert.True(t, extended.Has("is_read"))
}
