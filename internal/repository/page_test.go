package repository

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageOptionsNormalized(t *testing.T) {
	tests := []struct {
		name      string
		opts      PageOptions
		wantPage  int
		wantLimit int
	}{
		{name: "zero value gets defaults", opts: PageOptions{}, wantPage: 1, wantLimit: 10},
		{name: "negative values get defaults", opts: PageOptions{Page: -3, Limit: -1}, wantPage: 1, wantLimit: 10},
		{name: "explicit values kept", opts: PageOptions{Page: 4, Limit: 25}, wantPage: 4, wantLimit: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.Normalized()
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestNewPageResult(t *testing.T) {
	t.Run("middle page of seven docs", func(t *testing.T) {
		// page 2, limit 5 over 7 total leaves 2 docs on the last page
		r := NewPageResult([]string{"f", "g"}, 7, 2, 5)

		assert.Len(t, r.Docs, 2)
		assert.Equal(t, int64(7), r.TotalDocs)
		assert.Equal(t, 2, r.TotalPages)
		assert.False(t, r.HasNextPage)
		assert.True(t, r.HasPrevPage)
		assert.Nil(t, r.NextPage)
		require.NotNil(t, r.PrevPage)
		assert.Equal(t, 1, *r.PrevPage)
		assert.Equal(t, int64(6), r.PagingCounter)
	})

	t.Run("first page with more to come", func(t *testing.T) {
		r := NewPageResult([]string{"a", "b", "c", "d", "e"}, 7, 1, 5)

		assert.Equal(t, 2, r.TotalPages)
		assert.True(t, r.HasNextPage)
		assert.False(t, r.HasPrevPage)
		require.NotNil(t, r.NextPage)
		assert.Equal(t, 2, *r.NextPage)
		assert.Nil(t, r.PrevPage)
		assert.Equal(t, int64(1), r.PagingCounter)
	})

	t.Run("beyond the last page", func(t *testing.T) {
		r := NewPageResult([]string{}, 7, 5, 5)

		assert.Empty(t, r.Docs)
		assert.Equal(t, 2, r.TotalPages)
		assert.False(t, r.HasNextPage)
		assert.True(t, r.HasPrevPage)
	})

	t.Run("empty collection", func(t *testing.T) {
		r := NewPageResult[string](nil, 0, 1, 10)

		assert.NotNil(t, r.Docs)
		assert.Empty(t, r.Docs)
		assert.Equal(t, 0, r.TotalPages)
		assert.False(t, r.HasNextPage)
		assert.False(t, r.HasPrevPage)
	})

	t.Run("exact multiple of limit", func(t *testing.T) {
		r := NewPageResult(make([]int, 5), 10, 2, 5)

		assert.Equal(t, 2, r.TotalPages)
		assert.False(t, r.HasNextPage)
	})
}

func TestPageResultMarshalJSON(t *testing.T) {
	t.Run("default labels", func(t *testing.T) {
		r := NewPageResult([]string{"a"}, 1, 1, 10)

		b, err := json.Marshal(r)
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, json.Unmarshal(b, &out))
		assert.Contains(t, out, "docs")
		assert.Contains(t, out, "totalDocs")
		assert.Contains(t, out, "pagingCounter")
		assert.Nil(t, out["nextPage"])
		assert.Nil(t, out["prevPage"])
	})

	t.Run("custom labels remap keys", func(t *testing.T) {
		r := NewPageResult([]string{"a"}, 1, 1, 10).WithLabels(&CustomLabels{
			Docs:      "items",
			TotalDocs: "total",
		})

		b, err := json.Marshal(r)
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, json.Unmarshal(b, &out))
		assert.Contains(t, out, "items")
		assert.Contains(t, out, "total")
		assert.NotContains(t, out, "docs")
		assert.NotContains(t, out, "totalDocs")
		// unlabeled keys keep the default name
		assert.Contains(t, out, "limit")
	})
}
