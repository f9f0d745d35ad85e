package pagination

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canada-ca/tracker-sub010/internal/utils"
)

func TestGlobalID(t *testing.T) {
	gid := ToGlobalID("domain", "dom_123")
	typeName, id := FromGlobalID(gid)
	assert.Equal(t, "domain", typeName)
	assert.Equal(t, "dom_123", id)

	typeName, id = FromGlobalID("not base64!")
	assert.Empty(t, typeName)
	assert.Empty(t, id)
}

func TestNewWindow(t *testing.T) {
	ctx := context.Background()

	t.Run("requires first or last", func(t *testing.T) {
		_, err := NewWindow(ctx, "Domain", "domain", Args{})
		require.Error(t, err)
		assert.Equal(t, "You must provide a `first` or `last` value to properly paginate the `Domain` connection.", err.Error())
	})

	t.Run("rejects first and last together", func(t *testing.T) {
		_, err := NewWindow(ctx, "Domain", "domain", Args{First: utils.ToPtr[int32](1), Last: utils.ToPtr[int32](1)})
		require.Error(t, err)
		assert.Equal(t, "Passing both `first` and `last` to paginate the `Domain` connection is not supported.", err.Error())
	})

	t.Run("rejects negative values", func(t *testing.T) {
		_, err := NewWindow(ctx, "Organization", "organization", Args{Last: utils.ToPtr[int32](-1)})
		require.Error(t, err)
		assert.Equal(t, "`last` on the `Organization` connection cannot be less than zero.", err.Error())
	})

	t.Run("rejects more than the limit", func(t *testing.T) {
		_, err := NewWindow(ctx, "Domain", "domain", Args{First: utils.ToPtr[int32](101)})
		require.Error(t, err)
		assert.Equal(t, "Requesting `101` records on the `Domain` connection exceeds the `first` limit of 100 records.", err.Error())
	})

	t.Run("decodes cursors", func(t *testing.T) {
		after := ToGlobalID("domain", "dom_1")
		w, err := NewWindow(ctx, "Domain", "domain", Args{First: utils.ToPtr[int32](10), After: &after})
		require.NoError(t, err)
		assert.Equal(t, Window{After: "dom_1", Limit: 10}, w)
	})

	t.Run("rejects cursor of another type", func(t *testing.T) {
		before := ToGlobalID("organization", "org_1")
		_, err := NewWindow(ctx, "Domain", "domain", Args{Last: utils.ToPtr[int32](10), Before: &before})
		var perr *Error
		require.ErrorAs(t, err, &perr)
	})
}

func TestNewPage(t *testing.T) {
	t.Run("forward with look-ahead row", func(t *testing.T) {
		page := NewPage(Window{Limit: 2}, []int{1, 2, 3}, 10)
		assert.Equal(t, []int{1, 2}, page.Items)
		assert.True(t, page.HasNextPage)
		assert.False(t, page.HasPreviousPage)
		assert.Equal(t, int64(10), page.TotalCount)
	})

	t.Run("forward last page after cursor", func(t *testing.T) {
		page := NewPage(Window{Limit: 2, After: "x"}, []int{3}, 3)
		assert.Equal(t, []int{3}, page.Items)
		assert.False(t, page.HasNextPage)
		assert.True(t, page.HasPreviousPage)
	})

	t.Run("backward reverses rows", func(t *testing.T) {
		page := NewPage(Window{Limit: 2, Backward: true}, []int{9, 8, 7}, 9)
		assert.Equal(t, []int{8, 9}, page.Items)
		assert.True(t, page.HasPreviousPage)
		assert.False(t, page.HasNextPage)
	})
}
