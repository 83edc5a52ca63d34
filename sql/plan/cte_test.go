package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtabledb/fedsql/sql"
)

func TestRecursiveCTEChildrenIsAnchorOnly(t *testing.T) {
	anchor := leaf()
	recursive := leaf()
	var working []sql.Row
	r := NewRecursiveCTE("cte", anchor, recursive, &working)
	require.Equal(t, []Node{anchor}, r.Children())
	require.Contains(t, r.String(), "RecursiveCTE(cte)")

	newAnchor := leaf()
	rebuilt, err := r.WithChildren(newAnchor)
	require.NoError(t, err)
	rc := rebuilt.(*RecursiveCTE)
	require.Same(t, newAnchor, rc.Anchor)
	require.Same(t, recursive, rc.Recursive)
	require.Same(t, &working, rc.Working)
}
