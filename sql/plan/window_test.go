package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtabledb/fedsql/sql/expression/window"
)

func TestWindowString(t *testing.T) {
	w := NewWindow(leaf(), []WindowFunc{{Kind: window.RowNumber, Alias: "rn"}})
	require.Contains(t, w.String(), "1 funcs")
	require.Len(t, w.Children(), 1)

	rebuilt, err := w.WithChildren(leaf())
	require.NoError(t, err)
	require.Equal(t, "rn", rebuilt.(*Window).Funcs[0].Alias)
}
