package sql

import "io"

// RowIter is the lazy row stream every composition stage pulls from on
// demand. Next returns io.EOF when exhausted. Not restartable
// unless the concrete iterator documents otherwise.
type RowIter interface {
	Next(ctx *Context) (Row, error)
	Close(ctx *Context) error
}

// RowIterToRows drains an iterator into a materialized slice, closing it
// when done or on error. Mirrors go-mysql-server's sql.RowIterToRows
// helper.
func RowIterToRows(ctx *Context, iter RowIter) ([]Row, error) {
	var rows []Row
	for {
		row, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = iter.Close(ctx)
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, iter.Close(ctx)
}

// sliceIter is the trivial RowIter over a pre-materialized slice, used
// wherever a stage must buffer (ORDER BY, window partitioning, non-
// restartable source materialization for subquery re-evaluation).
type sliceIter struct {
	rows []Row
	pos  int
}

// NewSliceIter builds a RowIter over an already-materialized row slice.
func NewSliceIter(rows []Row) RowIter {
	return &sliceIter{rows: rows}
}

func (s *sliceIter) Next(ctx *Context) (Row, error) {
	if s.pos >= len(s.rows) {
		return Row{}, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}

func (s *sliceIter) Close(ctx *Context) error { return nil }
