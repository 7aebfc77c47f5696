package fitsindex

import (
	"context"

	"github.com/rtrio/fitsindex/data"
)

// Query returns every row whose columns equal all supplied attributes.
// Attribute names must be schema columns; any unknown name aborts the
// call with an UnknownColumnError carrying the valid names, and no
// query is executed. An empty result is not an error.
//
// Exact match only; values are bound as parameters.
func (ix *Index) Query(ctx context.Context, attrs map[string]any) ([]data.Row, error) {
	var unknown []string
	for name := range attrs {
		if !ix.valid[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return nil, data.NewUnknownColumnError(unknown, ix.Columns())
	}

	return ix.st.Select(ctx, attrs)
}

// QueryPaths is the projection of Query onto the path column.
func (ix *Index) QueryPaths(ctx context.Context, attrs map[string]any) ([]string, error) {
	rows, err := ix.Query(ctx, attrs)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(rows))
	for _, row := range rows {
		paths = append(paths, row.Path())
	}

	return paths, nil
}
