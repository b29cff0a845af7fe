package trace

import (
	"context"

	"github.com/sarchlab/vmsim/datarecording"
)

// AccessFilter selects recorded accesses. Empty fields match everything.
type AccessFilter struct {
	Manager string
	Kind    string
	Limit   int
	Offset  int
}

// QueryAccesses reads back the accesses written by a DB tracer, ordered by
// manager and sequence number. The count ignores Limit and Offset.
func QueryAccesses(
	ctx context.Context,
	reader datarecording.DataReader,
	filter AccessFilter,
) ([]AccessEntry, int, error) {
	reader.MapTable(AccessTableName, AccessEntry{})

	params := datarecording.QueryParams{
		OrderBy: "Manager, Seq",
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}.
		WhereEqual("Manager", filter.Manager).
		WhereEqual("Kind", filter.Kind)

	return datarecording.QueryAs[AccessEntry](
		ctx, reader, AccessTableName, params)
}
