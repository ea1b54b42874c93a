package tabular

// An Accumulator is a reduction technique, which siphons Rows into
// a custom data structure and produces a single value. Accumulators
// back every grouped aggregation: one Accumulator is produced per group
// by an AccumulatorFactory, fed the group's Rows, and its Result becomes
// the group's value in the aggregated table. Partial Accumulators over
// disjoint sets of Rows may be combined with Merge.
type Accumulator interface {
	Accumulate(row Row) error  // Accumulate adds a row to this Accumulator
	Merge(o Accumulator) error // Merge merges another Accumulator into this one
	Result() interface{}       // Result returns the accumulated value, or nil if none could be computed
	ResultType() ColumnType    // ResultType returns the ColumnType of the value produced by Result
}
