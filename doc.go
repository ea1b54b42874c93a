// Package tabular contains the core components of tabular, a toolkit of statistical helpers for
// in-memory tables. This root package defines the types shared by every other package (column
// types, Schemas, Rows, row operations and Accumulators), and is an excellent overview of the
// library's key concepts. The concrete table lives in package frame, and the analysis helpers
// (bucket, groupstats, outlier, score, split, fit) build on it.
package tabular
