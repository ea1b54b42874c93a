// Package stats provides NaN-aware numeric kernels used by the grouped statistics,
// bucketing and outlier helpers. NaN marks a missing value: it is skipped by every
// reduction, and returned whenever a statistic is undefined (empty input, zero variance).
package stats
