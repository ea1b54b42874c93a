package util

const (
	// GroupColumn is the name of the temporary column holding group labels
	GroupColumn = "_group"
	// HueColumn is the name of the temporary column holding hue labels
	HueColumn = "_hue"
	// LabelColumn is the name of the temporary column holding combined group/hue labels
	LabelColumn = "_label"
	// KIndexColumn is the name of the column holding k-fold part indices
	KIndexColumn = "_k_index"
)
