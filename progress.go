package lhasa

// ProgressFunc is invoked periodically during Extract/Check with the
// count of blocks completed and the total expected for the current
// entry. A "block" is codec-defined: ring_size/2 for lh5/lh6/lh7,
// ring_size/4 for lh4 (see internal/lhnew.Params.ProgressBlockSize).
// totalBlocks is 0 when the header's length is 0 (nothing to report
// against).
type ProgressFunc func(blocksDone, totalBlocks int)
