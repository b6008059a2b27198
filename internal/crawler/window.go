package crawler

// Window is one index-offset batch: fetch Limit items starting at
// Offset, counted from the newest item.
type Window struct {
	Offset int
	Limit  int
}

// ComputeWindow positions the next batch so ingestion advances from the
// oldest unfetched item toward the newest. When the remaining backlog is
// smaller than one page the offset clamps to zero and the limit shrinks
// by the overshoot, so the batch never reaches past the backlog.
func ComputeWindow(total, ingested, pageSize int) Window {
	offset := total - ingested - pageSize
	limit := pageSize
	if offset < 0 {
		limit += offset
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	return Window{Offset: offset, Limit: limit}
}
