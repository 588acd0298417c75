package chat

// Record describes one uploaded remote file, keyed by the local path it
// came from.
type Record struct {
	URI      string
	Name     string
	MimeType string
	Size     int64
}

// UploadSet tracks uploaded files for the process lifetime. Entries
// leave only through Cleanup or process exit. Insertion order is kept
// so listings are stable.
type UploadSet struct {
	order   []string
	records map[string]Record
}

// NewUploadSet returns an empty set.
func NewUploadSet() *UploadSet {
	return &UploadSet{records: make(map[string]Record)}
}

// Put stores or replaces the record for a local path.
func (u *UploadSet) Put(path string, rec Record) {
	if _, exists := u.records[path]; !exists {
		u.order = append(u.order, path)
	}
	u.records[path] = rec
}

// Get returns the record for a local path.
func (u *UploadSet) Get(path string) (Record, bool) {
	rec, ok := u.records[path]
	return rec, ok
}

// Len returns the number of tracked uploads.
func (u *UploadSet) Len() int {
	return len(u.records)
}

// Paths returns the local paths in insertion order.
func (u *UploadSet) Paths() []string {
	out := make([]string, len(u.order))
	copy(out, u.order)
	return out
}

// Cleanup attempts del on every record's remote name, counts the
// successes, and empties the set regardless of individual outcomes.
// Failed deletions are not retried.
func (u *UploadSet) Cleanup(del func(remoteName string) bool) int {
	cleaned := 0
	for _, path := range u.order {
		rec := u.records[path]
		if rec.Name != "" && del(rec.Name) {
			cleaned++
		}
		delete(u.records, path)
	}
	u.order = nil
	return cleaned
}
