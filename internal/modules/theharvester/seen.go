package theharvester

// SeenSet remembers which inputs a module instance already handled.
// It is owned by a single instance and never shared, so it is not locked:
// the host delivers events to one instance serially. Entries are kept for
// the lifetime of the instance.
type SeenSet struct {
	seen map[string]bool
}

// NewSeenSet creates an empty set.
func NewSeenSet() *SeenSet {
	return &SeenSet{seen: make(map[string]bool)}
}

// ShouldProcess reports whether key has not been marked yet. It does not mark.
func (s *SeenSet) ShouldProcess(key string) bool {
	return !s.seen[key]
}

// MarkProcessed records key as handled.
func (s *SeenSet) MarkProcessed(key string) {
	s.seen[key] = true
}

// Forget removes key so a later event for it is processed again.
func (s *SeenSet) Forget(key string) {
	delete(s.seen, key)
}

// Len returns the number of marked keys.
func (s *SeenSet) Len() int {
	return len(s.seen)
}
