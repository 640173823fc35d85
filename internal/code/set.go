package code

// Set is a map-backed set of codes for O(1) lookups.
type Set struct {
	codes map[string]struct{}
}

// NewSet creates a new code set with the given initial capacity.
func NewSet(capacity int) *Set {
	return &Set{
		codes: make(map[string]struct{}, capacity),
	}
}

// Contains checks if a code exists in the set.
func (s *Set) Contains(code string) bool {
	_, exists := s.codes[code]
	return exists
}

// Size returns the number of codes in the set.
func (s *Set) Size() int {
	return len(s.codes)
}

// Add adds a code to the set.
func (s *Set) Add(code string) {
	s.codes[code] = struct{}{}
}
