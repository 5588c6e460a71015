package scoring

// UsedSet is the set of asset ids already taken in a planning run. It is a
// value: With returns a new set and never modifies the receiver.
type UsedSet map[string]struct{}

// NewUsedSet builds a set from ids
func NewUsedSet(ids ...string) UsedSet {
	s := make(UsedSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set. A nil set is empty.
func (s UsedSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// With returns a copy of s that also contains id
func (s UsedSet) With(id string) UsedSet {
	out := make(UsedSet, len(s)+1)
	for k := range s {
		out[k] = struct{}{}
	}
	out[id] = struct{}{}
	return out
}

// Len returns the number of ids in the set
func (s UsedSet) Len() int {
	return len(s)
}
