package kv

// MemStore is an in-memory Store for tests. Values are copied on the way
// in and out so callers cannot alias the stored bytes.
type MemStore struct {
	values map[string][]byte

	// FailSets, when positive, makes that many subsequent Set calls fail.
	// Used to exercise persistence-failure paths.
	FailSets int

	// SetCalls counts every Set attempt, including failed ones.
	SetCalls int
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string][]byte)}
}

// Get returns the stored value for key.
func (s *MemStore) Get(key string) ([]byte, bool, error) {
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set stores a copy of value under key.
func (s *MemStore) Set(key string, value []byte) error {
	s.SetCalls++
	if s.FailSets > 0 {
		s.FailSets--
		return errSetFailed
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.values[key] = v
	return nil
}

type setError struct{}

func (setError) Error() string { return "kv: set failed" }

var errSetFailed = setError{}
