// Package kv defines the persistence collaborator for the tracker: a flat
// string-keyed store holding one serialized document per collection. The
// tracker never touches the filesystem directly; it reads and writes whole
// values through this interface.
package kv

// Store is a minimal key-value store. Get reports ok=false when the key has
// never been written. Set replaces the value for key wholesale.
type Store interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
}
