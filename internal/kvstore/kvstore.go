// Package kvstore provides the string-keyed JSON value storage the catalog
// and history stores persist into. Values are whole documents: every write
// replaces the full value for its key.
package kvstore

// Store is the persistence backend injected into the domain stores.
type Store interface {
	// Get returns the stored value for key. The second result reports
	// whether the key exists; a missing key is not an error.
	Get(key string) ([]byte, bool, error)
	// Put stores value under key, replacing any previous value.
	Put(key string, value []byte) error
}
