package kv

import "errors"

// ErrNotFound is returned by Get when nothing has been written under key.
var ErrNotFound = errors.New("key not found")

// Store is the durable key-value storage the record stores persist into.
// Each value is owned wholesale by a single writer; Set overwrites.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}
