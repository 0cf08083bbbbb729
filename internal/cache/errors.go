package cache

import "errors"

// ErrEmptyKey is returned when a record whose Key() is empty is offered to
// the cache. Such a record has no durable counterpart, so caching it would
// break the mirror with the durable store.
var ErrEmptyKey = errors.New("record key is empty")
