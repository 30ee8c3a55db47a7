package settings

import (
	"github.com/dshills/phylab/internal/settings/store"
)

// ErrNotFound indicates a key absent from every consulted namespace.
// It is the store's sentinel re-exported so callers can match lookup
// failures without importing the store package.
var ErrNotFound = store.ErrNotFound
