package domain

import (
	"github.com/dsse/forwardpriv/internal/errors"
)

// ErrKeywordNotFound is returned when a search is requested for a keyword
// that has no entry in client state.
var ErrKeywordNotFound = errors.Wrap(errors.ErrNotFound, "keyword not found in client state")
