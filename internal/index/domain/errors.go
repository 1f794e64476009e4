package domain

import (
	"github.com/dsse/forwardpriv/internal/errors"
)

// ErrNodeNotFound indicates no index entry exists at the requested address.
var ErrNodeNotFound = errors.Wrap(errors.ErrNotFound, "index node not found")
