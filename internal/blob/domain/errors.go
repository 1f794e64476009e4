package domain

import (
	"github.com/dsse/forwardpriv/internal/errors"
)

// ErrBlobNotFound indicates no blob metadata row (or its underlying bytes)
// exists for the requested file_id. A missing metadata row and missing
// bytes are treated identically: both surface as NotFound.
var ErrBlobNotFound = errors.Wrap(errors.ErrNotFound, "blob not found")
