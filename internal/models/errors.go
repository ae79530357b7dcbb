package models

import "errors"

// ErrNotFound means the requested record does not exist in the local
// store. Callers discriminate it with errors.Is.
var ErrNotFound = errors.New("not found")
