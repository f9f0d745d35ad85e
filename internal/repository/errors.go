package repository

import "github.com/pkg/errors"

// ErrInvalidInput is returned for arguments rejected before any query runs.
var ErrInvalidInput = errors.New("invalid input parameters")
