package tracker_errors

import "errors"

var (
	ErrUserIDNotSet    = errors.New("userId not set on context")
	ErrLoadersNotSet   = errors.New("loaders not set on context")
	ErrUnknownScanType = errors.New("unknown scan type")
)
