package sqlite

import "errors"

// ErrClosed gateway used after Close
var ErrClosed = errors.New("sqlite: gateway closed")
