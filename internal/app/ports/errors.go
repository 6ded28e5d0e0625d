package ports

import "errors"

// ErrNotAuthorized is returned by operations that need an OAuth token
// when the session has none.
var ErrNotAuthorized = errors.New("session is not authorized, start the login flow first")
