package api

import "gotwitcher/internal/app/ports"

// ErrNotAuthorized mirrors ports.ErrNotAuthorized for callers that
// only import this package.
var ErrNotAuthorized = ports.ErrNotAuthorized

func (s *Session) requireAuth() error {
	if !s.Authorized() {
		return ErrNotAuthorized
	}
	return nil
}
