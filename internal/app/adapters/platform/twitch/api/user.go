package api

import (
	"net/url"

	"gotwitcher/internal/app/ports"
)

// GetUser returns the user with the given name. Results are cached
// for a short time.
func (s *Session) GetUser(name string) (*ports.User, error) {
	if user, ok := s.userCache.Get(name); ok {
		return user, nil
	}

	var resp userResponse
	if err := s.doRequest("get_user", s.krakenURL+"user/"+url.PathEscape(name), &resp, nil); err != nil {
		return nil, err
	}

	user := wrapUser(&resp)
	s.userCache.Set(name, user)
	return user, nil
}

// FetchLoginUser queries the user the token belongs to and remembers
// it as the current user. Needs an authorized session.
func (s *Session) FetchLoginUser() (*ports.User, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}

	var resp userResponse
	if err := s.doRequest("fetch_login_user", s.krakenURL+"user", &resp, nil); err != nil {
		return nil, err
	}

	user := wrapUser(&resp)
	s.mu.Lock()
	s.currentUser = user
	s.mu.Unlock()
	return user, nil
}

// CurrentUser returns the logged in user, fetching it on first use.
func (s *Session) CurrentUser() (*ports.User, error) {
	s.mu.RLock()
	user := s.currentUser
	s.mu.RUnlock()
	if user != nil {
		return user, nil
	}
	return s.FetchLoginUser()
}

func wrapUser(resp *userResponse) *ports.User {
	return &ports.User{
		ID:          resp.ID,
		Name:        resp.Name,
		DisplayName: resp.DisplayName,
		Logo:        resp.Logo,
		Bio:         resp.Bio,
	}
}
