package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// authorizationBaseURL is the implicit grant authorization endpoint.
const authorizationBaseURL = "https://api.twitch.tv/kraken/oauth2/authorize"

// extractTokenSite posts the url fragment back to the server. The
// token arrives in the fragment, which the server never sees, so a
// little javascript converts it into a query string.
const extractTokenSite = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Logging in...</title></head>
<body>
<p>Logging you in...</p>
<script>
var fragment = window.location.hash.substring(1);
var req = new XMLHttpRequest();
req.onload = function () { window.location = '/success'; };
req.onerror = function () { document.body.textContent = 'Login failed.'; };
req.open('POST', '/?' + fragment, true);
req.send();
</script>
</body>
</html>`

const successSite = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Login successful</title></head>
<body>
<p>Login successful! You can close this window now.</p>
</body>
</html>`

// AuthURL returns the url the user has to visit to authorize the
// application via the implicit grant flow.
func (h *Handlers) AuthURL() string {
	cfg := h.manager.Get()
	params := url.Values{}
	params.Set("response_type", "token")
	params.Set("client_id", cfg.API.ClientID)
	params.Set("redirect_uri", cfg.Login.RedirectURI)
	params.Set("scope", strings.Join(cfg.Login.Scopes, " "))
	params.Set("state", h.state)
	return authorizationBaseURL + "?" + params.Encode()
}

// ExtractHandler serves the page that converts the redirect fragment
// into a POST request.
func (h *Handlers) ExtractHandler(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(extractTokenSite))
}

// SuccessHandler tells the user the login worked.
func (h *Handlers) SuccessHandler(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(successSite))
}

// TokenHandler receives the converted fragment, verifies the state
// parameter and stores the token on the session.
func (h *Handlers) TokenHandler(c *gin.Context) {
	if c.Query("state") != h.state {
		h.log.Warn("login redirect with a wrong state parameter")
		c.String(http.StatusUnauthorized, "state mismatch, please retry the login")
		return
	}

	token := c.Query("access_token")
	if token == "" {
		c.String(http.StatusBadRequest, "no access token in the redirect")
		return
	}

	h.session.SetToken(token)
	h.log.Info("login succeeded", slog.String("scope", c.Query("scope")))
	h.closeOnce.Do(func() { close(h.done) })
	c.String(http.StatusOK, "ok")
}

// StatusString summarizes the login state for the index page.
func (h *Handlers) StatusString() string {
	if h.session.Authorized() {
		return "authorized"
	}
	return fmt.Sprintf("not authorized, visit %s", h.AuthURL())
}
