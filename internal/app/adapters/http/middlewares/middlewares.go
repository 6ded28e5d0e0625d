package middlewares

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Middlewares struct{}

func New() *Middlewares {
	return &Middlewares{}
}

// LocalOnly rejects requests that do not originate from the loopback
// interface. The login redirect always lands on localhost.
func (m *Middlewares) LocalOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
		if err != nil || !net.ParseIP(host).IsLoopback() {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
