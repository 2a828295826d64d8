package common

import (
	"net"
	"strings"

	"ecom-admin/domain"

	"github.com/gin-gonic/gin"
)

type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// ExtractClientInfo captures the client fingerprint recorded alongside
// refresh sessions.
func ExtractClientInfo(c *gin.Context) *ClientInfo {
	return &ClientInfo{
		UserAgent: c.GetHeader("User-Agent"),
		IPAddress: GetClientIP(c),
	}
}

// GetClientIP resolves the originating address, trusting proxy headers
// before the socket peer.
func GetClientIP(c *gin.Context) string {
	// X-Forwarded-For may hold a chain; the first hop is the client.
	xff := c.GetHeader("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if ip != "" && net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	xri := c.GetHeader("X-Real-IP")
	if xri != "" && net.ParseIP(xri) != nil {
		return xri
	}

	remoteIP, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return remoteIP
}

// GetIdentityFromCtx returns the identity the access guard stored, or
// nil on unauthenticated routes.
func GetIdentityFromCtx(c *gin.Context) *domain.AuthIdentity {
	var identity *domain.AuthIdentity
	if v, ok := c.Get(IdentityContextKey); ok {
		if id, ok := v.(*domain.AuthIdentity); ok {
			identity = id
		}
	}
	return identity
}
