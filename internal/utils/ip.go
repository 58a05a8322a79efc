package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealIP extracts the client IP, respecting reverse proxies.
// X-Real-IP wins over the leftmost X-Forwarded-For entry.
func GetRealIP(c *gin.Context) string {
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}

	// Format: client, proxy1, proxy2, ...
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		clientIP, _, _ := strings.Cut(forwardedFor, ",")
		if clientIP = strings.TrimSpace(clientIP); clientIP != "" {
			return clientIP
		}
	}

	return c.ClientIP()
}
