package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func requestContext(t *testing.T, remoteAddr string, headers map[string]string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.RemoteAddr = remoteAddr
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	c := requestContext(t, "10.0.0.1:54321", map[string]string{
		"X-Forwarded-For": "203.0.113.7, 10.0.0.1",
	})
	assert.Equal(t, "203.0.113.7", clientIP(c))
}

func TestClientIPSkipsGarbageForwardedEntries(t *testing.T) {
	c := requestContext(t, "10.0.0.1:54321", map[string]string{
		"X-Forwarded-For": "not-an-ip, 203.0.113.7",
	})
	assert.Equal(t, "203.0.113.7", clientIP(c))
}

func TestClientIPFallsBackToRealIPHeader(t *testing.T) {
	c := requestContext(t, "10.0.0.1:54321", map[string]string{
		"X-Real-IP": "198.51.100.4",
	})
	assert.Equal(t, "198.51.100.4", clientIP(c))
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	c := requestContext(t, "192.0.2.9:44000", map[string]string{
		"X-Forwarded-For": "garbage",
		"X-Real-IP":       "also-garbage",
	})
	assert.Equal(t, "192.0.2.9", clientIP(c))
}
