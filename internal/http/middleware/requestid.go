package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/roguepikachu/synopsis/pkg/ctxutil"
)

const (
	headerRequestID = "X-Request-ID"
	headerClientID  = "X-Client-ID"

	maxIDLength = 128
)

// RequestIDMiddleware attaches request and client identifiers to the request
// context and echoes them in the response headers. Missing or unusable
// inbound values are replaced with fresh UUIDs.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := idOrNew(c.GetHeader(headerRequestID))
		clientID := idOrNew(c.GetHeader(headerClientID))

		ctx := ctxutil.WithClientID(ctxutil.WithRequestID(c.Request.Context(), requestID), clientID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(headerRequestID, requestID)
		c.Header(headerClientID, clientID)
		c.Next()
	}
}

// idOrNew keeps v if it is a short run of visible ASCII; these values end up
// in logs and response headers.
func idOrNew(v string) string {
	if v == "" || len(v) > maxIDLength {
		return uuid.NewString()
	}
	for i := 0; i < len(v); i++ {
		if v[i] < 0x21 || v[i] > 0x7e {
			return uuid.NewString()
		}
	}
	return v
}
