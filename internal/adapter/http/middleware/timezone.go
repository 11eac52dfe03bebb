package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	TimezoneHeader = "X-Timezone"
	locationKey    = "location"
)

// TimezoneMiddleware resolves the viewer's IANA timezone from the
// X-Timezone header. Unknown names fall back to the default location.
func TimezoneMiddleware(fallback *time.Location) gin.HandlerFunc {
	if fallback == nil {
		fallback = time.UTC
	}
	return func(c *gin.Context) {
		loc := fallback
		if name := strings.TrimSpace(c.GetHeader(TimezoneHeader)); name != "" {
			parsed, err := time.LoadLocation(name)
			if err != nil {
				zap.L().Debug("unknown timezone header", zap.String("timezone", name), zap.Error(err))
			} else {
				loc = parsed
			}
		}
		c.Set(locationKey, loc)
		c.Next()
	}
}

func GetLocation(c *gin.Context) *time.Location {
	if loc, exists := c.Get(locationKey); exists {
		if l, ok := loc.(*time.Location); ok {
			return l
		}
	}
	return time.UTC
}
