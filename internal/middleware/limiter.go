package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Rate limit tiers. Auth endpoints get the strict bucket, everything
// else the general one.
const (
	limitStrict = rate.Limit(2)
	burstStrict = 5

	limitGeneral = rate.Limit(10)
	burstGeneral = 20
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex
)

func init() {
	go cleanupVisitors()
}

func getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors removes stale entries so the map cannot grow without
// bound.
func cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		mu.Lock()
		for key, v := range visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(visitors, key)
			}
		}
		mu.Unlock()
	}
}

func rateLimit(tier string, limit rate.Limit, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var identity string
		if userID, ok := UserID(c); ok {
			identity = fmt.Sprintf("user:%d", userID)
		} else {
			identity = "ip:" + c.ClientIP()
		}

		// same caller gets separate quotas per tier
		key := fmt.Sprintf("%s:%s", identity, tier)

		if !getVisitor(key, limit, burst).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				gin.H{"error": http.StatusText(http.StatusTooManyRequests)})
			return
		}
		c.Next()
	}
}

// RateLimitGeneral is the default tier for storefront traffic.
func RateLimitGeneral() gin.HandlerFunc {
	return rateLimit("general", limitGeneral, burstGeneral)
}

// RateLimitStrict protects login, signup and password reset.
func RateLimitStrict() gin.HandlerFunc {
	return rateLimit("strict", limitStrict, burstStrict)
}
