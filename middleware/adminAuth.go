package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"hoardify/models"
	"hoardify/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AdminVerifier checks a Firebase ID token and returns the admin's uid.
type AdminVerifier interface {
	VerifyAdmin(ctx context.Context, idToken string) (string, error)
}

// AdminAuthMiddleware admits requests carrying the ID token of an administrator.
// Verified tokens are cached in Redis by hash for ttl and indexed by uid, so
// revoking an admin's sessions evicts them. When the cache is nil or unreachable
// every request is verified against Firebase.
func AdminAuthMiddleware(verifier AdminVerifier, cache redis.Cmdable, ttl time.Duration, logger *zap.Logger) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = utils.DefaultAuthCacheTTL
	}
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if !strings.HasPrefix(authHeader, "Bearer ") || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Missing or invalid Authorization header"})
			return
		}

		ctx := c.Request.Context()
		cacheKey := utils.AuthCachePrefix + utils.HashToken(tokenString)

		if cache != nil {
			uid, err := cache.Get(ctx, cacheKey).Result()
			if err == nil && uid != "" {
				c.Set("adminID", uid)
				c.Next()
				return
			}
			if err != nil && err != redis.Nil {
				logger.Warn("Auth cache lookup failed, verifying token directly", zap.Error(err))
			}
		}

		uid, err := verifier.VerifyAdmin(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrForbidden):
				c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{Message: "Admin access required"})
			case errors.Is(err, models.ErrUnauthorized):
				c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Invalid or expired token"})
			default:
				logger.Error("Admin verification failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, utils.ErrorResponse{
					Message: "Authentication unavailable", Retryable: true,
				})
			}
			return
		}

		if cache != nil {
			if err := utils.CacheAdminToken(ctx, cache, cacheKey, uid, ttl); err != nil {
				logger.Warn("Failed to cache admin token", zap.Error(err))
			}
		}
		c.Set("adminID", uid)
		c.Next()
	}
}
