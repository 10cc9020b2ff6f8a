package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/thereayou/crocnet/internal/services"
	"github.com/thereayou/crocnet/pkg/auth"
)

const (
	UserIDKey   = "userID"
	UserNameKey = "userName"
	TokenKey    = "token"
)

// AuthMiddleware verifies the bearer token in the Authorization header.
func AuthMiddleware(jwtManager *auth.JWTManager, blacklist services.TokenBlacklist, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			RespondError(c, services.ErrUnauthorized)
			return
		}
		authenticate(c, token, jwtManager, blacklist, log)
	}
}

// WSAuthMiddleware also accepts ?token= since browsers cannot set headers
// on a WebSocket handshake.
func WSAuthMiddleware(jwtManager *auth.JWTManager, blacklist services.TokenBlacklist, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			var err error
			if token, err = auth.ExtractTokenFromHeader(c.Request); err != nil {
				RespondError(c, services.ErrUnauthorized)
				return
			}
		}
		authenticate(c, token, jwtManager, blacklist, log)
	}
}

func authenticate(c *gin.Context, token string, jwtManager *auth.JWTManager, blacklist services.TokenBlacklist, log zerolog.Logger) {
	revoked, err := blacklist.IsRevoked(c.Request.Context(), token)
	if err != nil {
		log.Error().Err(err).Msg("check token blacklist")
		RespondError(c, services.ErrUnauthorized)
		return
	}
	if revoked {
		RespondError(c, services.ErrUnauthorized)
		return
	}

	claims, err := jwtManager.Verify(token)
	if err != nil {
		log.Debug().Err(err).Msg("rejected bearer token")
		RespondError(c, services.ErrUnauthorized)
		return
	}

	c.Set(UserIDKey, claims.ID)
	c.Set(UserNameKey, claims.Name)
	c.Set(TokenKey, token)
	c.Next()
}
