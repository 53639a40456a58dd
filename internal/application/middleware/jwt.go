package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/domain/entity"
	"github.com/bivex/creatorhub/internal/domain/service"
	"github.com/bivex/creatorhub/internal/infrastructure/logging"
)

// Context keys set by Authenticate
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextJTI    = "jti"
	contextActor  = "actor"
)

// JWTClaims represents the JWT claims structure
type JWTClaims struct {
	UserID string `json:"sub"`
	JTI    string `json:"jti"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// RevocationChecker reports whether a token id was revoked
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// JWTMiddleware verifies bearer tokens issued by the identity service
type JWTMiddleware struct {
	secret  []byte
	issuer  string
	revoked RevocationChecker
	logger  *zap.Logger
}

// NewJWTMiddleware creates a new JWT middleware. revoked may be nil when no
// blocklist is configured.
func NewJWTMiddleware(secret, issuer string, revoked RevocationChecker) *JWTMiddleware {
	return &JWTMiddleware{
		secret:  []byte(secret),
		issuer:  issuer,
		revoked: revoked,
		logger:  logging.Logger,
	}
}

// Authenticate validates the JWT token and sets the caller on the context
func (j *JWTMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHORIZED", "message": "Missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHORIZED", "message": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := j.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHORIZED", "message": "Invalid token"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHORIZED", "message": "Invalid token subject"})
			c.Abort()
			return
		}
		role, err := entity.ParseUserRole(claims.Role)
		if err != nil {
			role = entity.RoleConsumer
		}

		if j.revoked != nil {
			revoked, err := j.revoked.IsRevoked(c.Request.Context(), claims.JTI)
			if err != nil {
				j.logger.Error("failed to check token blocklist", zap.Error(err))
				// Fail closed
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "SERVICE_UNAVAILABLE", "message": "Token validation unavailable"})
				c.Abort()
				return
			}
			if revoked {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "TOKEN_REVOKED", "message": "Token has been revoked"})
				c.Abort()
				return
			}
		}

		c.Set(ContextUserID, userID.String())
		c.Set(ContextRole, string(role))
		c.Set(ContextJTI, claims.JTI)
		c.Set(contextActor, service.Actor{UserID: userID, Role: role})

		c.Next()
	}
}

// ParseToken parses a token string and returns the claims without checking the blocklist
func (j *JWTMiddleware) ParseToken(tokenString string) (*JWTClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}

	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ActorFromContext returns the authenticated caller
func ActorFromContext(c *gin.Context) (service.Actor, bool) {
	v, ok := c.Get(contextActor)
	if !ok {
		return service.Actor{}, false
	}
	actor, ok := v.(service.Actor)
	return actor, ok
}
