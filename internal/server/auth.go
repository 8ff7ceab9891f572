package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gravitas-games/hexboard/internal/config"
	"github.com/gravitas-games/hexboard/pkg/models"
)

// JWTValidator handles JWT token validation
type JWTValidator struct {
	config *config.Config
	secret []byte
	redis  *redis.Client // optional blacklist
	ctx    context.Context
}

// Claims represents the JWT claims accepted by the board server
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// NewJWTValidator creates a new JWT validator. redisClient may be nil, in
// which case the blacklist is not consulted.
func NewJWTValidator(cfg *config.Config, redisClient *redis.Client) (*JWTValidator, error) {
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("missing jwt secret")
	}
	log.Println("JWT validator initialized")
	return &JWTValidator{
		config: cfg,
		secret: []byte(cfg.JWT.Secret),
		redis:  redisClient,
		ctx:    context.Background(),
	}, nil
}

// IssueToken signs a token for a player. It is used by tooling and tests;
// production tokens come from the login service sharing the secret.
func (v *JWTValidator) IssueToken(subject, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    v.config.JWT.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken validates a JWT token and returns player information
func (v *JWTValidator) ValidateToken(tokenString string) (*models.Player, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.Issuer != v.config.JWT.Issuer {
		return nil, fmt.Errorf("invalid issuer: expected %s, got %s", v.config.JWT.Issuer, claims.Issuer)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	if v.redis != nil {
		key := v.config.Redis.BlacklistPrefix + claims.Subject
		blacklisted, err := v.redis.Exists(v.ctx, key).Result()
		if err != nil {
			// Redis outages must not lock players out.
			log.Printf("Warning: Failed to check blacklist: %v", err)
		} else if blacklisted > 0 {
			return nil, fmt.Errorf("token is blacklisted")
		}
	}

	return &models.Player{
		ID:       claims.Subject,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}

// extractTokenFromHeader extracts JWT token from WebSocket connection header
func extractTokenFromHeader(r *http.Request) string {
	// Format: "access_token, <token>"
	if protocols := r.Header.Get("Sec-WebSocket-Protocol"); protocols != "" {
		parts := strings.Split(protocols, ",")
		if len(parts) == 2 && strings.TrimSpace(parts[0]) == "access_token" {
			return strings.TrimSpace(parts[1])
		}
	}

	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	return r.URL.Query().Get("token")
}
