package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront-api/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Context keys for authenticated member info
type contextKey string

const (
	ContextKeyUser     contextKey = "user"
	ContextKeyMemberID contextKey = "member_id"
)

// MemberIDFromContext returns the authenticated member's ID, if any.
func MemberIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ContextKeyMemberID).(int64)
	return id, ok
}

type AuthMiddleware struct {
	config *config.Config
}

func NewAuthMiddleware(cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		config: cfg,
	}
}

// MemberAuth validates JWT token for member routes (cart, profile)
func (m *AuthMiddleware) MemberAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var tokenString string

		// Try to get token from Authorization header first
		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			bearerToken := strings.Split(authHeader, " ")
			if len(bearerToken) == 2 && strings.ToLower(bearerToken[0]) == "bearer" {
				tokenString = bearerToken[1]
			}
		}

		// If no header, check auth_token cookie
		if tokenString == "" {
			cookie, err := r.Cookie("auth_token")
			if err == nil {
				tokenString = cookie.Value
			}
		}

		if tokenString == "" {
			http.Error(w, `{"success":false,"error":"Unauthorized: No token provided"}`, http.StatusUnauthorized)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.config.JWTSecret), nil
		})

		if err != nil {
			http.Error(w, `{"success":false,"error":"Unauthorized: Invalid token"}`, http.StatusUnauthorized)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			http.Error(w, `{"success":false,"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}

		// Check expiration
		exp, ok := claims["exp"].(float64)
		if !ok || float64(time.Now().Unix()) > exp {
			http.Error(w, `{"success":false,"error":"Unauthorized: Token expired"}`, http.StatusUnauthorized)
			return
		}

		memberID, ok := claims["member_id"].(float64)
		if !ok {
			http.Error(w, `{"success":false,"error":"Unauthorized: Invalid claims"}`, http.StatusUnauthorized)
			return
		}

		// Add member info to context
		ctx := context.WithValue(r.Context(), ContextKeyUser, claims["sub"])
		ctx = context.WithValue(ctx, ContextKeyMemberID, int64(memberID))
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
