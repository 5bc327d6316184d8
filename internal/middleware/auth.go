package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"marketrate-backend/internal/models"
)

type ctxKey int

const (
	ctxKeyUserID ctxKey = iota
	ctxKeyRole
	ctxKeySellerID
)

// GetUserID returns the authenticated user's id, or "" when unauthenticated.
func GetUserID(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyUserID).(string)
	return v
}

// GetRole returns the authenticated user's role, or "" when unauthenticated.
func GetRole(ctx context.Context) models.Role {
	v, _ := ctx.Value(ctxKeyRole).(models.Role)
	return v
}

// GetSellerID returns the seller id bound to the token, if any.
func GetSellerID(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeySellerID).(string)
	return v
}

// JWTAuth validates the Bearer token and stores the subject, role and seller
// id in the request context.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "missing or malformed authorization header")
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				writeError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}
			sub, _ := claims["sub"].(string)
			if sub == "" {
				writeError(w, http.StatusUnauthorized, "invalid token payload")
				return
			}
			role, _ := claims["role"].(string)
			sellerID, _ := claims["seller_id"].(string)

			ctx := context.WithValue(r.Context(), ctxKeyUserID, sub)
			ctx = context.WithValue(ctx, ctxKeyRole, models.Role(role))
			ctx = context.WithValue(ctx, ctxKeySellerID, sellerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose token does not carry one of the given
// roles. Must run after JWTAuth.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := GetRole(r.Context())
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "forbidden")
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
