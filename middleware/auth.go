package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"cupidwave/models"
	"cupidwave/utils"
)

// Claims are the token claims issued by the identity provider.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UnprotectedRoutes are served without a token.
var UnprotectedRoutes = map[string]bool{
	"/":                     true,
	"/health":               true,
	"/privacy-policy":       true,
	"/api/payments/webhook": true,
}

// SocketPath is authenticated by the realtime server itself.
const SocketPath = "/socket.io/"

// User is the authenticated caller.
type User struct {
	ID    string
	Admin bool
}

type contextKey string

const userKey contextKey = "user"

// WithUser stores the caller in ctx.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the caller stored by the auth middleware.
func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userKey).(User)
	return u, ok && u.ID != ""
}

// UserIDFromContext returns the caller's id, or "" on unauthenticated requests.
func UserIDFromContext(ctx context.Context) string {
	u, _ := UserFromContext(ctx)
	return u.ID
}

// Authenticator verifies HS256 bearer tokens.
type Authenticator struct {
	Secret []byte
	Issuer string
	Admins map[string]bool
	Log    *zap.SugaredLogger
}

func NewAuthenticator(secret, issuer string, adminIDs []string, log *zap.SugaredLogger) *Authenticator {
	admins := make(map[string]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}
	return &Authenticator{Secret: []byte(secret), Issuer: issuer, Admins: admins, Log: log}
}

// ValidateToken parses tokenString and returns the caller it identifies.
func (a *Authenticator) ValidateToken(tokenString string) (User, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.Issuer))
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.Secret, nil
	}, opts...)
	if err != nil {
		return User{}, err
	}
	if claims.Subject == "" {
		return User{}, errors.New("token has no subject")
	}
	return User{
		ID:    claims.Subject,
		Admin: claims.Role == models.RoleAdmin || a.Admins[claims.Subject],
	}, nil
}

// GenerateToken signs a token for userID, for local development and tests.
func (a *Authenticator) GenerateToken(userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    a.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Middleware rejects requests without a valid bearer token, except on
// unprotected routes and the realtime endpoint.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || UnprotectedRoutes[r.URL.Path] || strings.HasPrefix(r.URL.Path, SocketPath) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.WriteError(w, a.Log, utils.Unauthorized("Authorization header required"))
			return
		}
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			utils.WriteError(w, a.Log, utils.Unauthorized("Invalid authorization format"))
			return
		}

		user, err := a.ValidateToken(strings.TrimSpace(tokenString))
		if err != nil {
			if a.Log != nil {
				a.Log.Debugw("rejected token", "path", r.URL.Path, "error", err)
			}
			utils.WriteError(w, a.Log, utils.Unauthorized("Your session has expired, please sign in again"))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireAdmin only lets admins through.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok {
			utils.WriteError(w, nil, utils.Unauthorized("Authorization header required"))
			return
		}
		if !u.Admin {
			utils.WriteError(w, nil, utils.Forbidden("Admins only"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
