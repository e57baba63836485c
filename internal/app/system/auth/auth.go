// internal/app/system/auth/auth.go
//
// Bearer-token authentication. A TokenManager issues and verifies signed JWTs
// and the LoadUser middleware resolves the Authorization header into a
// Principal in the request context. Role and account state are re-fetched
// from the database on every request via the UserFetcher, so role changes and
// deleted accounts take effect immediately rather than at token expiry.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Principal is the authenticated actor attached to the request context.
type Principal struct {
	ID    primitive.ObjectID
	Name  string
	Email string
	Role  string
}

// UserFetcher loads fresh principal data for a user ID on each request.
// It returns nil when the user no longer exists or cannot be loaded.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *Principal
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the principal and a "found?" flag.
func CurrentUser(r *http.Request) (*Principal, bool) {
	p, ok := r.Context().Value(currentUserKey).(*Principal)
	return p, ok
}

func withUser(r *http.Request, p *Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, p))
}

// WithTestUser injects a principal directly, bypassing token verification.
// For tests only.
func WithTestUser(r *http.Request, p *Principal) *http.Request {
	return withUser(r, p)
}

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenManager issues and verifies HMAC-signed bearer tokens.
type TokenManager struct {
	secret  []byte
	expiry  time.Duration
	fetcher UserFetcher
	log     *zap.Logger
}

// NewTokenManager builds a TokenManager. The secret must be non-empty.
func NewTokenManager(secret string, expiry time.Duration, logger *zap.Logger) (*TokenManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if expiry <= 0 {
		expiry = 30 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), expiry: expiry, log: logger}, nil
}

// SetUserFetcher installs the fetcher used by LoadUser to resolve token
// subjects into fresh principals. Without a fetcher LoadUser leaves requests
// anonymous.
func (tm *TokenManager) SetUserFetcher(f UserFetcher) {
	tm.fetcher = f
}

// Issue returns a signed token whose subject is the user's ObjectID hex.
func (tm *TokenManager) Issue(userID primitive.ObjectID) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiry)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(tm.secret)
}

// Verify parses a signed token and returns the subject user ID hex.
func (tm *TokenManager) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// LoadUser is global middleware: if a valid bearer token is presented, the
// resolved principal is injected into the request context. Requests without
// a token (or with a stale one) continue anonymously; route middleware
// decides whether that is acceptable.
func (tm *TokenManager) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" || tm.fetcher == nil {
			next.ServeHTTP(w, r)
			return
		}
		userID, err := tm.Verify(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if p := tm.fetcher.FetchUser(r.Context(), userID); p != nil {
			r = withUser(r, p)
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireSignedIn ensures a principal is present (set by LoadUser).
// API callers get a JSON 401.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			writeAuthError(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the principal holds one of the allowed roles.
// Missing principal is a 401; wrong role is a 403.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := CurrentUser(r)
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}
			if _, has := set[strings.ToLower(p.Role)]; !has {
				writeAuthError(w, http.StatusForbidden,
					"User role "+p.Role+" is not authorized to access this route")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"success":false,"error":"` + msg + `"}`))
}
