package stubapi

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const contextUserKey = "stub_user_id"

// Tokens issues and verifies HS256 credentials carried in the auth cookie.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewTokens constructs Tokens.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now, revoked: map[string]time.Time{}}
}

// Issue returns a credential for userID and its expiry.
func (t *Tokens) Issue(userID int64) (string, time.Time, error) {
	now := t.now()
	expires := now.Add(t.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Verify returns the user id a live credential was issued to.
func (t *Tokens) Verify(raw string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	_, revoked := t.revoked[claims.ID]
	t.mu.Unlock()
	if revoked {
		return 0, errors.New("credential revoked")
	}
	return strconv.ParseInt(claims.Subject, 10, 64)
}

// Revoke invalidates a credential before its expiry. Unparsable credentials are ignored.
func (t *Tokens) Revoke(raw string) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil || claims.ID == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	for id, until := range t.revoked {
		if until.Before(now) {
			delete(t.revoked, id)
		}
	}
	until := now.Add(t.ttl)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	t.revoked[claims.ID] = until
}

// requireUser admits requests carrying a live credential cookie.
func requireUser(tokens *Tokens, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil || raw == "" {
			c.String(http.StatusUnauthorized, "Not authenticated")
			c.Abort()
			return
		}
		userID, err := tokens.Verify(raw)
		if err != nil {
			c.String(http.StatusUnauthorized, "Session is no longer valid")
			c.Abort()
			return
		}
		c.Set(contextUserKey, userID)
		c.Next()
	}
}

func currentUser(c *gin.Context) int64 {
	return c.GetInt64(contextUserKey)
}
