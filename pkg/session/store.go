// Package session keeps the Classroom API credential in a signed and encrypted
// browser cookie.
package session

import (
	"crypto/sha256"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const credentialKey = "credential"

// Options configures the cookie store.
type Options struct {
	Secret     string
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// Store reads and writes the session cookie.
type Store struct {
	cookies *sessions.CookieStore
	name    string
}

// New builds a Store. An empty secret yields random keys, so sessions do not survive a restart.
func New(opts Options) *Store {
	hashKey, blockKey := deriveKeys(opts.Secret)
	cookies := sessions.NewCookieStore(hashKey, blockKey)
	maxAge := int(opts.MaxAge / time.Second)
	if maxAge <= 0 {
		maxAge = 7 * 24 * 60 * 60
	}
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	cookies.MaxAge(maxAge)

	name := opts.CookieName
	if name == "" {
		name = "sunclass_session"
	}
	return &Store{cookies: cookies, name: name}
}

func deriveKeys(secret string) ([]byte, []byte) {
	if secret == "" {
		return securecookie.GenerateRandomKey(64), securecookie.GenerateRandomKey(32)
	}
	hash := sha256.Sum256([]byte("hash:" + secret))
	block := sha256.Sum256([]byte("block:" + secret))
	return hash[:], block[:]
}

// Credential returns the stored credential or "" when absent or unreadable.
func (s *Store) Credential(r *http.Request) string {
	sess, err := s.get(r)
	if err != nil {
		return ""
	}
	cred, _ := sess.Values[credentialKey].(string)
	return cred
}

// SetCredential stores a freshly issued credential.
func (s *Store) SetCredential(w http.ResponseWriter, r *http.Request, credential string) error {
	sess, err := s.get(r)
	if err != nil {
		return err
	}
	sess.Values[credentialKey] = credential
	return sess.Save(r, w)
}

// Evict discards the credential and expires the cookie.
func (s *Store) Evict(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.get(r)
	if err != nil {
		return err
	}
	delete(sess.Values, credentialKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// get tolerates tampered or stale cookies by starting a fresh session.
func (s *Store) get(r *http.Request) (*sessions.Session, error) {
	sess, err := s.cookies.Get(r, s.name)
	if err == nil {
		return sess, nil
	}
	var cookieErr securecookie.Error
	if errors.As(err, &cookieErr) && cookieErr.IsDecode() {
		return sess, nil
	}
	return nil, err
}
