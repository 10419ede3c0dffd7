package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the name of the session cookie.
const CookieName = "easytech.sid"

// MinSecretLength is the shortest accepted signing secret, in bytes.
const MinSecretLength = 32

var ErrNoSession = errors.New("no valid session")

// Manager issues and resolves session cookies. The cookie holds an HS256
// token whose id is the server-side session id; revoking the stored
// session invalidates the cookie even before the token expires.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewManager(store Store, secret string, ttl time.Duration, secure bool) (*Manager, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("SESSION_SECRET must be at least %d bytes", MinSecretLength)
	}
	return &Manager{store: store, secret: []byte(secret), ttl: ttl, secure: secure}, nil
}

// Start creates a session for userID and sets the cookie on w.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, userID int) error {
	sid, err := m.store.Create(ctx, userID)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	expires := time.Now().Add(m.ttl)
	token, err := m.issueToken(sid, userID, expires)
	if err != nil {
		_ = m.store.Delete(ctx, sid)
		return fmt.Errorf("sign session: %w", err)
	}

	http.SetCookie(w, m.cookie(token, expires, int(m.ttl.Seconds())))
	return nil
}

// Resolve returns the user id behind the request's session cookie.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (int, error) {
	claims, err := m.claims(r)
	if err != nil {
		return 0, ErrNoSession
	}

	userID, err := m.store.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, ErrNoSession
		}
		return 0, fmt.Errorf("load session: %w", err)
	}
	if strconv.Itoa(userID) != claims.Subject {
		return 0, ErrNoSession
	}
	return userID, nil
}

// End deletes the session named by the request cookie, if any, and
// expires the cookie.
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var err error
	if claims, claimErr := m.claims(r); claimErr == nil {
		err = m.store.Delete(ctx, claims.ID)
	}
	http.SetCookie(w, m.cookie("", time.Unix(0, 0), -1))
	return err
}

func (m *Manager) Close() error {
	return m.store.Close()
}

func (m *Manager) cookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *Manager) issueToken(sid string, userID int, expires time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        sid,
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) claims(r *http.Request) (jwt.RegisteredClaims, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return jwt.RegisteredClaims{}, errors.New("missing session cookie")
	}

	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, &claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return jwt.RegisteredClaims{}, err
	}
	if !token.Valid || claims.ID == "" || claims.Subject == "" {
		return jwt.RegisteredClaims{}, errors.New("invalid session token")
	}
	return claims, nil
}
