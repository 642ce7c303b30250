package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/pitstop-servix/internal/backend"
	"github.com/BruksfildServices01/pitstop-servix/internal/guard"
)

const (
	CookieName     = "pitstop_session"
	ContextSession = "session"
)

type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	secure bool
	log    *zap.Logger
}

func NewManager(store Store, secret string, ttl time.Duration, secure bool, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		log:    log,
	}
}

// Middleware resolves the session cookie. Requests without a valid cookie
// get a fresh anonymous session that is only stored once something is saved.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := m.load(c)

		c.Set(ContextSession, sess)
		c.Set(guard.ContextCapabilities, sess.Capabilities)

		c.Next()
	}
}

func (m *Manager) load(c *gin.Context) *Session {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return m.anonymous()
	}

	sid, err := m.parse(raw)
	if err != nil {
		return m.anonymous()
	}

	sess, err := m.store.Get(c.Request.Context(), sid)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.log.Warn("session.load_failed", zap.Error(err))
		}
		return m.anonymous()
	}

	sess.persisted = true
	return sess
}

func (m *Manager) anonymous() *Session {
	return &Session{ID: uuid.NewString()}
}

// Start replaces the current session with a signed-in one.
func (m *Manager) Start(c *gin.Context, token string, user *backend.User, caps guard.Capabilities) (*Session, error) {
	if old := FromContext(c); old != nil && old.persisted {
		if err := m.store.Delete(c.Request.Context(), old.ID); err != nil {
			m.log.Warn("session.delete_failed", zap.Error(err))
		}
	}

	sess := &Session{
		ID:           uuid.NewString(),
		Token:        token,
		User:         user,
		Capabilities: caps,
	}

	if err := m.Save(c, sess); err != nil {
		return nil, err
	}

	c.Set(ContextSession, sess)
	c.Set(guard.ContextCapabilities, sess.Capabilities)
	return sess, nil
}

// Save persists sess and, the first time, issues its cookie.
func (m *Manager) Save(c *gin.Context, sess *Session) error {
	if err := m.store.Save(c.Request.Context(), sess); err != nil {
		return err
	}

	if !sess.persisted {
		signed, err := m.sign(sess.ID)
		if err != nil {
			return err
		}
		m.setCookie(c, signed, int(m.ttl.Seconds()))
		sess.persisted = true
	}
	return nil
}

// Flash stores a one-shot message shown on the next rendered page.
func (m *Manager) Flash(c *gin.Context, kind, message string) {
	sess := FromContext(c)
	if sess == nil {
		return
	}

	sess.Flash = &Flash{Kind: kind, Message: message}
	if err := m.Save(c, sess); err != nil {
		m.log.Warn("session.flash_failed", zap.Error(err))
	}
}

// Destroy removes the session and clears the cookie. The returned id is the
// destroyed session's, so callers can drop state keyed by it.
func (m *Manager) Destroy(c *gin.Context) (string, error) {
	sess := FromContext(c)
	m.setCookie(c, "", -1)

	if sess == nil {
		return "", nil
	}

	c.Set(ContextSession, m.anonymous())
	c.Set(guard.ContextCapabilities, guard.Capabilities{})

	if !sess.persisted {
		return sess.ID, nil
	}
	return sess.ID, m.store.Delete(c.Request.Context(), sess.ID)
}

func FromContext(c *gin.Context) *Session {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil
	}
	sess, _ := v.(*Session)
	return sess
}

// ======================================================
// COOKIE
// ======================================================

func (m *Manager) sign(sid string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        sid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) parse(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	if claims.ID == "" {
		return "", jwt.ErrTokenInvalidId
	}
	return claims.ID, nil
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", m.secure, true)
}
