// Package mockserver emulates the portal backend for local development.
package mockserver

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Adda-Baaj/portal-client/internal/logger"
	"github.com/Adda-Baaj/portal-client/pkg/api/user"
)

// Business codes returned in the envelope.
const (
	CodeOK             = 0
	CodeBadRequest     = 1000
	CodeBadCredentials = 1001
)

// Account is a user the mock backend accepts.
type Account struct {
	Password string
	Info     user.UserInfoRes
}

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 2 * time.Hour

type session struct {
	username string
	expires  time.Time
}

// Server holds accounts and issued tokens.
type Server struct {
	mu       sync.RWMutex
	accounts map[string]Account
	tokens   map[string]session
	tokenTTL time.Duration
	now      func() time.Time
	log      logger.Logger
}

// DefaultAccounts is the seed data used by cmd/mockapi.
func DefaultAccounts() map[string]Account {
	return map[string]Account{
		"alice": {Password: "secret", Info: user.UserInfoRes{ID: 1, Name: "alice", Roles: []string{"admin"}}},
		"bob":   {Password: "hunter2", Info: user.UserInfoRes{ID: 2, Name: "bob"}},
	}
}

// New builds a Server with the given accounts.
func New(accounts map[string]Account, log logger.Logger) *Server {
	if log == nil {
		log = &logger.NopLogger{}
	}
	cp := make(map[string]Account, len(accounts))
	for k, v := range accounts {
		cp[k] = v
	}
	return &Server{
		accounts: cp,
		tokens:   make(map[string]session),
		tokenTTL: DefaultTokenTTL,
		now:      time.Now,
		log:      log,
	}
}

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Handler returns the gin engine serving /api.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog())

	api := r.Group("/api")
	api.POST(user.PathLogin, s.login)
	api.GET(user.PathInfo, s.requireToken, s.info)
	return r
}

func (s *Server) login(c *gin.Context) {
	var req user.LoginData
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, envelope{Code: CodeBadRequest, Message: "invalid login payload"})
		return
	}

	s.mu.RLock()
	acct, ok := s.accounts[req.Username]
	s.mu.RUnlock()
	if !ok || acct.Password != req.Password {
		c.JSON(http.StatusOK, envelope{Code: CodeBadCredentials, Message: "bad credentials"})
		return
	}

	token, err := newToken()
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	s.mu.Lock()
	s.tokens[token] = session{username: req.Username, expires: s.now().Add(s.tokenTTL)}
	s.mu.Unlock()

	c.JSON(http.StatusOK, envelope{
		Code:    CodeOK,
		Message: "ok",
		Data:    user.LoginRes{Token: token, ExpiresIn: int64(s.tokenTTL.Seconds())},
	})
}

func (s *Server) requireToken(c *gin.Context) {
	token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	name, ok := s.lookup(token)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.Set("username", name)
	c.Next()
}

// lookup resolves a live token, evicting it once expired.
func (s *Server) lookup(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.tokens[token]
	if !ok {
		return "", false
	}
	if !s.now().Before(sess.expires) {
		delete(s.tokens, token)
		return "", false
	}
	return sess.username, true
}

func (s *Server) info(c *gin.Context) {
	s.mu.RLock()
	acct := s.accounts[c.GetString("username")]
	s.mu.RUnlock()
	c.JSON(http.StatusOK, envelope{Code: CodeOK, Message: "ok", Data: acct.Info})
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.InfoObj("mock request", "http_request", map[string]any{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
	}
}

func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
