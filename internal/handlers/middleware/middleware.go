package middleware

import (
	"encoding/hex"
	"strings"
	"time"

	"server/config"
	"server/internal/database"
	"server/internal/events"
	"server/internal/logger"
	"server/internal/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/blake2b"
)

const (
	sessionCookie = "tracker_session"
	sessionTTL    = 30 * 24 * time.Hour
)

type Middleware struct {
	db       database.DB
	eventBus *events.EventBus
	config   config.Config
	log      logger.Logger
	macKey   []byte
}

func New(db database.DB, eventBus *events.EventBus, config config.Config) Middleware {
	key := config.SessionSecret
	if key == "" {
		// Development fallback; config.validate rejects this elsewhere.
		key = "tracker-dev-secret"
	}
	if len(key) > 64 {
		key = key[:64] // blake2b key size limit
	}

	return Middleware{
		db:       db,
		eventBus: eventBus,
		config:   config,
		log:      logger.New("middleware"),
		macKey:   []byte(key),
	}
}

func (m Middleware) RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		m.log.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start).String(),
		)
		return err
	}
}

// EnsureSession guarantees every request carries a signed session cookie.
// The captcha flow binds challenges to this session id, so a challenge
// issued to one browser cannot be answered from another.
func (m Middleware) EnsureSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := m.sessionID(c.Cookies(sessionCookie)); ok {
			c.Locals("sessionID", id)
			return c.Next()
		}

		id := utils.NewID()
		c.Cookie(&fiber.Cookie{
			Name:     sessionCookie,
			Value:    id + "." + m.sign(id),
			Expires:  time.Now().Add(sessionTTL),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   m.config.IsProduction(),
		})
		c.Locals("sessionID", id)
		return c.Next()
	}
}

// SessionID returns the validated session id for the current request.
func SessionID(c *fiber.Ctx) string {
	if id, ok := c.Locals("sessionID").(string); ok {
		return id
	}
	return ""
}

func (m Middleware) sessionID(cookie string) (string, bool) {
	id, mac, found := strings.Cut(cookie, ".")
	if !found || id == "" {
		return "", false
	}
	if m.sign(id) != mac {
		return "", false
	}
	return id, true
}

func (m Middleware) sign(id string) string {
	h, err := blake2b.New256(m.macKey)
	if err != nil {
		_ = m.log.Function("sign").Err("failed to build session mac", err)
		return ""
	}
	h.Write([]byte(id))
	return hex.EncodeToString(h.Sum(nil))
}
