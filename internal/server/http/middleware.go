package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophdrop/internal/common"
	"github.com/dmitrijs2005/gophdrop/internal/logging"
)

const (
	requestIDHeader = "X-Request-ID"
	localUsername   = "username"
	localRequestID  = "request_id"
)

// requestLogger tags every request with an id and logs its outcome. The
// level follows the status code: info below 400, warn for 4xx, error for 5xx.
func (s *HTTPServer) requestLogger(c *fiber.Ctx) error {
	start := time.Now()

	id := c.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals(localRequestID, id)
	c.Set(requestIDHeader, id)
	c.SetUserContext(logging.ContextWithRequestID(c.UserContext(), id))

	err := c.Next()
	if err != nil {
		// writes the response so the status below is final
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	status := c.Response().StatusCode()
	log := s.logger.With(
		"http_method", c.Method(),
		"http_path", c.Path(),
		"http_status_code", status,
		"duration", time.Since(start),
	)
	if u, ok := c.Locals(localUsername).(string); ok {
		log = log.With("username", u)
	}

	ctx := c.UserContext()
	switch {
	case status >= 500:
		log.Error(ctx, "request failed", "error", err)
	case status >= 400:
		log.Warn(ctx, "request rejected", "error", err)
	default:
		log.Info(ctx, "request processed")
	}

	return nil
}

// authRequired resolves the caller from "Authorization: Bearer <jwt>" or
// the access_token header and stores the username in Locals.
func (s *HTTPServer) authRequired(c *fiber.Ctx) error {
	username, err := s.users.ResolveCaller(c.UserContext(), accessToken(c))
	if err != nil {
		return err
	}
	c.Locals(localUsername, username)
	return c.Next()
}

func accessToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return c.Get(common.AccessTokenHeaderName)
}

func caller(c *fiber.Ctx) string {
	u, _ := c.Locals(localUsername).(string)
	return u
}
