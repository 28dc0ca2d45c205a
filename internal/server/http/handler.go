package http

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/gophdrop/internal/common"
	"github.com/dmitrijs2005/gophdrop/internal/server/models"
	"github.com/dmitrijs2005/gophdrop/internal/server/services"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type authResponse struct {
	Message string `json:"message,omitempty"`
	models.TokenPair
}

func (s *HTTPServer) ping(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "OK"})
}

func (s *HTTPServer) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(err)
	}

	tokens, err := s.users.Register(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	s.logger.Info(c.UserContext(), "Registered", "username", req.Username)
	return c.JSON(authResponse{Message: "Registered successfully", TokenPair: *tokens})
}

func (s *HTTPServer) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(err)
	}

	tokens, err := s.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(authResponse{Message: "Login successful", TokenPair: *tokens})
}

func (s *HTTPServer) refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(err)
	}

	tokens, err := s.users.RefreshToken(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(authResponse{TokenPair: *tokens})
}

func (s *HTTPServer) logout(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(err)
	}

	if err := s.users.Logout(c.UserContext(), req.RefreshToken); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// upload expects a multipart form with a "file" part, an optional
// "visibility" field and an optional boolean "if_absent" field.
func (s *HTTPServer) upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(fmt.Errorf("file part: %w", err))
	}

	var opts services.UploadOptions
	if raw := c.FormValue("if_absent"); raw != "" {
		if opts.IfAbsent, err = strconv.ParseBool(raw); err != nil {
			return badRequest(fmt.Errorf("if_absent: %w", err))
		}
	}

	f, err := fh.Open()
	if err != nil {
		return badRequest(err)
	}
	defer f.Close()

	ack, err := s.files.Upload(c.UserContext(), caller(c), c.FormValue("visibility"), fh.Filename, f, opts)
	if err != nil {
		return err
	}

	return c.JSON(ack)
}

func (s *HTTPServer) list(c *fiber.Ctx) error {
	entries, err := s.files.List(c.UserContext(), caller(c))
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

func (s *HTTPServer) search(c *fiber.Ctx) error {
	entries, err := s.files.Search(c.UserContext(), caller(c), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

func (s *HTTPServer) delete(c *fiber.Ctx) error {
	ack, err := s.files.Delete(c.UserContext(), caller(c), c.Params("filename"))
	if err != nil {
		return err
	}
	return c.JSON(ack)
}

func (s *HTTPServer) download(c *fiber.Ctx) error {
	rc, entry, err := s.files.Download(c.UserContext(), caller(c), c.Params("filename"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename*=UTF-8''"+url.PathEscape(entry.Name))
	// fasthttp closes rc once the body is written
	return c.SendStream(rc, int(entry.SizeBytes))
}

func badRequest(err error) error {
	return fmt.Errorf("%w: %v", common.ErrorValidation, err)
}
