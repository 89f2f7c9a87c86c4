// Package httpapi exposes the detection engine over HTTP using fiber.
package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"uadetect/internal/auditlog"
	"uadetect/internal/pkg/useragent"
)

// publicCORSConfig mirrors the permissive cross-origin setup needed for a
// detection API that other services call from arbitrary origins.
var publicCORSConfig = cors.Config{
	AllowOrigins: "*",
	AllowMethods: "POST,GET,OPTIONS",
	AllowHeaders: "Origin, Content-Type, Accept, X-Requested-With, Sec-CH-UA-Mobile, Sec-CH-UA-Model",
}

// Server wires the Detector into a fiber.App.
type Server struct {
	App      *fiber.App
	detector *useragent.Detector
	logger   *logrus.Logger
	audit    *auditlog.Log
}

// NewServer builds the fiber app and mounts routes.
func NewServer(detector *useragent.Detector, logger *logrus.Logger, audit *auditlog.Log) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(publicCORSConfig))

	s := &Server{App: app, detector: detector, logger: logger, audit: audit}

	app.Get("/healthz", s.healthHandler)
	app.Post("/v1/detect", s.detectHandler)

	return s
}

// detectRequest is the JSON body accepted by POST /v1/detect. The hint
// fields are optional and are only used when the corresponding header is
// absent, so non-browser callers (that can't set Sec-CH-UA-* themselves)
// can still exercise client-hint overrides.
type detectRequest struct {
	UserAgent      string `json:"user_agent"`
	XRequestedWith string `json:"x_requested_with,omitempty"`
	SecCHUAMobile  string `json:"sec_ch_ua_mobile,omitempty"`
	SecCHUAModel   string `json:"sec_ch_ua_model,omitempty"`
}

func (s *Server) healthHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) detectHandler(c *fiber.Ctx) error {
	var req detectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	ua := strings.TrimSpace(req.UserAgent)
	if ua == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_agent is required",
		})
	}

	hints := resolveHints(c, req)

	detection := s.detector.ParseWithHints(ua, hints)

	if s.audit != nil {
		if err := s.audit.Record(ua, detection); err != nil {
			s.logger.WithError(err).Warn("failed to record audit entry")
		}
	}

	return c.JSON(detection)
}

// resolveHints prefers request headers (the real client-hint transport)
// and falls back to the JSON body fields for callers that cannot set
// Sec-CH-UA-* headers directly.
func resolveHints(c *fiber.Ctx, req detectRequest) *useragent.ClientHints {
	xrw := firstNonEmpty(c.Get("X-Requested-With"), req.XRequestedWith)
	mobile := firstNonEmpty(c.Get("Sec-CH-UA-Mobile"), req.SecCHUAMobile)
	model := firstNonEmpty(c.Get("Sec-CH-UA-Model"), req.SecCHUAModel)

	if xrw == "" && mobile == "" && model == "" {
		return nil
	}

	hints := &useragent.ClientHints{
		XRequestedWith: xrw,
		Model:          model,
	}
	if mobile != "" {
		isMobile := mobile == "?1"
		hints.Mobile = &isMobile
	}
	return hints
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
