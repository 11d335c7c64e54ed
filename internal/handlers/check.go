package handlers

import (
	"github.com/gofiber/fiber/v3"

	"newscheck/internal/config"
	"newscheck/internal/detector"
	"newscheck/internal/metrics"
	"newscheck/internal/validation"
)

// CheckHandler serves the headline form.
type CheckHandler struct {
	svc *detector.Service
	cfg *config.Config
}

// NewCheckHandler creates a new check handler.
func NewCheckHandler(svc *detector.Service, cfg *config.Config) *CheckHandler {
	return &CheckHandler{svc: svc, cfg: cfg}
}

// Index renders the empty form.
func (h *CheckHandler) Index(c fiber.Ctx) error {
	return c.Render("index", MergeBranding(fiber.Map{
		"MaxLength": h.cfg.MaxTextLength,
	}, h.cfg))
}

// Check runs the decision policy on the submitted text and shows the answer verbatim.
func (h *CheckHandler) Check(c fiber.Ctx) error {
	text := validation.NormalizeText(c.FormValue("text"))

	if valid, msg := validation.ValidateText(text, h.cfg.MaxTextLength); !valid {
		if isHTMX(c) {
			return htmxError(c, msg)
		}
		return c.Status(fiber.StatusUnprocessableEntity).Render("index", MergeBranding(fiber.Map{
			"Text":      text,
			"Error":     msg,
			"MaxLength": h.cfg.MaxTextLength,
		}, h.cfg))
	}

	verdict := h.svc.Decide(c.Context(), text)
	metrics.ObserveVerdict(verdict)

	if isHTMX(c) {
		return c.Render("partials/result", fiber.Map{
			"Output": verdict.Output,
		}, "")
	}

	return c.Render("index", MergeBranding(fiber.Map{
		"Text":      text,
		"Output":    verdict.Output,
		"MaxLength": h.cfg.MaxTextLength,
	}, h.cfg))
}
