package api

import (
	"github.com/gofiber/fiber/v3"

	"newscheck/internal/config"
	"newscheck/internal/detector"
	"newscheck/internal/metrics"
	"newscheck/internal/models"
	"newscheck/internal/validation"
)

// CheckHandler handles headline checks via JSON API.
type CheckHandler struct {
	svc *detector.Service
	cfg *config.Config
}

// NewCheckHandler creates a new API check handler.
func NewCheckHandler(svc *detector.Service, cfg *config.Config) *CheckHandler {
	return &CheckHandler{svc: svc, cfg: cfg}
}

// Check accepts a JSON body {"text": "..."}.
func (h *CheckHandler) Check(c fiber.Ctx) error {
	var req models.CheckRequest
	if err := c.Bind().JSON(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	return h.respond(c, req.Text)
}

// CheckQuery accepts the text as the q query parameter.
func (h *CheckHandler) CheckQuery(c fiber.Ctx) error {
	return h.respond(c, c.Query("q"))
}

func (h *CheckHandler) respond(c fiber.Ctx, text string) error {
	text = validation.NormalizeText(text)
	if valid, msg := validation.ValidateText(text, h.cfg.MaxTextLength); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	verdict := h.svc.Decide(c.Context(), text)
	metrics.ObserveVerdict(verdict)

	return jsonSuccess(c, models.CheckResponse{
		Output:     verdict.Output,
		Decision:   verdict.Decision,
		Label:      verdict.Classification.Label,
		Confidence: verdict.Classification.Confidence,
		Lookup:     verdict.Lookup,
	})
}
