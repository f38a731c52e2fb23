package accesslist

import (
	"context"

	"allowlist-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the allowlist.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the accesslist routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/accesslist")
	group.Get("/entries", h.HandleEntries)
	group.Get("/snapshot", h.HandleSnapshot)
	group.Post("/sync", h.HandleSync)
	group.Get("/last", h.HandleLastRun)
}

// HandleEntries lists the allowlist rows.
// @Summary List Allowlist Entries
// @Description Returns every row of access_list_client with its domain and address.
// @Tags accesslist
// @Produce json
// @Success 200 {array} reconcile.Entry
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /accesslist/entries [get]
func (h *Handler) HandleEntries(c *fiber.Ctx) error {
	entries, err := h.service.Entries(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to load entries", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(entries)
}

// HandleSnapshot returns the persisted IP to domain snapshot.
// @Summary Get Snapshot
// @Description Returns the snapshot written by the last applied pass.
// @Tags accesslist
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /accesslist/snapshot [get]
func (h *Handler) HandleSnapshot(c *fiber.Ctx) error {
	snap, err := h.service.Snapshot(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to load snapshot", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(snap)
}

// HandleSync runs a reconciliation pass.
// @Summary Run Reconciliation
// @Description Restores cleared domains, resolves every domain and updates changed addresses. Concurrent requests share one pass.
// @Tags accesslist
// @Produce json
// @Param dry_run query boolean false "Plan only, change nothing"
// @Success 200 {object} RunReport
// @Failure 500 {object} RunReport
// @Router /accesslist/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	dryRun := c.QueryBool("dry_run", false)
	l.Info("Triggering reconciliation", zap.Bool("dry_run", dryRun))

	// Server shutdown must not interrupt a pass between commit and snapshot save
	report, err := h.service.Run(context.WithoutCancel(c.Context()), dryRun)
	if err != nil {
		if report == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(report)
	}
	return c.JSON(report)
}

// HandleLastRun returns the report of the most recent pass.
// @Summary Last Reconciliation
// @Description Returns the report of the most recent pass run by this process.
// @Tags accesslist
// @Produce json
// @Success 200 {object} RunReport
// @Failure 404 {object} map[string]string "No pass has run yet"
// @Router /accesslist/last [get]
func (h *Handler) HandleLastRun(c *fiber.Ctx) error {
	report, ok := h.service.LastRun()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no reconciliation has run yet"})
	}
	return c.JSON(report)
}
