package recipes

import (
	"bytes"
	"errors"
	"strconv"
	"time"

	"stash-recipes/core/logger"
	"stash-recipes/core/recipe"
	"stash-recipes/core/report"
	"stash-recipes/core/serializer"
	"stash-recipes/feature/stash"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for recipe matching.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = report.Report{}
	var _ = recipe.Definition{}
	return &Handler{service: service}
}

// RegisterRoutes registers the recipe routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/recipes")
	group.Get("/", h.HandleListRecipes)
	group.Post("/match", h.HandleMatch)
	group.Get("/snapshots", h.HandleListSnapshots)
	group.Get("/snapshots/:name", h.HandleMatchSnapshot)
	group.Get("/reports/:fingerprint", h.HandleStoredReport)
	group.Get("/history", h.HandleHistory)
	group.Delete("/history", h.HandlePruneHistory)
}

// HandleListRecipes lists the recipe rule set.
// @Summary List Recipes
// @Description Returns the vendor recipe definitions in priority order.
// @Tags recipes
// @Produce json
// @Success 200 {array} recipe.Definition "Recipes"
// @Router /recipes [get]
func (h *Handler) HandleListRecipes(c *fiber.Ctx) error {
	return c.JSON(h.service.Recipes())
}

// HandleMatch matches an uploaded stash-tab document.
// @Summary Match Stash Tab
// @Description Partitions the items of a stash-tab API document into vendor recipe sets.
// @Tags recipes
// @Accept json
// @Produce json,plain
// @Param tab query int false "Tab index of the document" default(0)
// @Param format query string false "Output format (json, yaml, table)" default(json)
// @Param name query string false "Label recorded in the run history"
// @Success 200 {object} report.Report "Match Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /recipes/match [post]
func (h *Handler) HandleMatch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	format, err := serializer.ParseFormat(c.Query("format"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	tab := c.QueryInt("tab", 0)
	if tab < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tab must not be negative"})
	}

	items, err := stash.Parse(bytes.NewReader(c.Body()), tab)
	if err != nil {
		l.Warn("Rejected stash document", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	rep, err := h.service.Match(c.Context(), items, c.Query("name", "upload"))
	if err != nil {
		return h.fail(c, l, "Match failed", err)
	}
	return h.write(c, format, rep)
}

// HandleListSnapshots lists stored snapshots.
// @Summary List Snapshots
// @Description Lists the snapshot folders stored in the bucket.
// @Tags recipes
// @Produce json
// @Success 200 {object} map[string]interface{} "Snapshot names"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /recipes/snapshots [get]
func (h *Handler) HandleListSnapshots(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	names, err := h.service.Snapshots(c.Context())
	if err != nil {
		return h.fail(c, l, "Snapshot listing failed", err)
	}
	return c.JSON(fiber.Map{"snapshots": names})
}

// HandleMatchSnapshot matches a stored snapshot.
// @Summary Match Snapshot
// @Description Loads every page of a stored snapshot and partitions it into vendor recipe sets.
// @Tags recipes
// @Produce json,plain
// @Param name path string true "Snapshot name"
// @Param format query string false "Output format (json, yaml, table)" default(json)
// @Success 200 {object} report.Report "Match Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /recipes/snapshots/{name} [get]
func (h *Handler) HandleMatchSnapshot(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	format, err := serializer.ParseFormat(c.Query("format"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	name := c.Params("name")
	l.Info("Matching stored snapshot", zap.String("snapshot", name))

	rep, err := h.service.MatchSnapshot(c.Context(), name)
	if err != nil {
		return h.fail(c, l, "Snapshot match failed", err)
	}
	return h.write(c, format, rep)
}

// HandleStoredReport returns a persisted report.
// @Summary Get Stored Report
// @Description Returns the report persisted for a snapshot fingerprint.
// @Tags recipes
// @Produce json,plain
// @Param fingerprint path string true "Snapshot fingerprint"
// @Param format query string false "Output format (json, yaml, table)" default(json)
// @Success 200 {object} report.Report "Match Report"
// @Failure 404 {object} map[string]string "Report Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /recipes/reports/{fingerprint} [get]
func (h *Handler) HandleStoredReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	format, err := serializer.ParseFormat(c.Query("format"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	rep, err := h.service.StoredReport(c.Context(), c.Params("fingerprint"))
	if err != nil {
		return h.fail(c, l, "Report lookup failed", err)
	}
	return h.write(c, format, rep)
}

// HandleHistory lists recorded runs.
// @Summary Match History
// @Description Lists recorded match runs, newest first.
// @Tags recipes
// @Produce json
// @Param limit query int false "Maximum number of runs" default(20)
// @Success 200 {array} MatchRun "Runs"
// @Failure 503 {object} map[string]string "Database Unavailable"
// @Router /recipes/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.History(c.Context(), c.QueryInt("limit", 20))
	if err != nil {
		return h.fail(c, l, "History query failed", err)
	}
	return c.JSON(runs)
}

// HandlePruneHistory removes old runs and their reports.
// @Summary Prune History
// @Description Deletes runs recorded before now minus older_than, and the reports only they reference.
// @Tags recipes
// @Produce json
// @Param older_than query string true "Age threshold as a Go duration (e.g. 720h)"
// @Success 200 {object} map[string]interface{} "Prune Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 503 {object} map[string]string "Database Unavailable"
// @Router /recipes/history [delete]
func (h *Handler) HandlePruneHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	age, err := time.ParseDuration(c.Query("older_than"))
	if err != nil || age <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "older_than must be a positive duration"})
	}

	cutoff := time.Now().UTC().Add(-age)
	n, err := h.service.Prune(c.Context(), cutoff)
	if err != nil {
		return h.fail(c, l, "History prune failed", err)
	}
	return c.JSON(fiber.Map{
		"status":  "pruned",
		"deleted": n,
		"cutoff":  cutoff.Format(time.RFC3339),
	})
}

// write encodes rep in format.
func (h *Handler) write(c *fiber.Ctx, format serializer.Format, rep *report.Report) error {
	c.Set("X-Total-Sets", strconv.Itoa(rep.TotalSets))
	if format == serializer.FormatJSON {
		return c.JSON(rep)
	}
	body, err := serializer.Marshal(format, rep)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set(fiber.HeaderContentType, format.ContentType())
	return c.Send(body)
}

// fail maps service errors to status codes. Invariant violations end up as 500.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidSnapshot):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrReportNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrNoDatabase), errors.Is(err, ErrNoStorage):
		status = fiber.StatusServiceUnavailable
	}

	if status == fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
