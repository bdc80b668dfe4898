package http

import (
	"resume-builder/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// RegisterRoutes wires the full HTTP surface. Editing routes require an
// identity; preview and download tolerate anonymous requests so public
// resumes stay shareable.
func RegisterRoutes(app *fiber.App, h *Handler, id auth.Identity, log *logrus.Logger) {
	app.Use(RequestLogger(log))

	app.Get("/healthz", h.Healthz)

	api := app.Group("/api", RequireAuth(id))
	api.Post("/resumes", h.CreateResume)
	api.Get("/resumes", h.ListResumes)
	api.Get("/resumes/:id", h.GetResume)
	api.Patch("/resumes/:id", h.UpdateResume)
	api.Delete("/resumes/:id", h.DeleteResume)
	api.Post("/resumes/:id/duplicate", h.DuplicateResume)
	api.Post("/resumes/:id/visibility", h.TogglePublic)
	api.Post("/resumes/:id/favorite", h.ToggleFavorite)

	public := app.Group("/resumes", OptionalAuth(id))
	public.Get("/:id/preview", h.Preview)
	public.Get("/:id/pdf", h.DownloadPDF)
}
