package http

import (
	"context"
	"errors"
	"fmt"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/export"
	"resume-builder/internal/layout"
	"resume-builder/internal/model"
	"resume-builder/internal/render"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ResumeStore is the storage collaborator the handlers talk to.
type ResumeStore interface {
	Create(ctx context.Context, userID, title string) (*model.Resume, error)
	GetByID(ctx context.Context, id, requesterID string) (*model.Resume, error)
	GetForPreview(ctx context.Context, id, requesterID string) (*model.Resume, error)
	List(ctx context.Context, ownerID string) ([]repository.Summary, error)
	UpdatePartial(ctx context.Context, id, ownerID string, fields map[string]interface{}) (*model.Resume, error)
	Delete(ctx context.Context, id, ownerID string) error
	Duplicate(ctx context.Context, id, ownerID string) (*model.Resume, error)
	TogglePublic(ctx context.Context, id, ownerID string) (bool, error)
	ToggleFavorite(ctx context.Context, id, ownerID string) (bool, error)
	IncrementViewCount(ctx context.Context, id string) error
	IncrementDownloadCount(ctx context.Context, id string) error
}

// DocumentExporter produces the downloadable PDF for an authorized resume.
type DocumentExporter interface {
	RenderDocument(ctx context.Context, r *model.Resume) ([]byte, error)
}

type Handler struct {
	store    ResumeStore
	exporter DocumentExporter
	log      *logrus.Logger
}

func NewHandler(store ResumeStore, exporter DocumentExporter, log *logrus.Logger) *Handler {
	return &Handler{store: store, exporter: exporter, log: log}
}

type createReq struct {
	Title string `json:"title"`
}

func (h *Handler) CreateResume(c *fiber.Ctx) error {
	var req createReq
	if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if req.Title == "" {
		req.Title = "Untitled Resume"
	}
	res, err := h.store.Create(c.Context(), requesterID(c), req.Title)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *Handler) ListResumes(c *fiber.Ctx) error {
	summaries, err := h.store.List(c.Context(), requesterID(c))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(summaries)
}

func (h *Handler) GetResume(c *fiber.Ctx) error {
	res, err := h.store.GetByID(c.Context(), c.Params("id"), requesterID(c))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(res)
}

// updateReq carries one partial update: any subset of the mutable field
// groups. Absent groups stay untouched.
type updateReq struct {
	Title             *string                  `json:"title"`
	PersonalInfo      *model.PersonalInfo      `json:"personalInfo"`
	Experience        *[]model.Experience      `json:"experience"`
	Education         *[]model.Education       `json:"education"`
	Skills            *[]model.Skill           `json:"skills"`
	Projects          *[]model.Project         `json:"projects"`
	Certifications    *[]model.Certification   `json:"certifications"`
	Languages         *[]model.Language        `json:"languages"`
	CustomSections    *[]model.CustomSection   `json:"customSections"`
	Design            *model.Design            `json:"design"`
	SectionVisibility *model.SectionVisibility `json:"sectionVisibility"`
}

func (req *updateReq) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.PersonalInfo != nil {
		fields["personalInfo"] = req.PersonalInfo
	}
	if req.Experience != nil {
		fields["experience"] = *req.Experience
	}
	if req.Education != nil {
		fields["education"] = *req.Education
	}
	if req.Skills != nil {
		fields["skills"] = *req.Skills
	}
	if req.Projects != nil {
		fields["projects"] = *req.Projects
	}
	if req.Certifications != nil {
		fields["certifications"] = *req.Certifications
	}
	if req.Languages != nil {
		fields["languages"] = *req.Languages
	}
	if req.CustomSections != nil {
		fields["customSections"] = *req.CustomSections
	}
	if req.Design != nil {
		fields["design"] = req.Design
	}
	if req.SectionVisibility != nil {
		fields["sectionVisibility"] = req.SectionVisibility
	}
	return fields
}

// apply merges the patch onto a loaded resume so the result can be
// schema-checked before anything is written.
func (req *updateReq) apply(r *model.Resume) {
	if req.Title != nil {
		r.Title = *req.Title
	}
	if req.PersonalInfo != nil {
		r.PersonalInfo = req.PersonalInfo
	}
	if req.Experience != nil {
		r.Experience = *req.Experience
	}
	if req.Education != nil {
		r.Education = *req.Education
	}
	if req.Skills != nil {
		r.Skills = *req.Skills
	}
	if req.Projects != nil {
		r.Projects = *req.Projects
	}
	if req.Certifications != nil {
		r.Certifications = *req.Certifications
	}
	if req.Languages != nil {
		r.Languages = *req.Languages
	}
	if req.CustomSections != nil {
		r.CustomSections = *req.CustomSections
	}
	if req.Design != nil {
		r.Design = req.Design
	}
	if req.SectionVisibility != nil {
		r.SectionVisibility = *req.SectionVisibility
	}
}

func (h *Handler) UpdateResume(c *fiber.Ctx) error {
	var req updateReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	fields := req.fields()
	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no fields to update"})
	}

	id := c.Params("id")
	uid := requesterID(c)

	// validate the merged document before writing; the layout core assumes
	// schema-clean input
	current, err := h.store.GetByID(c.Context(), id, uid)
	if err != nil {
		return h.storeError(c, err)
	}
	merged := *current
	req.apply(&merged)
	if err := model.Validate(&merged); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := h.store.UpdatePartial(c.Context(), id, uid, fields)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteResume(c *fiber.Ctx) error {
	if err := h.store.Delete(c.Context(), c.Params("id"), requesterID(c)); err != nil {
		return h.storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) DuplicateResume(c *fiber.Ctx) error {
	cp, err := h.store.Duplicate(c.Context(), c.Params("id"), requesterID(c))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cp)
}

func (h *Handler) TogglePublic(c *fiber.Ctx) error {
	value, err := h.store.TogglePublic(c.Context(), c.Params("id"), requesterID(c))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(fiber.Map{"isPublic": value})
}

func (h *Handler) ToggleFavorite(c *fiber.Ctx) error {
	value, err := h.store.ToggleFavorite(c.Context(), c.Params("id"), requesterID(c))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(fiber.Map{"isFavorite": value})
}

// Preview serves the interactive HTML document under the owner-or-public
// visibility rule. A non-owner view bumps the view counter.
func (h *Handler) Preview(c *fiber.Ctx) error {
	uid := requesterID(c)
	res, err := h.store.GetForPreview(c.Context(), c.Params("id"), uid)
	if err != nil {
		return h.storeError(c, err)
	}
	if err := model.Validate(res); err != nil {
		h.log.WithField("resume_id", res.ID).WithError(err).Error("stored resume failed validation")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "invalid resume document"})
	}

	if uid != res.UserID {
		if err := h.store.IncrementViewCount(c.Context(), res.ID); err != nil {
			h.log.WithError(err).Warn("view count increment failed")
		}
	}

	tree := layout.Compose(res)
	html, err := render.Present(tree, render.ParseViewport(c.Query("mode")))
	if err != nil {
		h.log.WithError(err).Error("preview render failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "render failed"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

// DownloadPDF streams the exported document. Not-found and visibility are
// settled before the exporter runs; a generation failure is reported once
// and no partial file is ever written to the response.
func (h *Handler) DownloadPDF(c *fiber.Ctx) error {
	res, err := h.store.GetForPreview(c.Context(), c.Params("id"), requesterID(c))
	if err != nil {
		return h.storeError(c, err)
	}
	if err := model.Validate(res); err != nil {
		h.log.WithField("resume_id", res.ID).WithError(err).Error("stored resume failed validation")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "invalid resume document"})
	}

	pdf, err := h.exporter.RenderDocument(c.Context(), res)
	if err != nil {
		h.log.WithField("resume_id", res.ID).WithError(err).Error("pdf export failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "export failed"})
	}

	if err := h.store.IncrementDownloadCount(c.Context(), res.ID); err != nil {
		h.log.WithError(err).Warn("download count increment failed")
	}

	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename(res.Title)))
	return c.Send(pdf)
}

func (h *Handler) Healthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "resume not found"})
	case errors.Is(err, repository.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not authorized"})
	default:
		h.log.WithError(err).Error("storage error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
