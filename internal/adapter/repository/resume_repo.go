package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"resume-builder/internal/cache"
	"resume-builder/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound     = errors.New("resume not found")
	ErrUnauthorized = errors.New("not authorized")
)

const (
	retryAttempts     = 3
	retryInitialDelay = time.Second
)

// ResumeRepo owns the persisted resume records. It serializes all writes, so
// the layout core never sees shared mutable state.
type ResumeRepo struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	ownerTTL time.Duration
	log      *logrus.Logger
}

func NewResumeRepo(pool *pgxpool.Pool, c cache.Cache, ownerTTL time.Duration, log *logrus.Logger) *ResumeRepo {
	return &ResumeRepo{pool: pool, cache: c, ownerTTL: ownerTTL, log: log}
}

const resumeColumns = `id, user_id, title, slug, template_id, personal_info,
	experience, education, skills, projects, certifications, languages,
	custom_sections, design, section_visibility, is_public, is_favorite,
	view_count, download_count, last_viewed_at, created_at, updated_at`

// Summary is the dashboard projection: enough to draw the card, nothing more.
type Summary struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	TemplateID string        `json:"templateId"`
	Design     *model.Design `json:"design,omitempty"`
	IsPublic   bool          `json:"isPublic"`
	IsFavorite bool          `json:"isFavorite"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

func (r *ResumeRepo) Create(ctx context.Context, userID, title string) (*model.Resume, error) {
	res := model.NewResume(userID, title)
	err := retryWithBackoff(ctx, retryAttempts, retryInitialDelay, func() error {
		_, err := r.pool.Exec(ctx, `INSERT INTO resumes
			(id, user_id, title, slug, template_id, personal_info, experience, education,
			 skills, projects, certifications, languages, custom_sections, design,
			 section_visibility, is_public, is_favorite, view_count, download_count,
			 created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`,
			res.ID, res.UserID, res.Title, res.Slug, res.TemplateID,
			jsonb(res.PersonalInfo), jsonb(res.Experience), jsonb(res.Education),
			jsonb(res.Skills), jsonb(res.Projects), jsonb(res.Certifications),
			jsonb(res.Languages), jsonb(res.CustomSections), jsonb(res.Design),
			jsonb(res.SectionVisibility), res.IsPublic, res.IsFavorite,
			res.ViewCount, res.DownloadCount, res.CreatedAt, res.UpdatedAt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GetByID loads a resume for editing; only the owner may load it.
func (r *ResumeRepo) GetByID(ctx context.Context, id, requesterID string) (*model.Resume, error) {
	res, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.UserID != requesterID {
		return nil, ErrNotFound
	}
	return res, nil
}

// GetForPreview applies the visibility rule: the owner may always view, a
// non-owner (or anonymous requester) only when the resume is public. An
// invisible resume is indistinguishable from a missing one.
func (r *ResumeRepo) GetForPreview(ctx context.Context, id, requesterID string) (*model.Resume, error) {
	res, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if requesterID != "" && res.UserID == requesterID {
		return res, nil
	}
	if res.IsPublic {
		return res, nil
	}
	return nil, ErrNotFound
}

func (r *ResumeRepo) List(ctx context.Context, ownerID string) ([]Summary, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, template_id, design,
		is_public, is_favorite, created_at, updated_at
		FROM resumes WHERE user_id = $1 ORDER BY updated_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var s Summary
		var designRaw []byte
		if err := rows.Scan(&s.ID, &s.Title, &s.TemplateID, &designRaw,
			&s.IsPublic, &s.IsFavorite, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if len(designRaw) > 0 {
			_ = json.Unmarshal(designRaw, &s.Design)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// updatableColumns maps the field-group names of a partial update to their
// storage columns. Anything else is rejected.
var updatableColumns = map[string]string{
	"title":             "title",
	"personalInfo":      "personal_info",
	"experience":        "experience",
	"education":         "education",
	"skills":            "skills",
	"projects":          "projects",
	"certifications":    "certifications",
	"languages":         "languages",
	"customSections":    "custom_sections",
	"design":            "design",
	"sectionVisibility": "section_visibility",
}

// UpdatePartial writes one or more field groups and bumps updatedAt, the
// optimistic-concurrency signal. Ownership is checked through the TTL cache
// before paying for a DB round-trip.
func (r *ResumeRepo) UpdatePartial(ctx context.Context, id, ownerID string, fields map[string]interface{}) (*model.Resume, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	if err := r.checkOwnership(ctx, id, ownerID); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if _, ok := updatableColumns[name]; !ok {
			return nil, fmt.Errorf("field %q is not updatable", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	sets := make([]string, 0, len(names)+1)
	args := make([]interface{}, 0, len(names)+2)
	for _, name := range names {
		args = append(args, encodeField(name, fields[name]))
		sets = append(sets, fmt.Sprintf("%s = $%d", updatableColumns[name], len(args)))
	}
	args = append(args, time.Now().UTC())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, id)

	query := fmt.Sprintf("UPDATE resumes SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	err := retryWithBackoff(ctx, retryAttempts, retryInitialDelay, func() error {
		tag, err := r.pool.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.get(ctx, id)
}

func (r *ResumeRepo) Delete(ctx context.Context, id, ownerID string) error {
	if err := r.checkOwnership(ctx, id, ownerID); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	r.cache.Delete(ctx, ownerKey(id, ownerID))
	return nil
}

// Duplicate copies a resume under a new id. The copy is always private.
func (r *ResumeRepo) Duplicate(ctx context.Context, id, ownerID string) (*model.Resume, error) {
	orig, err := r.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	cp := *orig
	cp.ID = uuid.NewString()
	cp.Title = orig.Title + " (Copy)"
	cp.Slug = model.Slugify(cp.Title, cp.ID)
	cp.IsPublic = false
	cp.IsFavorite = false
	cp.ViewCount = 0
	cp.DownloadCount = 0
	cp.LastViewedAt = nil
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now

	_, err = r.pool.Exec(ctx, `INSERT INTO resumes
		(id, user_id, title, slug, template_id, personal_info, experience, education,
		 skills, projects, certifications, languages, custom_sections, design,
		 section_visibility, is_public, is_favorite, view_count, download_count,
		 created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`,
		cp.ID, cp.UserID, cp.Title, cp.Slug, cp.TemplateID,
		jsonb(cp.PersonalInfo), jsonb(cp.Experience), jsonb(cp.Education),
		jsonb(cp.Skills), jsonb(cp.Projects), jsonb(cp.Certifications),
		jsonb(cp.Languages), jsonb(cp.CustomSections), jsonb(cp.Design),
		jsonb(cp.SectionVisibility), cp.IsPublic, cp.IsFavorite,
		cp.ViewCount, cp.DownloadCount, cp.CreatedAt, cp.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *ResumeRepo) TogglePublic(ctx context.Context, id, ownerID string) (bool, error) {
	return r.toggleFlag(ctx, id, ownerID, "is_public")
}

func (r *ResumeRepo) ToggleFavorite(ctx context.Context, id, ownerID string) (bool, error) {
	return r.toggleFlag(ctx, id, ownerID, "is_favorite")
}

func (r *ResumeRepo) toggleFlag(ctx context.Context, id, ownerID, column string) (bool, error) {
	if err := r.checkOwnership(ctx, id, ownerID); err != nil {
		return false, err
	}
	query := fmt.Sprintf(`UPDATE resumes SET %s = NOT %s, updated_at = $1
		WHERE id = $2 RETURNING %s`, column, column, column)
	var value bool
	err := r.pool.QueryRow(ctx, query, time.Now().UTC(), id).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}
	return value, nil
}

// IncrementViewCount bumps the monotonic view counter and touches
// lastViewedAt; updatedAt is left alone so views do not look like edits.
func (r *ResumeRepo) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE resumes
		SET view_count = view_count + 1, last_viewed_at = $1 WHERE id = $2`,
		time.Now().UTC(), id)
	return err
}

func (r *ResumeRepo) IncrementDownloadCount(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE resumes
		SET download_count = download_count + 1 WHERE id = $1`, id)
	return err
}

func ownerKey(id, userID string) string {
	return "resume-owner-" + id + "-" + userID
}

// checkOwnership consults the TTL cache first so rapid autosave bursts cost
// one ownership query, not one per keystroke.
func (r *ResumeRepo) checkOwnership(ctx context.Context, id, ownerID string) error {
	key := ownerKey(id, ownerID)
	if v, ok := r.cache.Get(ctx, key); ok {
		if v == "1" {
			return nil
		}
		return ErrUnauthorized
	}

	var storedOwner string
	err := r.pool.QueryRow(ctx, `SELECT user_id FROM resumes WHERE id = $1`, id).Scan(&storedOwner)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	isOwner := storedOwner == ownerID
	v := "0"
	if isOwner {
		v = "1"
	}
	r.cache.Put(ctx, key, v, r.ownerTTL)
	if !isOwner {
		return ErrUnauthorized
	}
	return nil
}

func (r *ResumeRepo) get(ctx context.Context, id string) (*model.Resume, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id)
	res, err := scanResume(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	res.Normalize()
	return res, nil
}

func scanResume(row pgx.Row) (*model.Resume, error) {
	var res model.Resume
	var personalInfo, experience, education, skills, projects []byte
	var certifications, languages, customSections, design, visibility []byte

	err := row.Scan(&res.ID, &res.UserID, &res.Title, &res.Slug, &res.TemplateID,
		&personalInfo, &experience, &education, &skills, &projects,
		&certifications, &languages, &customSections, &design, &visibility,
		&res.IsPublic, &res.IsFavorite, &res.ViewCount, &res.DownloadCount,
		&res.LastViewedAt, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}

	for raw, dst := range map[*[]byte]interface{}{
		&personalInfo:   &res.PersonalInfo,
		&experience:     &res.Experience,
		&education:      &res.Education,
		&skills:         &res.Skills,
		&projects:       &res.Projects,
		&certifications: &res.Certifications,
		&languages:      &res.Languages,
		&customSections: &res.CustomSections,
		&design:         &res.Design,
		&visibility:     &res.SectionVisibility,
	} {
		if len(*raw) == 0 {
			continue
		}
		if err := json.Unmarshal(*raw, dst); err != nil {
			return nil, fmt.Errorf("decode stored resume %s: %w", res.ID, err)
		}
	}
	return &res, nil
}

// jsonb marshals a value for a JSONB column; nil stays NULL.
func jsonb(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

// encodeField prepares one partial-update value for its column.
func encodeField(name string, v interface{}) interface{} {
	if name == "title" {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return jsonb(v)
}
