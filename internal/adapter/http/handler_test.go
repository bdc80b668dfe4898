package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIdentity reads the user id straight out of the bearer token.
type fakeIdentity struct{}

func (fakeIdentity) UserFromRequest(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	uid := strings.TrimPrefix(header, "Bearer ")
	if uid == header || uid == "" {
		return "", false
	}
	return uid, true
}

// fakeStore keeps resumes in a map and applies the same ownership rules the
// real repository does.
type fakeStore struct {
	resumes  map[string]*model.Resume
	failWith error
}

func newFakeStore(resumes ...*model.Resume) *fakeStore {
	s := &fakeStore{resumes: map[string]*model.Resume{}}
	for _, r := range resumes {
		s.resumes[r.ID] = r
	}
	return s
}

func (s *fakeStore) Create(_ context.Context, userID, title string) (*model.Resume, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	r := model.NewResume(userID, title)
	s.resumes[r.ID] = r
	return r, nil
}

func (s *fakeStore) GetByID(_ context.Context, id, requesterID string) (*model.Resume, error) {
	r, ok := s.resumes[id]
	if !ok || r.UserID != requesterID {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *fakeStore) GetForPreview(_ context.Context, id, requesterID string) (*model.Resume, error) {
	r, ok := s.resumes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.UserID != requesterID && !r.IsPublic {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *fakeStore) List(_ context.Context, ownerID string) ([]repository.Summary, error) {
	var out []repository.Summary
	for _, r := range s.resumes {
		if r.UserID == ownerID {
			out = append(out, repository.Summary{ID: r.ID, Title: r.Title})
		}
	}
	return out, nil
}

func (s *fakeStore) UpdatePartial(_ context.Context, id, ownerID string, fields map[string]interface{}) (*model.Resume, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	r, ok := s.resumes[id]
	if !ok || r.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	if title, ok := fields["title"].(string); ok {
		r.Title = title
	}
	cp := *r
	return &cp, nil
}

func (s *fakeStore) Delete(_ context.Context, id, ownerID string) error {
	r, ok := s.resumes[id]
	if !ok || r.UserID != ownerID {
		return repository.ErrNotFound
	}
	delete(s.resumes, id)
	return nil
}

func (s *fakeStore) Duplicate(_ context.Context, id, ownerID string) (*model.Resume, error) {
	r, err := s.GetByID(context.Background(), id, ownerID)
	if err != nil {
		return nil, err
	}
	cp := model.NewResume(ownerID, r.Title+" (Copy)")
	s.resumes[cp.ID] = cp
	return cp, nil
}

func (s *fakeStore) TogglePublic(_ context.Context, id, ownerID string) (bool, error) {
	r, ok := s.resumes[id]
	if !ok || r.UserID != ownerID {
		return false, repository.ErrNotFound
	}
	r.IsPublic = !r.IsPublic
	return r.IsPublic, nil
}

func (s *fakeStore) ToggleFavorite(_ context.Context, id, ownerID string) (bool, error) {
	r, ok := s.resumes[id]
	if !ok || r.UserID != ownerID {
		return false, repository.ErrNotFound
	}
	r.IsFavorite = !r.IsFavorite
	return r.IsFavorite, nil
}

func (s *fakeStore) IncrementViewCount(_ context.Context, id string) error {
	if r, ok := s.resumes[id]; ok {
		r.ViewCount++
	}
	return nil
}

func (s *fakeStore) IncrementDownloadCount(_ context.Context, id string) error {
	if r, ok := s.resumes[id]; ok {
		r.DownloadCount++
	}
	return nil
}

type fakeExporter struct {
	pdf []byte
	err error
}

func (f *fakeExporter) RenderDocument(context.Context, *model.Resume) ([]byte, error) {
	return f.pdf, f.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestApp(store ResumeStore, exporter DocumentExporter) *fiber.App {
	app := fiber.New()
	h := NewHandler(store, exporter, quietLogger())
	RegisterRoutes(app, h, fakeIdentity{}, quietLogger())
	return app
}

func ownedResume(userID string) *model.Resume {
	r := model.NewResume(userID, "Owner CV")
	r.PersonalInfo = &model.PersonalInfo{FullName: "Ada Lovelace", Email: "ada@example.com"}
	return r
}

func request(t *testing.T, app *fiber.App, method, path, user, body string) (int, []byte, map[string]string) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+user)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	headers := map[string]string{
		"Content-Type":        resp.Header.Get("Content-Type"),
		"Content-Disposition": resp.Header.Get("Content-Disposition"),
	}
	return resp.StatusCode, b, headers
}

func TestAPIRequiresAuth(t *testing.T) {
	app := newTestApp(newFakeStore(), &fakeExporter{})

	for _, route := range []struct{ method, path string }{
		{"GET", "/api/resumes"},
		{"POST", "/api/resumes"},
		{"GET", "/api/resumes/x"},
		{"PATCH", "/api/resumes/x"},
		{"DELETE", "/api/resumes/x"},
		{"POST", "/api/resumes/x/duplicate"},
		{"POST", "/api/resumes/x/visibility"},
		{"POST", "/api/resumes/x/favorite"},
	} {
		status, _, _ := request(t, app, route.method, route.path, "", "")
		assert.Equal(t, fiber.StatusUnauthorized, status, route.method+" "+route.path)
	}
}

func TestCreateResume(t *testing.T) {
	store := newFakeStore()
	app := newTestApp(store, &fakeExporter{})

	status, body, _ := request(t, app, "POST", "/api/resumes", "user-1", `{"title":"New CV"}`)
	require.Equal(t, fiber.StatusCreated, status)

	var got model.Resume
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "New CV", got.Title)
	assert.Equal(t, "user-1", got.UserID)
	assert.NotEmpty(t, got.ID)

	t.Run("empty title falls back to default", func(t *testing.T) {
		status, body, _ := request(t, app, "POST", "/api/resumes", "user-1", `{}`)
		require.Equal(t, fiber.StatusCreated, status)
		var got model.Resume
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "Untitled Resume", got.Title)
	})
}

func TestGetResume_OwnershipMapping(t *testing.T) {
	r := ownedResume("user-1")
	app := newTestApp(newFakeStore(r), &fakeExporter{})

	status, _, _ := request(t, app, "GET", "/api/resumes/"+r.ID, "user-1", "")
	assert.Equal(t, fiber.StatusOK, status)

	// another user's resume is indistinguishable from a missing one
	status, _, _ = request(t, app, "GET", "/api/resumes/"+r.ID, "user-2", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _, _ = request(t, app, "GET", "/api/resumes/nope", "user-1", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestUpdateResume(t *testing.T) {
	t.Run("valid patch is applied", func(t *testing.T) {
		r := ownedResume("user-1")
		app := newTestApp(newFakeStore(r), &fakeExporter{})

		status, body, _ := request(t, app, "PATCH", "/api/resumes/"+r.ID, "user-1", `{"title":"Renamed"}`)
		require.Equal(t, fiber.StatusOK, status)
		var got model.Resume
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "Renamed", got.Title)
	})

	t.Run("empty patch is rejected", func(t *testing.T) {
		r := ownedResume("user-1")
		app := newTestApp(newFakeStore(r), &fakeExporter{})

		status, _, _ := request(t, app, "PATCH", "/api/resumes/"+r.ID, "user-1", `{}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("patch breaking the document shape is rejected before writing", func(t *testing.T) {
		r := ownedResume("user-1")
		store := newFakeStore(r)
		app := newTestApp(store, &fakeExporter{})

		// experience entry without required fields
		status, _, _ := request(t, app, "PATCH", "/api/resumes/"+r.ID, "user-1",
			`{"experience":[{"id":"e1"}]}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Owner CV", store.resumes[r.ID].Title)
	})

	t.Run("non-owner patch maps to not found", func(t *testing.T) {
		r := ownedResume("user-1")
		app := newTestApp(newFakeStore(r), &fakeExporter{})

		status, _, _ := request(t, app, "PATCH", "/api/resumes/"+r.ID, "user-2", `{"title":"Stolen"}`)
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}

func TestDeleteResume(t *testing.T) {
	r := ownedResume("user-1")
	store := newFakeStore(r)
	app := newTestApp(store, &fakeExporter{})

	status, _, _ := request(t, app, "DELETE", "/api/resumes/"+r.ID, "user-1", "")
	assert.Equal(t, fiber.StatusNoContent, status)
	assert.Empty(t, store.resumes)
}

func TestToggles(t *testing.T) {
	r := ownedResume("user-1")
	app := newTestApp(newFakeStore(r), &fakeExporter{})

	status, body, _ := request(t, app, "POST", "/api/resumes/"+r.ID+"/visibility", "user-1", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"isPublic":true}`, string(body))

	status, body, _ = request(t, app, "POST", "/api/resumes/"+r.ID+"/visibility", "user-1", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"isPublic":false}`, string(body))

	status, body, _ = request(t, app, "POST", "/api/resumes/"+r.ID+"/favorite", "user-1", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"isFavorite":true}`, string(body))
}

func TestPreview(t *testing.T) {
	t.Run("owner preview renders without bumping views", func(t *testing.T) {
		r := ownedResume("user-1")
		store := newFakeStore(r)
		app := newTestApp(store, &fakeExporter{})

		status, body, headers := request(t, app, "GET", "/resumes/"+r.ID+"/preview", "user-1", "")
		require.Equal(t, fiber.StatusOK, status)
		assert.Contains(t, headers["Content-Type"], "text/html")
		assert.Contains(t, string(body), "Ada Lovelace")
		assert.Zero(t, store.resumes[r.ID].ViewCount)
	})

	t.Run("public preview by a stranger bumps views", func(t *testing.T) {
		r := ownedResume("user-1")
		r.IsPublic = true
		store := newFakeStore(r)
		app := newTestApp(store, &fakeExporter{})

		status, _, _ := request(t, app, "GET", "/resumes/"+r.ID+"/preview", "", "")
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, 1, store.resumes[r.ID].ViewCount)
	})

	t.Run("private resume hidden from strangers", func(t *testing.T) {
		r := ownedResume("user-1")
		app := newTestApp(newFakeStore(r), &fakeExporter{})

		status, _, _ := request(t, app, "GET", "/resumes/"+r.ID+"/preview", "", "")
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("mobile mode switches the container", func(t *testing.T) {
		r := ownedResume("user-1")
		app := newTestApp(newFakeStore(r), &fakeExporter{})

		_, body, _ := request(t, app, "GET", "/resumes/"+r.ID+"/preview?mode=mobile", "user-1", "")
		assert.Contains(t, string(body), "preview-mobile")
	})
}

func TestDownloadPDF(t *testing.T) {
	t.Run("success sets headers and bumps downloads", func(t *testing.T) {
		r := ownedResume("user-1")
		r.Title = "Software Engineer Resume"
		store := newFakeStore(r)
		app := newTestApp(store, &fakeExporter{pdf: []byte("%PDF-1.4 fake")})

		status, body, headers := request(t, app, "GET", "/resumes/"+r.ID+"/pdf", "user-1", "")
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "application/pdf", headers["Content-Type"])
		assert.Equal(t, `attachment; filename="Software_Engineer_Resume.pdf"`, headers["Content-Disposition"])
		assert.Equal(t, "%PDF-1.4 fake", string(body))
		assert.Equal(t, 1, store.resumes[r.ID].DownloadCount)
	})

	t.Run("export failure reports 500 and no partial body", func(t *testing.T) {
		r := ownedResume("user-1")
		store := newFakeStore(r)
		app := newTestApp(store, &fakeExporter{err: errors.New("chrome crashed")})

		status, body, _ := request(t, app, "GET", "/resumes/"+r.ID+"/pdf", "user-1", "")
		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.NotContains(t, string(body), "%PDF")
		assert.Zero(t, store.resumes[r.ID].DownloadCount)
	})

	t.Run("private resume hidden from strangers", func(t *testing.T) {
		r := ownedResume("user-1")
		app := newTestApp(newFakeStore(r), &fakeExporter{pdf: []byte("%PDF-1.4")})

		status, _, _ := request(t, app, "GET", "/resumes/"+r.ID+"/pdf", "", "")
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}

func TestStorageErrorMapping(t *testing.T) {
	r := ownedResume("user-1")
	store := newFakeStore(r)
	store.failWith = errors.New("pool exhausted")
	app := newTestApp(store, &fakeExporter{})

	status, _, _ := request(t, app, "POST", "/api/resumes", "user-1", `{"title":"x"}`)
	assert.Equal(t, fiber.StatusInternalServerError, status)
}

func TestHealthz(t *testing.T) {
	app := newTestApp(newFakeStore(), &fakeExporter{})
	status, body, _ := request(t, app, "GET", "/healthz", "", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}
