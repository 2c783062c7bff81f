package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/pkg/apperrors"
)

type fakeProfessorService struct {
	digest []string
}

func (f *fakeProfessorService) CreateProfessor(ctx context.Context, professor *models.Professor) error {
	return nil
}
func (f *fakeProfessorService) GetProfessorByID(ctx context.Context, id string) (*models.Professor, error) {
	return nil, apperrors.ErrProfessorNotFound
}
func (f *fakeProfessorService) GetAllProfessors(ctx context.Context) ([]*models.Professor, error) {
	return nil, nil
}
func (f *fakeProfessorService) UpdateProfessor(ctx context.Context, professor *models.Professor) error {
	return nil
}
func (f *fakeProfessorService) DeleteProfessor(ctx context.Context, id string) error { return nil }
func (f *fakeProfessorService) RatingsDigest(ctx context.Context) ([]string, error) {
	return f.digest, nil
}

type fakeInstanceService struct {
	entries      []dto.ModuleInstanceEntry
	lastModified time.Time
	hasEntries   bool
}

func (f *fakeInstanceService) CreateModuleInstance(ctx context.Context, instance *models.ModuleInstance, professorIDs []string) error {
	return nil
}
func (f *fakeInstanceService) GetModuleInstanceByID(ctx context.Context, id int64) (*models.ModuleInstance, error) {
	return nil, apperrors.ErrModuleInstanceNotFound
}
func (f *fakeInstanceService) GetAllModuleInstances(ctx context.Context) ([]*models.ModuleInstance, error) {
	return nil, nil
}
func (f *fakeInstanceService) UpdateModuleInstance(ctx context.Context, instance *models.ModuleInstance, professorIDs []string) error {
	return nil
}
func (f *fakeInstanceService) DeleteModuleInstance(ctx context.Context, id int64) error { return nil }
func (f *fakeInstanceService) ListWithInstructors(ctx context.Context) ([]dto.ModuleInstanceEntry, time.Time, bool, error) {
	return f.entries, f.lastModified, f.hasEntries, nil
}

func TestRatingsListDigestAndCachePolicy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewProfessorController(&fakeProfessorService{digest: []string{
		"The rating of Professor Smith (P001) is ★★★★",
		"The rating of Professor Jones (P002) is no ratings",
	}})
	router.GET("/api/ratings-list", controller.RatingsList)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ratings-list", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}

	var envelope struct {
		Status string   `json:"status"`
		Data   []string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(envelope.Data) != 2 || envelope.Data[0] != "The rating of Professor Smith (P001) is ★★★★" {
		t.Errorf("unexpected digest: %v", envelope.Data)
	}
}

func TestListModulesHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	updated := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	controller := NewModuleInstanceController(&fakeInstanceService{
		entries: []dto.ModuleInstanceEntry{
			{Code: "CS101", Name: "Introduction to Computing", Year: 2024, Semester: 1, TaughtBy: "Professor Smith (P001)"},
		},
		lastModified: updated,
		hasEntries:   true,
	})
	router.GET("/api/list-modules", controller.ListModules)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/list-modules", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", got)
	}
	if got := rec.Header().Get("Last-Modified"); got != updated.Format(http.TimeFormat) {
		t.Errorf("Last-Modified = %q, want %q", got, updated.Format(http.TimeFormat))
	}
}

func TestListModulesNoInstancesOmitsLastModified(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewModuleInstanceController(&fakeInstanceService{})
	router.GET("/api/list-modules", controller.ListModules)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/list-modules", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Last-Modified"); got != "" {
		t.Errorf("Last-Modified must be absent with no instances, got %q", got)
	}
}
