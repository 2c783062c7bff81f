package services

import (
	"context"
	"testing"
	"time"

	"github.com/profrate/profrate/internal/app/models"
)

type fakeInstanceStore struct {
	instances []*models.ModuleInstance
	latest    time.Time
	hasLatest bool
}

func (f *fakeInstanceStore) Create(ctx context.Context, instance *models.ModuleInstance, professorIDs []string) error {
	return nil
}
func (f *fakeInstanceStore) GetByID(ctx context.Context, id int64) (*models.ModuleInstance, error) {
	return nil, nil
}
func (f *fakeInstanceStore) GetAll(ctx context.Context) ([]*models.ModuleInstance, error) {
	return f.instances, nil
}
func (f *fakeInstanceStore) LatestUpdate(ctx context.Context) (time.Time, bool, error) {
	return f.latest, f.hasLatest, nil
}
func (f *fakeInstanceStore) Update(ctx context.Context, instance *models.ModuleInstance, professorIDs []string) error {
	return nil
}
func (f *fakeInstanceStore) Delete(ctx context.Context, id int64) error { return nil }

func TestListWithInstructors(t *testing.T) {
	updated := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeInstanceStore{
		instances: []*models.ModuleInstance{
			{
				ID:       1,
				Year:     2024,
				Semester: 1,
				Module:   &models.Module{Code: "CS101", Name: "Introduction to Computing"},
				Professors: []*models.Professor{
					{ID: "P001", Name: "Smith"},
					{ID: "P002", Name: "Jones"},
				},
			},
			{
				ID:       2,
				Year:     2024,
				Semester: 2,
				Module:   &models.Module{Code: "CS102", Name: "Data Structures"},
			},
		},
		latest:    updated,
		hasLatest: true,
	}
	service := NewModuleInstanceService(store)

	entries, lastModified, ok, err := service.ListWithInstructors(context.Background())
	if err != nil {
		t.Fatalf("ListWithInstructors: %v", err)
	}
	if !ok {
		t.Fatal("expected a last-modified timestamp")
	}
	if !lastModified.Equal(updated) {
		t.Errorf("lastModified = %v, want %v", lastModified, updated)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	first := entries[0]
	if first.Code != "CS101" || first.Year != 2024 || first.Semester != 1 {
		t.Errorf("unexpected first entry: %+v", first)
	}
	if first.TaughtBy != "Professor Smith (P001), Professor Jones (P002)" {
		t.Errorf("taught_by = %q", first.TaughtBy)
	}
	if entries[1].TaughtBy != "" {
		t.Errorf("an instance with no professors must list nobody, got %q", entries[1].TaughtBy)
	}
}

func TestListWithInstructorsEmpty(t *testing.T) {
	service := NewModuleInstanceService(&fakeInstanceStore{})

	entries, _, ok, err := service.ListWithInstructors(context.Background())
	if err != nil {
		t.Fatalf("ListWithInstructors: %v", err)
	}
	if ok {
		t.Error("no instances means no last-modified timestamp")
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}
