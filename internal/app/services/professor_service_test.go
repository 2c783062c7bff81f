package services

import (
	"context"
	"errors"
	"testing"

	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/pkg/apperrors"
)

type fakeProfessorStore struct {
	professors []*models.Professor
	created    *models.Professor
}

func (f *fakeProfessorStore) Create(ctx context.Context, professor *models.Professor) error {
	f.created = professor
	return nil
}
func (f *fakeProfessorStore) GetByID(ctx context.Context, id string) (*models.Professor, error) {
	for _, professor := range f.professors {
		if professor.ID == id {
			return professor, nil
		}
	}
	return nil, apperrors.ErrProfessorNotFound
}
func (f *fakeProfessorStore) GetAll(ctx context.Context) ([]*models.Professor, error) {
	return f.professors, nil
}
func (f *fakeProfessorStore) Update(ctx context.Context, professor *models.Professor) error {
	return nil
}
func (f *fakeProfessorStore) Delete(ctx context.Context, id string) error { return nil }

func floatPtr(v float64) *float64 { return &v }

func TestRatingsDigest(t *testing.T) {
	store := &fakeProfessorStore{professors: []*models.Professor{
		{ID: "P001", Name: "Smith", AverageRating: floatPtr(4.0)},
		{ID: "P002", Name: "Jones", AverageRating: nil},
		{ID: "P003", Name: "Brown", AverageRating: floatPtr(3.5)},
		{ID: "P004", Name: "Lee", AverageRating: floatPtr(2.4)},
	}}
	service := NewProfessorService(store)

	digest, err := service.RatingsDigest(context.Background())
	if err != nil {
		t.Fatalf("RatingsDigest: %v", err)
	}

	want := []string{
		"The rating of Professor Smith (P001) is ★★★★",
		"The rating of Professor Jones (P002) is no ratings",
		"The rating of Professor Brown (P003) is ★★★★", // 3.5 rounds half-up to 4
		"The rating of Professor Lee (P004) is ★★",
	}
	if len(digest) != len(want) {
		t.Fatalf("digest has %d entries, want %d", len(digest), len(want))
	}
	for i, line := range want {
		if digest[i] != line {
			t.Errorf("digest[%d] = %q, want %q", i, digest[i], line)
		}
	}
}

func TestCreateProfessorClearsAverage(t *testing.T) {
	store := &fakeProfessorStore{}
	service := NewProfessorService(store)

	professor := &models.Professor{ID: "P001", Name: "Smith", AverageRating: floatPtr(5.0)}
	if err := service.CreateProfessor(context.Background(), professor); err != nil {
		t.Fatalf("CreateProfessor: %v", err)
	}
	if store.created.AverageRating != nil {
		t.Error("a new professor must start without an average rating")
	}
}

func TestCreateProfessorValidation(t *testing.T) {
	service := NewProfessorService(&fakeProfessorStore{})

	cases := []*models.Professor{
		nil,
		{ID: "", Name: "Smith"},
		{ID: "P001", Name: "   "},
	}
	for i, professor := range cases {
		err := service.CreateProfessor(context.Background(), professor)
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("case %d: expected validation failure, got %v", i, err)
		}
	}
}
