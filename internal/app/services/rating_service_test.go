package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/pkg/apperrors"
)

type fakeRatingStore struct {
	upserted      *models.Rating
	upsertCreated bool
	created       *models.Rating
	moduleAvg     *float64
}

func (f *fakeRatingStore) GetAll(ctx context.Context) ([]*models.Rating, error) { return nil, nil }
func (f *fakeRatingStore) GetByID(ctx context.Context, id int64) (*models.Rating, error) {
	return nil, apperrors.ErrRatingNotFound
}
func (f *fakeRatingStore) Upsert(ctx context.Context, rating *models.Rating) (bool, error) {
	rating.ID = 1
	rating.LastUpdated = time.Now()
	f.upserted = rating
	return f.upsertCreated, nil
}
func (f *fakeRatingStore) Create(ctx context.Context, rating *models.Rating) error {
	f.created = rating
	return nil
}
func (f *fakeRatingStore) UpdateValue(ctx context.Context, id int64, value int) (*models.Rating, error) {
	return &models.Rating{ID: id, Rating: value}, nil
}
func (f *fakeRatingStore) Delete(ctx context.Context, id int64) error { return nil }
func (f *fakeRatingStore) ModuleAverage(ctx context.Context, professorID, moduleCode string) (*float64, error) {
	return f.moduleAvg, nil
}

type fakeProfessorFinder struct {
	professors map[string]*models.Professor
}

func (f *fakeProfessorFinder) GetByID(ctx context.Context, id string) (*models.Professor, error) {
	if professor, ok := f.professors[id]; ok {
		return professor, nil
	}
	return nil, apperrors.ErrProfessorNotFound
}

type fakeUserFinder struct {
	users map[string]*models.User
}

func (f *fakeUserFinder) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := f.users[username]; ok {
		return user, nil
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeModuleFinder struct {
	modules map[string]*models.Module
}

func (f *fakeModuleFinder) GetByCode(ctx context.Context, code string) (*models.Module, error) {
	if module, ok := f.modules[code]; ok {
		return module, nil
	}
	return nil, apperrors.ErrModuleNotFound
}

type fakeInstanceResolver struct {
	instance *models.ModuleInstance
	teaching map[string]bool
}

func (f *fakeInstanceResolver) GetByModuleAndSemester(ctx context.Context, moduleCode string, semester, year int) (*models.ModuleInstance, error) {
	if f.instance == nil || f.instance.ModuleCode != moduleCode || f.instance.Semester != semester {
		return nil, apperrors.ErrModuleInstanceNotFound
	}
	if year > 0 && f.instance.Year != year {
		return nil, apperrors.ErrModuleInstanceNotFound
	}
	return f.instance, nil
}

func (f *fakeInstanceResolver) IsProfessorTeaching(ctx context.Context, instanceID int64, professorID string) (bool, error) {
	return f.teaching[professorID], nil
}

func newRatingFixture() (*fakeRatingStore, RatingService) {
	ratingStore := &fakeRatingStore{upsertCreated: true}
	service := NewRatingService(
		ratingStore,
		&fakeProfessorFinder{professors: map[string]*models.Professor{
			"P001": {ID: "P001", Name: "Smith"},
			"P003": {ID: "P003", Name: "Brown"},
		}},
		&fakeUserFinder{users: map[string]*models.User{
			"jdoe": {ID: 7, Username: "jdoe"},
		}},
		&fakeModuleFinder{modules: map[string]*models.Module{
			"CS101": {Code: "CS101", Name: "Introduction to Computing"},
		}},
		&fakeInstanceResolver{
			instance: &models.ModuleInstance{ID: 42, ModuleCode: "CS101", Year: 2024, Semester: 1, LastUpdated: time.Now()},
			teaching: map[string]bool{"P001": true},
		},
	)
	return ratingStore, service
}

func TestRateProfessorCreatesRating(t *testing.T) {
	store, service := newRatingFixture()

	rating, created, err := service.RateProfessor(context.Background(), &dto.RateRequest{
		ProfessorID: "P001",
		UserName:    "jdoe",
		ModuleCode:  "CS101",
		Rating:      4,
		Semester:    1,
	})
	if err != nil {
		t.Fatalf("RateProfessor: %v", err)
	}
	if !created {
		t.Error("expected a new rating to be created")
	}
	if store.upserted == nil {
		t.Fatal("rating never reached the store")
	}
	if store.upserted.ModuleInstanceID != 42 || store.upserted.UserID != 7 || store.upserted.ProfessorID != "P001" {
		t.Errorf("unexpected rating row: %+v", store.upserted)
	}
	if rating == nil || rating.LastUpdated.IsZero() {
		t.Error("the returned rating must carry the stamped last_updated")
	}
}

func TestRateProfessorReportsUpdate(t *testing.T) {
	store, service := newRatingFixture()
	store.upsertCreated = false

	_, created, err := service.RateProfessor(context.Background(), &dto.RateRequest{
		ProfessorID: "P001",
		UserName:    "jdoe",
		ModuleCode:  "CS101",
		Rating:      5,
		Semester:    1,
	})
	if err != nil {
		t.Fatalf("RateProfessor: %v", err)
	}
	if created {
		t.Error("expected an update of the existing rating, not a create")
	}
}

func TestRateProfessorUnknownProfessor(t *testing.T) {
	store, service := newRatingFixture()

	_, _, err := service.RateProfessor(context.Background(), &dto.RateRequest{
		ProfessorID: "P999",
		UserName:    "jdoe",
		ModuleCode:  "CS101",
		Rating:      4,
		Semester:    1,
	})
	if !errors.Is(err, apperrors.ErrProfessorNotFound) {
		t.Fatalf("expected ErrProfessorNotFound, got %v", err)
	}
	if store.upserted != nil {
		t.Error("no rating should be written for an unknown professor")
	}
}

func TestRateProfessorNotTeaching(t *testing.T) {
	store, service := newRatingFixture()

	_, _, err := service.RateProfessor(context.Background(), &dto.RateRequest{
		ProfessorID: "P003",
		UserName:    "jdoe",
		ModuleCode:  "CS101",
		Rating:      4,
		Semester:    1,
	})
	if !errors.Is(err, apperrors.ErrProfessorNotTeaching) {
		t.Fatalf("expected ErrProfessorNotTeaching, got %v", err)
	}
	if store.upserted != nil {
		t.Error("no rating row may be created when the professor is not teaching")
	}
}

func TestRateProfessorRejectsOutOfRangeValue(t *testing.T) {
	_, service := newRatingFixture()

	for _, value := range []int{0, 6, -1} {
		_, _, err := service.RateProfessor(context.Background(), &dto.RateRequest{
			ProfessorID: "P001",
			UserName:    "jdoe",
			ModuleCode:  "CS101",
			Rating:      value,
			Semester:    1,
		})
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("rating %d: expected validation failure, got %v", value, err)
		}
	}
}

func TestModuleAverageRequiresExistingModule(t *testing.T) {
	_, service := newRatingFixture()

	_, err := service.ModuleAverage(context.Background(), "P001", "NOPE")
	if !errors.Is(err, apperrors.ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}
}

func TestModuleAverageNilWhenUnrated(t *testing.T) {
	store, service := newRatingFixture()
	store.moduleAvg = nil

	result, err := service.ModuleAverage(context.Background(), "P001", "CS101")
	if err != nil {
		t.Fatalf("ModuleAverage: %v", err)
	}
	if result.AverageRating != nil {
		t.Errorf("expected nil average for an unrated professor, got %v", *result.AverageRating)
	}
	if result.ProfessorName != "Smith" || result.ModuleName != "Introduction to Computing" {
		t.Errorf("unexpected names in response: %+v", result)
	}
}

func TestCreateRatingEnforcesMembership(t *testing.T) {
	store, service := newRatingFixture()

	err := service.CreateRating(context.Background(), &models.Rating{
		ModuleInstanceID: 42,
		ProfessorID:      "P003",
		UserID:           7,
		Rating:           3,
	})
	if !errors.Is(err, apperrors.ErrProfessorNotTeaching) {
		t.Fatalf("expected ErrProfessorNotTeaching, got %v", err)
	}
	if store.created != nil {
		t.Error("no rating row may be created when the professor is not teaching")
	}
}
