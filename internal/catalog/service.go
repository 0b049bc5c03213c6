package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agriquote/agriquote-backend/pkg/db/models"
	pkgerrors "github.com/agriquote/agriquote-backend/pkg/errors"
	"github.com/agriquote/agriquote-backend/pkg/store"
	"github.com/google/uuid"
)

type tractorCollection interface {
	ReadAll(ctx context.Context) ([]models.Tractor, error)
	Update(ctx context.Context, fn func([]models.Tractor) ([]models.Tractor, error)) error
}

// Service exposes the tractor catalog.
type Service interface {
	ListAll(ctx context.Context) ([]models.Tractor, error)
	UniqueBrands(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, id string) (*models.Tractor, error)
	Add(ctx context.Context, input AddTractorInput) (*models.Tractor, error)
	Remove(ctx context.Context, id string) error
}

type service struct {
	tractors tractorCollection
}

// NewService builds a catalog service over the tractors collection.
func NewService(tractors tractorCollection) (Service, error) {
	if tractors == nil {
		return nil, fmt.Errorf("tractors collection required")
	}
	return &service{tractors: tractors}, nil
}

// AddTractorInput captures a new catalog entry. ID is generated when blank.
type AddTractorInput struct {
	ID      string
	Brand   string
	Model   string
	Variant string
	HP      int
	Image   string
	VideoID string
}

func (s *service) ListAll(ctx context.Context) ([]models.Tractor, error) {
	return s.tractors.ReadAll(ctx)
}

// UniqueBrands reads the catalog on every call so admin edits show up immediately.
func (s *service) UniqueBrands(ctx context.Context) ([]string, error) {
	tractors, err := s.tractors.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	brands := []string{}
	for _, t := range tractors {
		if _, ok := seen[t.Brand]; ok {
			continue
		}
		seen[t.Brand] = struct{}{}
		brands = append(brands, t.Brand)
	}
	sort.Strings(brands)
	return brands, nil
}

func (s *service) FindByID(ctx context.Context, id string) (*models.Tractor, error) {
	tractors, err := s.tractors.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tractors {
		if t.ID == id {
			found := t
			return &found, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tractor not found")
}

func (s *service) Add(ctx context.Context, input AddTractorInput) (*models.Tractor, error) {
	tractor := models.Tractor{
		ID:      strings.TrimSpace(input.ID),
		Brand:   strings.TrimSpace(input.Brand),
		Model:   strings.TrimSpace(input.Model),
		Variant: strings.TrimSpace(input.Variant),
		HP:      input.HP,
		Image:   strings.TrimSpace(input.Image),
		VideoID: strings.TrimSpace(input.VideoID),
	}
	if tractor.Brand == "" || tractor.Model == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand and model are required")
	}
	if tractor.HP <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hp must be positive")
	}
	if tractor.ID == "" {
		tractor.ID = "trc_" + uuid.NewString()
	}

	err := s.tractors.Update(ctx, func(items []models.Tractor) ([]models.Tractor, error) {
		for _, existing := range items {
			if existing.ID == tractor.ID {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("tractor %q already exists", tractor.ID))
			}
		}
		return append(items, tractor), nil
	})
	if err != nil {
		return nil, err
	}
	return &tractor, nil
}

// Remove deletes the entry. Requests keep their own snapshot and are not touched.
func (s *service) Remove(ctx context.Context, id string) error {
	return s.tractors.Update(ctx, func(items []models.Tractor) ([]models.Tractor, error) {
		kept := make([]models.Tractor, 0, len(items))
		for _, t := range items {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		if len(kept) == len(items) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tractor not found")
		}
		return kept, nil
	})
}

var _ tractorCollection = (*store.Collection[models.Tractor])(nil)
