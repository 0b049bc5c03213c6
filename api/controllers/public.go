package controllers

import (
	"net/http"

	"github.com/agriquote/agriquote-backend/api/responses"
	"github.com/agriquote/agriquote-backend/internal/catalog"
	"github.com/agriquote/agriquote-backend/internal/geo"
	"github.com/agriquote/agriquote-backend/pkg/logger"
)

func PublicDistricts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, geo.Directory())
	}
}

func PublicBrands(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brands, err := svc.UniqueBrands(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brands)
	}
}

// PublicTractors lists the catalog; the admin tractor listing reuses it.
func PublicTractors(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tractors, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tractors)
	}
}
