package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agriquote/agriquote-backend/api/responses"
	"github.com/agriquote/agriquote-backend/api/validators"
	"github.com/agriquote/agriquote-backend/internal/analytics"
	"github.com/agriquote/agriquote-backend/internal/catalog"
	"github.com/agriquote/agriquote-backend/internal/exports"
	"github.com/agriquote/agriquote-backend/internal/quotations"
	"github.com/agriquote/agriquote-backend/internal/users"
	pkgerrors "github.com/agriquote/agriquote-backend/pkg/errors"
	"github.com/agriquote/agriquote-backend/pkg/logger"
)

type approvalBody struct {
	Approved *bool `json:"approved" validate:"required"`
}

type brandsBody struct {
	Brands []string `json:"brands" validate:"max=20,dive,max=60"`
}

type addTractorBody struct {
	ID      string `json:"id,omitempty" validate:"max=191"`
	Brand   string `json:"brand" validate:"required,max=60"`
	Model   string `json:"model" validate:"required,max=120"`
	Variant string `json:"variant,omitempty" validate:"max=60"`
	HP      int    `json:"hp" validate:"required,min=1,max=500"`
	Image   string `json:"image,omitempty" validate:"omitempty,url"`
	VideoID string `json:"video_id,omitempty" validate:"max=32"`
}

func AdminListDealers(registry users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealers, err := registry.ListDealers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dealers)
	}
}

// AdminSetApproval is idempotent and a no-op for ids that are not dealers.
func AdminSetApproval(registry users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body approvalBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dealerID := chi.URLParam(r, "dealerId")
		if err := registry.SetApproval(r.Context(), dealerID, *body.Approved); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"dealer_id": dealerID, "approved": *body.Approved})
	}
}

func AdminSetBrands(registry users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body brandsBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dealerID := chi.URLParam(r, "dealerId")
		if err := registry.SetBrands(r.Context(), dealerID, body.Brands); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"dealer_id": dealerID, "brands": users.NormalizeBrands(body.Brands)})
	}
}

func AdminAddTractor(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body addTractorBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tractor, err := svc.Add(r.Context(), catalog.AddTractorInput{
			ID:      body.ID,
			Brand:   body.Brand,
			Model:   body.Model,
			Variant: body.Variant,
			HP:      body.HP,
			Image:   body.Image,
			VideoID: body.VideoID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, tractor)
	}
}

// AdminRemoveTractor leaves existing request snapshots untouched.
func AdminRemoveTractor(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Remove(r.Context(), chi.URLParam(r, "tractorId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func AdminListRequests(quotes quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		reqs, err := quotes.AllRequests(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeRequestPage(w, r, logg, reqs, params)
	}
}

func AdminExportRequests(quotes quotations.Service, gen *exports.Generator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqs, err := quotes.AllRequests(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body, err := gen.Generate(reqs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render export"))
			return
		}
		name := fmt.Sprintf("requests-%s.xlsx", time.Now().UTC().Format("20060102"))
		responses.WriteFile(w, exports.ContentType, name, body)
	}
}

func AdminAnalytics(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overview, err := svc.Overview(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, overview)
	}
}
