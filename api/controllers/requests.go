package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/agriquote/agriquote-backend/api/middleware"
	"github.com/agriquote/agriquote-backend/api/responses"
	"github.com/agriquote/agriquote-backend/api/validators"
	"github.com/agriquote/agriquote-backend/internal/analytics"
	"github.com/agriquote/agriquote-backend/internal/catalog"
	"github.com/agriquote/agriquote-backend/internal/quotations"
	"github.com/agriquote/agriquote-backend/internal/quotedoc"
	"github.com/agriquote/agriquote-backend/pkg/db/models"
	pkgerrors "github.com/agriquote/agriquote-backend/pkg/errors"
	"github.com/agriquote/agriquote-backend/pkg/logger"
	"github.com/agriquote/agriquote-backend/pkg/pagination"
	"github.com/agriquote/agriquote-backend/pkg/types"
)

const maxNotesLength = 500

type createRequestBody struct {
	TractorID string `json:"tractor_id" validate:"required,max=191"`
}

type submitQuoteBody struct {
	ExShowroom      decimal.Decimal `json:"ex_showroom_price"`
	RTO             decimal.Decimal `json:"rto_charges"`
	Insurance       decimal.Decimal `json:"insurance"`
	Accessories     decimal.Decimal `json:"accessories"`
	Discount        decimal.Decimal `json:"discount"`
	Notes           string          `json:"notes,omitempty"`
	ExpectedVersion *int            `json:"expected_version,omitempty" validate:"omitempty,gte=1"`
}

// CustomerCreateRequest snapshots the tractor and files the request in the customer's district.
func CustomerCreateRequest(quotes quotations.Service, tractors catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())
		if user == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var body createRequestBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tractor, err := tractors.FindByID(r.Context(), strings.TrimSpace(body.TractorID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		req, err := quotes.CreateRequest(r.Context(), quotations.CreateRequestInput{
			CustomerID:   user.ID,
			CustomerName: user.Name,
			Tractor:      *tractor,
			District:     user.Address.District,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, req)
	}
}

func CustomerListRequests(quotes quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())
		if user == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}
		params, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		reqs, err := quotes.RequestsForCustomer(r.Context(), user.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeRequestPage(w, r, logg, reqs, params)
	}
}

// CustomerQuoteDocument renders one quote on the caller's own request as PDF.
func CustomerQuoteDocument(quotes quotations.Service, docs *quotedoc.Generator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())
		if user == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		req, err := quotes.FindRequest(r.Context(), chi.URLParam(r, "requestId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		// another customer's request looks the same as a missing one
		if req.CustomerID != user.ID {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "request not found"))
			return
		}
		quote, ok := req.FindQuote(chi.URLParam(r, "quoteId"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found"))
			return
		}

		pdf, err := docs.Generate(*req, *quote)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render quote document"))
			return
		}
		responses.WriteFile(w, "application/pdf", fmt.Sprintf("quote-%s.pdf", quote.ID), pdf)
	}
}

// DealerListRequests is empty for unapproved dealers.
func DealerListRequests(quotes quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		reqs, err := quotes.VisibleRequestsForDealer(r.Context(), middleware.UserFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeRequestPage(w, r, logg, reqs, params)
	}
}

// DealerSubmitQuote answers 201 for a new quote, 200 for a replacement and 202
// when the engine refused without error.
func DealerSubmitQuote(quotes quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body submitQuoteBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := quotes.SubmitQuote(r.Context(), chi.URLParam(r, "requestId"), middleware.UserFromContext(r.Context()), quotations.PriceInput{
			ExShowroom:      body.ExShowroom,
			RTO:             body.RTO,
			Insurance:       body.Insurance,
			Accessories:     body.Accessories,
			Discount:        body.Discount,
			Notes:           validators.SanitizeString(body.Notes, maxNotesLength),
			ExpectedVersion: body.ExpectedVersion,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusAccepted
		switch result.Outcome {
		case quotations.OutcomeCreated:
			status = http.StatusCreated
		case quotations.OutcomeReplaced:
			status = http.StatusOK
		}
		responses.WriteSuccessStatus(w, status, result)
	}
}

func DealerSummary(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.DealerSummary(r.Context(), middleware.UserFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

func writeRequestPage(w http.ResponseWriter, r *http.Request, logg *logger.Logger, reqs []models.QuotationRequest, params pagination.Params) {
	page, next, err := pagination.Paginate(reqs, params, requestCursor)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
		return
	}
	responses.WriteSuccess(w, types.Page[models.QuotationRequest]{Items: page, NextCursor: next})
}

func requestCursor(req models.QuotationRequest) pagination.Cursor {
	return pagination.Cursor{CreatedAt: req.CreatedAt, ID: req.ID}
}
