package quotations

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agriquote/agriquote-backend/pkg/db/models"
	"github.com/agriquote/agriquote-backend/pkg/enums"
	pkgerrors "github.com/agriquote/agriquote-backend/pkg/errors"
	"github.com/agriquote/agriquote-backend/pkg/logger"
	"github.com/agriquote/agriquote-backend/pkg/metrics"
	"github.com/agriquote/agriquote-backend/pkg/store"
	"github.com/agriquote/agriquote-backend/pkg/visibility"
	"github.com/google/uuid"
)

// UnknownShowroom is stored on quotes from dealers without a showroom name.
const UnknownShowroom = "Unknown Showroom"

// Outcome describes what SubmitQuote did.
type Outcome string

const (
	OutcomeCreated           Outcome = metrics.OutcomeCreated
	OutcomeReplaced          Outcome = metrics.OutcomeReplaced
	OutcomeRefusedUnapproved Outcome = metrics.OutcomeRefusedUnapproved
	OutcomeRequestNotFound   Outcome = metrics.OutcomeRequestNotFound
)

// Written reports whether the outcome persisted a quote.
func (o Outcome) Written() bool {
	return o == OutcomeCreated || o == OutcomeReplaced
}

// SubmitResult carries the stored quote when one was written.
type SubmitResult struct {
	Outcome Outcome       `json:"outcome"`
	Quote   *models.Quote `json:"quote,omitempty"`
	Version int           `json:"version,omitempty"`
}

type requestCollection interface {
	ReadAll(ctx context.Context) ([]models.QuotationRequest, error)
	Update(ctx context.Context, fn func([]models.QuotationRequest) ([]models.QuotationRequest, error)) error
}

type submissionMetrics interface {
	IncSubmission(outcome string)
	IncRequestCreated()
}

// Service is the matching and quotation engine.
type Service interface {
	CreateRequest(ctx context.Context, input CreateRequestInput) (*models.QuotationRequest, error)
	VisibleRequestsForDealer(ctx context.Context, dealer *models.User) ([]models.QuotationRequest, error)
	RequestsForCustomer(ctx context.Context, customerID string) ([]models.QuotationRequest, error)
	AllRequests(ctx context.Context) ([]models.QuotationRequest, error)
	FindRequest(ctx context.Context, id string) (*models.QuotationRequest, error)
	SubmitQuote(ctx context.Context, requestID string, dealer *models.User, input PriceInput) (SubmitResult, error)
}

type service struct {
	requests requestCollection
	metrics  submissionMetrics
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the engine. A nil metrics recorder disables counting.
func NewService(requests requestCollection, m submissionMetrics, logg *logger.Logger) (Service, error) {
	if requests == nil {
		return nil, fmt.Errorf("requests collection required")
	}
	if m == nil {
		m = (*metrics.Marketplace)(nil)
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{requests: requests, metrics: m, logg: logg, now: time.Now}, nil
}

// CreateRequestInput captures a customer's quote request.
type CreateRequestInput struct {
	CustomerID   string
	CustomerName string
	Tractor      models.Tractor
	District     string
}

func (s *service) CreateRequest(ctx context.Context, input CreateRequestInput) (*models.QuotationRequest, error) {
	customerID := strings.TrimSpace(input.CustomerID)
	district := strings.TrimSpace(input.District)
	if customerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	if district == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "district is required")
	}
	if strings.TrimSpace(input.Tractor.ID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tractor is required")
	}

	req := models.QuotationRequest{
		ID:              "req_" + uuid.NewString(),
		CustomerID:      customerID,
		CustomerName:    strings.TrimSpace(input.CustomerName),
		TractorID:       input.Tractor.ID,
		TractorSnapshot: input.Tractor,
		District:        district,
		Status:          enums.RequestStatusOpen,
		CreatedAt:       s.now().UTC(),
		Quotes:          []models.Quote{},
		Version:         1,
	}

	err := s.requests.Update(ctx, func(items []models.QuotationRequest) ([]models.QuotationRequest, error) {
		return append(items, req), nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncRequestCreated()
	ctx = s.logg.WithFields(ctx, map[string]any{
		"request_id": req.ID,
		"brand":      req.TractorSnapshot.Brand,
		"district":   req.District,
	})
	s.logg.Info(ctx, "quotation.request_created")
	return &req, nil
}

// VisibleRequestsForDealer is empty for unapproved dealers, dealers without brands, and non-dealers.
func (s *service) VisibleRequestsForDealer(ctx context.Context, dealer *models.User) ([]models.QuotationRequest, error) {
	if !visibility.DealerEligible(dealer) {
		return []models.QuotationRequest{}, nil
	}
	return s.filtered(ctx, func(r models.QuotationRequest) bool { return visibility.DealerCanSee(dealer, r) })
}

func (s *service) RequestsForCustomer(ctx context.Context, customerID string) ([]models.QuotationRequest, error) {
	return s.filtered(ctx, func(r models.QuotationRequest) bool { return r.CustomerID == customerID })
}

func (s *service) AllRequests(ctx context.Context) ([]models.QuotationRequest, error) {
	return s.filtered(ctx, func(models.QuotationRequest) bool { return true })
}

func (s *service) FindRequest(ctx context.Context, id string) (*models.QuotationRequest, error) {
	all, err := s.requests.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range all {
		if r.ID == id {
			found := r.Clone()
			return &found, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quotation request not found")
}

func (s *service) filtered(ctx context.Context, keep func(models.QuotationRequest) bool) ([]models.QuotationRequest, error) {
	all, err := s.requests.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.QuotationRequest, 0, len(all))
	for _, r := range all {
		if keep(r) {
			out = append(out, r.Clone())
		}
	}
	SortNewestFirst(out)
	return out, nil
}

// SortNewestFirst orders by created_at descending, then id descending.
func SortNewestFirst(reqs []models.QuotationRequest) {
	sort.SliceStable(reqs, func(i, j int) bool {
		if reqs[i].CreatedAt.Equal(reqs[j].CreatedAt) {
			return reqs[i].ID > reqs[j].ID
		}
		return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
	})
}

// SubmitQuote prices and stores dealer's quote. Refusals and unknown requests are not errors;
// they come back as outcomes with nothing written.
func (s *service) SubmitQuote(ctx context.Context, requestID string, dealer *models.User, input PriceInput) (SubmitResult, error) {
	fields := map[string]any{"request_id": requestID}
	if dealer != nil {
		fields["dealer_id"] = dealer.ID
	}
	ctx = s.logg.WithFields(ctx, fields)

	if err := ValidatePrice(input); err != nil {
		s.metrics.IncSubmission(metrics.OutcomeError)
		return SubmitResult{}, err
	}
	if visibility.EnsureDealerCanQuote(dealer) != nil {
		return s.silent(ctx, OutcomeRefusedUnapproved, "quote.refused_unapproved"), nil
	}

	price := ComputePrice(input)
	showroom := strings.TrimSpace(dealer.ShowroomName)
	if showroom == "" {
		showroom = UnknownShowroom
	}
	quote := models.Quote{
		ID:           "quo_" + uuid.NewString(),
		RequestID:    requestID,
		DealerID:     dealer.ID,
		DealerName:   dealer.Name,
		DealerPhone:  dealer.Phone,
		ShowroomName: showroom,
		ExShowroom:   input.ExShowroom,
		RTO:          input.RTO,
		Insurance:    input.Insurance,
		Accessories:  input.Accessories,
		BasePrice:    price.Base,
		Discount:     input.Discount,
		FinalPrice:   price.Final,
		Notes:        strings.TrimSpace(input.Notes),
		SubmittedAt:  s.now().UTC(),
	}

	outcome := OutcomeRequestNotFound
	version := 0
	err := s.requests.Update(ctx, func(items []models.QuotationRequest) ([]models.QuotationRequest, error) {
		idx := -1
		for i := range items {
			if items[i].ID == requestID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, store.ErrNoChange
		}

		req := &items[idx]
		if input.ExpectedVersion != nil && *input.ExpectedVersion != req.Version {
			return nil, pkgerrors.New(pkgerrors.CodeVersionConflict, "quotation request changed since it was loaded").
				WithDetails(map[string]any{"expected_version": *input.ExpectedVersion, "current_version": req.Version})
		}

		if existing := req.QuoteIndexForDealer(dealer.ID); existing >= 0 {
			quote.ID = req.Quotes[existing].ID
			req.Quotes[existing] = quote
			outcome = OutcomeReplaced
		} else {
			req.Quotes = append(req.Quotes, quote)
			outcome = OutcomeCreated
		}
		req.Version++
		version = req.Version
		return items, nil
	})
	if err != nil {
		s.metrics.IncSubmission(metrics.OutcomeError)
		return SubmitResult{}, err
	}
	if outcome == OutcomeRequestNotFound {
		return s.silent(ctx, OutcomeRequestNotFound, "quote.request_not_found"), nil
	}

	s.metrics.IncSubmission(string(outcome))
	ctx = s.logg.WithFields(ctx, map[string]any{"quote_id": quote.ID, "outcome": outcome, "version": version})
	s.logg.Info(ctx, "quote.submitted")
	return SubmitResult{Outcome: outcome, Quote: &quote, Version: version}, nil
}

func (s *service) silent(ctx context.Context, outcome Outcome, msg string) SubmitResult {
	s.metrics.IncSubmission(string(outcome))
	s.logg.Warn(ctx, msg)
	return SubmitResult{Outcome: outcome}
}

var _ requestCollection = (*store.Collection[models.QuotationRequest])(nil)
