package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/agriquote/agriquote-backend/pkg/db/models"
)

type requestsReader interface {
	AllRequests(ctx context.Context) ([]models.QuotationRequest, error)
	VisibleRequestsForDealer(ctx context.Context, dealer *models.User) ([]models.QuotationRequest, error)
}

type catalogReader interface {
	ListAll(ctx context.Context) ([]models.Tractor, error)
}

type dealersReader interface {
	ListDealers(ctx context.Context) ([]models.User, error)
}

// Service aggregates marketplace counters from the live collections.
type Service interface {
	Overview(ctx context.Context) (*Overview, error)
	DealerSummary(ctx context.Context, dealer *models.User) (*DealerSummary, error)
}

type service struct {
	requests requestsReader
	catalog  catalogReader
	dealers  dealersReader
}

func NewService(requests requestsReader, catalog catalogReader, dealers dealersReader) (Service, error) {
	if requests == nil {
		return nil, fmt.Errorf("requests reader required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if dealers == nil {
		return nil, fmt.Errorf("dealers reader required")
	}
	return &service{requests: requests, catalog: catalog, dealers: dealers}, nil
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	reqs, err := s.requests.AllRequests(ctx)
	if err != nil {
		return nil, err
	}
	tractors, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	dealers, err := s.dealers.ListDealers(ctx)
	if err != nil {
		return nil, err
	}

	out := &Overview{
		TotalRequests: len(reqs),
		TotalTractors: len(tractors),
		TotalDealers:  len(dealers),
	}
	for _, d := range dealers {
		if d.IsApproved {
			out.ApprovedDealers++
		}
	}
	out.ApprovalRate = percent(out.ApprovedDealers, out.TotalDealers)

	byBrand := map[string]int{}
	byDistrict := map[string]int{}
	for _, r := range reqs {
		out.TotalQuotes += len(r.Quotes)
		byBrand[r.TractorSnapshot.Brand]++
		byDistrict[r.District]++
	}
	out.RequestsPerBrand = ranked(byBrand)
	out.RequestsPerDistrict = ranked(byDistrict)
	return out, nil
}

func (s *service) DealerSummary(ctx context.Context, dealer *models.User) (*DealerSummary, error) {
	visible, err := s.requests.VisibleRequestsForDealer(ctx, dealer)
	if err != nil {
		return nil, err
	}
	out := &DealerSummary{VisibleRequests: len(visible)}
	if dealer == nil {
		return out, nil
	}
	for _, r := range visible {
		if r.QuoteIndexForDealer(dealer.ID) >= 0 {
			out.QuotedRequests++
		}
	}
	out.PendingRequests = out.VisibleRequests - out.QuotedRequests
	return out, nil
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

// ranked sorts by count desc, then key asc.
func ranked(counts map[string]int) []Count {
	out := make([]Count, 0, len(counts))
	for k, v := range counts {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
