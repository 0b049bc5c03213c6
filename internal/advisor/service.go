package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/agriquote/agriquote-backend/pkg/db/models"
	pkgerrors "github.com/agriquote/agriquote-backend/pkg/errors"
	"github.com/agriquote/agriquote-backend/pkg/logger"
	"github.com/agriquote/agriquote-backend/pkg/metrics"
)

const (
	simulatedText = "Simulation: Based on your land size of 5 acres and sugarcane crop, a 45-50 HP tractor is recommended. I suggest checking the current inventory."
	simulatedPick = "t1"
	fallbackText  = "Sorry, I am unable to connect to the advisory server right now. Please try again."

	maxPromptLength = 2000
)

// Advice is the advisor's reply. RecommendedTractorID is always a catalog id or empty.
type Advice struct {
	Explanation          string `json:"explanation"`
	RecommendedTractorID string `json:"recommended_tractor_id,omitempty"`
	Simulated            bool   `json:"simulated,omitempty"`
}

type catalogReader interface {
	ListAll(ctx context.Context) ([]models.Tractor, error)
}

type callMetrics interface {
	IncAdvisorCall(result string)
}

// Service answers free-text tractor questions. It never touches request or quote state.
type Service interface {
	Advise(ctx context.Context, prompt string) (*Advice, error)
}

type service struct {
	catalog   catalogReader
	generator Generator
	metrics   callMetrics
	logg      *logger.Logger
	timeout   time.Duration
}

// NewService builds the advisor. A nil generator answers with a simulated recommendation.
func NewService(catalog catalogReader, generator Generator, m callMetrics, logg *logger.Logger, timeout time.Duration) (Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if m == nil {
		m = (*metrics.Marketplace)(nil)
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{catalog: catalog, generator: generator, metrics: m, logg: logg, timeout: timeout}, nil
}

func (s *service) Advise(ctx context.Context, prompt string) (*Advice, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prompt is required")
	}
	if len(prompt) > maxPromptLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("prompt must be at most %d characters", maxPromptLength))
	}

	if s.generator == nil {
		s.metrics.IncAdvisorCall(metrics.AdvisorSimulated)
		return &Advice{Explanation: simulatedText, RecommendedTractorID: simulatedPick, Simulated: true}, nil
	}

	tractors, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	raw, err := s.generator.Generate(callCtx, systemInstruction(tractors), prompt)
	if err != nil {
		return s.fallback(ctx, err), nil
	}
	advice, err := parseReply(raw)
	if err != nil {
		return s.fallback(ctx, err), nil
	}
	if advice.RecommendedTractorID != "" && !inCatalog(tractors, advice.RecommendedTractorID) {
		ctx = s.logg.WithField(ctx, "recommended_tractor_id", advice.RecommendedTractorID)
		s.logg.Warn(ctx, "advisor.unknown_tractor_dropped")
		advice.RecommendedTractorID = ""
	}

	s.metrics.IncAdvisorCall(metrics.AdvisorSuccess)
	return advice, nil
}

func (s *service) fallback(ctx context.Context, err error) *Advice {
	s.metrics.IncAdvisorCall(metrics.AdvisorFallback)
	s.logg.WarnErr(ctx, "advisor.call_failed", err)
	return &Advice{Explanation: fallbackText}
}

// InventoryContext renders one "ID, Brand, Model, HP, Variant" line per tractor.
func InventoryContext(tractors []models.Tractor) string {
	lines := make([]string, 0, len(tractors))
	for _, t := range tractors {
		lines = append(lines, fmt.Sprintf("ID: %s, Brand: %s, Model: %s, HP: %d, Variant: %s", t.ID, t.Brand, t.Model, t.HP, t.Variant))
	}
	return strings.Join(lines, "\n")
}

func systemInstruction(tractors []models.Tractor) string {
	return `You are an expert agricultural consultant helping a farmer in India choose a tractor.
You have the following inventory of tractors available in our platform:
` + InventoryContext(tractors) + `

Analyze the user's requirement (acres, crop type, usage).
Recommend the best specific tractor ID from the list above.
Provide a short, helpful explanation in simple English suitable for a farmer.
Reply with JSON only: {"explanation": string, "recommendedTractorId": string or null}.`
}

func parseReply(raw string) (*Advice, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, "`")
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "json"))

	var reply struct {
		Explanation          string  `json:"explanation"`
		RecommendedTractorID *string `json:"recommendedTractorId"`
	}
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return nil, fmt.Errorf("decode advisor reply: %w", err)
	}
	if strings.TrimSpace(reply.Explanation) == "" {
		return nil, fmt.Errorf("advisor reply missing explanation")
	}
	advice := &Advice{Explanation: strings.TrimSpace(reply.Explanation)}
	if reply.RecommendedTractorID != nil {
		advice.RecommendedTractorID = strings.TrimSpace(*reply.RecommendedTractorID)
	}
	return advice, nil
}

func inCatalog(tractors []models.Tractor, id string) bool {
	for _, t := range tractors {
		if t.ID == id {
			return true
		}
	}
	return false
}
