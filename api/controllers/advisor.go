package controllers

import (
	"net/http"

	"github.com/agriquote/agriquote-backend/api/responses"
	"github.com/agriquote/agriquote-backend/api/validators"
	"github.com/agriquote/agriquote-backend/internal/advisor"
	"github.com/agriquote/agriquote-backend/pkg/logger"
)

type advisorRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

func Advise(svc advisor.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body advisorRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		advice, err := svc.Advise(r.Context(), body.Prompt)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, advice)
	}
}
