package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/peerpods-dev/peerpods/internal/service"
	"github.com/peerpods-dev/peerpods/shared/config"
	"github.com/peerpods-dev/peerpods/shared/errors"
	"github.com/peerpods-dev/peerpods/shared/logger"
	"github.com/peerpods-dev/peerpods/shared/middleware"
	"github.com/peerpods-dev/peerpods/shared/utils"
)

type Health interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	user      service.UserService
	pod       service.PodService
	message   service.MessageService
	recommend service.RecommendService
	health    Health
	cfg       *config.Config
}

func New(user service.UserService, pod service.PodService, message service.MessageService, recommend service.RecommendService, health Health, cfg *config.Config) *Handler {
	return &Handler{user, pod, message, recommend, health, cfg}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// writeError maps the error onto its status code. Anything without one is
// unexpected, so it is logged with the request id for correlation.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if _, ok := err.(*errors.ErrorWithStatusCode); !ok {
		logger.Log.Error("request failed", "request_id", middleware.GetRequestId(r), "error", err)
	}
	utils.WriteErrorAndStatusCode(w, err)
}

func loadAndValidateRequestBody(r *http.Request, body any) error {
	return utils.DecodeValidate(r.Body, body)
}
