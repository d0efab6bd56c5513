package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/peerpods-dev/peerpods/shared/domain"
	"github.com/peerpods-dev/peerpods/shared/middleware"
)

type podRequest struct {
	Title             string     `validate:"required" json:"title"`
	Description       string     `json:"description"`
	DurationHours     int        `validate:"required" json:"duration_hours"`
	DriftTolerance    int        `json:"drift_tolerance"`
	LaunchMode        string     `validate:"required" json:"launch_mode"`
	ScheduledLaunchAt *time.Time `json:"scheduled_launch_at"`
	MaxMessagesPerDay int        `validate:"required" json:"max_messages_per_day"`
	MediaPolicy       string     `validate:"required" json:"media_policy"`
	Visibility        string     `validate:"required" json:"visibility"`
}

func (h *Handler) CreatePod(w http.ResponseWriter, r *http.Request) {
	var body podRequest
	if err := loadAndValidateRequestBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if body.DriftTolerance == 0 {
		body.DriftTolerance = 1
	}

	id, err := h.pod.Create(domain.PodCreationData{
		Creator:           user.Id,
		Title:             body.Title,
		Description:       body.Description,
		DurationHours:     body.DurationHours,
		DriftTolerance:    body.DriftTolerance,
		LaunchMode:        domain.LaunchMode(body.LaunchMode),
		ScheduledLaunchAt: body.ScheduledLaunchAt,
		MaxMessagesPerDay: body.MaxMessagesPerDay,
		MediaPolicy:       domain.MediaPolicy(body.MediaPolicy),
		Visibility:        domain.Visibility(body.Visibility),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, map[string]domain.PodId{"id": id})
}

func (h *Handler) GetPod(w http.ResponseWriter, r *http.Request) {
	podIdStr := mux.Vars(r)["pod"]
	podId, err := strconv.Atoi(podIdStr)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	pod, err := h.pod.Get(domain.PodId(podId))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, pod)
}

func (h *Handler) ListPods(w http.ResponseWriter, r *http.Request) {
	pods, err := h.pod.List()
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, pods)
}
