package handler

import (
	"net/http"
	"strconv"

	"github.com/peerpods-dev/peerpods/shared/domain"
	"github.com/peerpods-dev/peerpods/shared/middleware"
)

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	full, err := h.user.Get(user.Id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	full.PassHash = ""

	writeJSON(w, full)
}

func (h *Handler) UpdateBio(w http.ResponseWriter, r *http.Request) {
	type bodyJson struct {
		Bio string `json:"bio"`
	}
	var body bodyJson
	if err := loadAndValidateRequestBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.user.UpdateBio(user.Id, body.Bio); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// MyPods lists the pods the caller created or has posted in.
func (h *Handler) MyPods(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	pods, err := h.pod.ListFor(user.Id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if pods == nil {
		pods = []domain.Pod{}
	}

	writeJSON(w, pods)
}

// Recommended ranks open pods against the caller's bio.
func (h *Handler) Recommended(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	topN := 0
	if v := r.URL.Query().Get("top_n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		topN = n
	}

	matches, err := h.recommend.Recommend(r.Context(), user.Id, topN)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if matches == nil {
		matches = []domain.PodMatch{}
	}

	writeJSON(w, matches)
}
