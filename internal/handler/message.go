package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/peerpods-dev/peerpods/shared/domain"
	"github.com/peerpods-dev/peerpods/shared/middleware"
)

func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	podIdStr := mux.Vars(r)["pod"]
	podId, err := strconv.Atoi(podIdStr)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	type bodyJson struct {
		Kind           string `validate:"required" json:"kind"`
		Content        string `json:"content"`
		VoiceReference string `json:"voice_reference"`
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

	id, err := h.message.Create(domain.PodId(podId), *user, domain.MediaKind(body.Kind), body.Content, body.VoiceReference)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, map[string]domain.MsgId{"id": id})
}

func (h *Handler) GetPodMessages(w http.ResponseWriter, r *http.Request) {
	podIdStr := mux.Vars(r)["pod"]
	podId, err := strconv.Atoi(podIdStr)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	messages, err := h.message.List(domain.PodId(podId))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if messages == nil {
		messages = []domain.Message{}
	}

	writeJSON(w, messages)
}
