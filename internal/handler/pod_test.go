package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	internal_errors "github.com/peerpods-dev/peerpods/internal/errors"
	"github.com/peerpods-dev/peerpods/shared/domain"
	mw "github.com/peerpods-dev/peerpods/shared/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPodTestHandler(podService *MockPodService) *mux.Router {
	h := &Handler{pod: podService}
	router := mux.NewRouter()
	router.HandleFunc("/pods", h.CreatePod).Methods(http.MethodPost)
	router.HandleFunc("/pods", h.ListPods).Methods(http.MethodGet)
	router.HandleFunc("/pods/{pod}", h.GetPod).Methods(http.MethodGet)
	return router
}

func withUser(req *http.Request, user *domain.User) *http.Request {
	ctx := context.WithValue(req.Context(), mw.UserClaimsKey, user)
	return req.WithContext(ctx)
}

func TestCreatePodHandler(t *testing.T) {
	user := domain.User{Id: 7, Username: "alice"}
	validBody := []byte(`{
		"title": "Morning runners",
		"description": "meet at dawn",
		"duration_hours": 24,
		"launch_mode": "manual",
		"max_messages_per_day": 3,
		"media_policy": "both",
		"visibility": "public"
	}`)

	t.Run("successful request", func(t *testing.T) {
		service := &MockPodService{
			MockCreate: func(data domain.PodCreationData) (domain.PodId, error) {
				assert.Equal(t, user.Id, data.Creator)
				assert.Equal(t, "Morning runners", data.Title)
				assert.Equal(t, 24, data.DurationHours)
				assert.Equal(t, 1, data.DriftTolerance, "drift tolerance defaults to 1")
				assert.Equal(t, domain.LaunchManual, data.LaunchMode)
				assert.Equal(t, domain.MediaBoth, data.MediaPolicy)
				return 42, nil
			},
		}
		router := setupPodTestHandler(service)

		req := withUser(httptest.NewRequest(http.MethodPost, "/pods", bytes.NewBuffer(validBody)), &user)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var resp map[string]domain.PodId
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, domain.PodId(42), resp["id"])
	})

	t.Run("unauthenticated", func(t *testing.T) {
		router := setupPodTestHandler(&MockPodService{})

		req := httptest.NewRequest(http.MethodPost, "/pods", bytes.NewBuffer(validBody))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing required fields", func(t *testing.T) {
		router := setupPodTestHandler(&MockPodService{})

		req := withUser(httptest.NewRequest(http.MethodPost, "/pods", bytes.NewBufferString(`{"title": "x"}`)), &user)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid config", func(t *testing.T) {
		service := &MockPodService{
			MockCreate: func(data domain.PodCreationData) (domain.PodId, error) {
				return 0, internal_errors.InvalidPodConfig
			},
		}
		router := setupPodTestHandler(service)

		req := withUser(httptest.NewRequest(http.MethodPost, "/pods", bytes.NewBuffer(validBody)), &user)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetPodHandler(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		service := &MockPodService{
			MockGet: func(id domain.PodId) (*domain.Pod, error) {
				return &domain.Pod{Id: id, Title: "Morning runners", State: domain.PodActive}, nil
			},
		}
		router := setupPodTestHandler(service)

		req := httptest.NewRequest(http.MethodGet, "/pods/5", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var pod domain.Pod
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pod))
		assert.Equal(t, domain.PodId(5), pod.Id)
		assert.Equal(t, domain.PodActive, pod.State)
	})

	t.Run("not found", func(t *testing.T) {
		service := &MockPodService{
			MockGet: func(id domain.PodId) (*domain.Pod, error) {
				return nil, internal_errors.PodNotFound
			},
		}
		router := setupPodTestHandler(service)

		req := httptest.NewRequest(http.MethodGet, "/pods/999", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		router := setupPodTestHandler(&MockPodService{})

		req := httptest.NewRequest(http.MethodGet, "/pods/abc", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListPodsHandler(t *testing.T) {
	service := &MockPodService{
		MockList: func() ([]domain.Pod, error) {
			return []domain.Pod{{Id: 1}, {Id: 2}}, nil
		},
	}
	router := setupPodTestHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/pods", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var pods []domain.Pod
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pods))
	assert.Len(t, pods, 2)
}
