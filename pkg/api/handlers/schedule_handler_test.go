package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/projectanchor/scheduler/pkg/api/dto"
	"github.com/projectanchor/scheduler/pkg/api/handlers"
)

func TestComputeSchedule(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("successful computation", func(t *testing.T) {
		handler := handlers.NewScheduleHandler()

		reqBody := dto.ScheduleRequest{
			Tasks: []dto.TaskDTO{
				{ID: "t1", Name: "Ship", DurationDays: 1},
			},
			Anchors: map[string]string{"t1": "2026-06-01"},
		}
		body, _ := json.Marshal(reqBody)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router := gin.Default()
		router.POST("/api/v1/schedule", handler.ComputeSchedule)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ScheduleResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 1, len(response.Tasks))
		assert.True(t, response.Tasks[0].IsCritical)
	})

	t.Run("cycle detected maps to 422", func(t *testing.T) {
		handler := handlers.NewScheduleHandler()

		reqBody := dto.ScheduleRequest{
			Tasks: []dto.TaskDTO{
				{ID: "a", Name: "A", DurationDays: 1, Dependencies: []string{"b"}},
				{ID: "b", Name: "B", DurationDays: 1, Dependencies: []string{"a"}},
			},
			Anchors: map[string]string{"a": "2026-06-01"},
		}
		body, _ := json.Marshal(reqBody)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router := gin.Default()
		router.POST("/api/v1/schedule", handler.ComputeSchedule)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("empty tasks returns empty schedule", func(t *testing.T) {
		handler := handlers.NewScheduleHandler()

		reqBody := dto.ScheduleRequest{Tasks: []dto.TaskDTO{}, Anchors: map[string]string{}}
		body, _ := json.Marshal(reqBody)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router := gin.Default()
		router.POST("/api/v1/schedule", handler.ComputeSchedule)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ScheduleResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 0, len(response.Tasks))
	})

	t.Run("invalid request body", func(t *testing.T) {
		handler := handlers.NewScheduleHandler()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule", bytes.NewReader([]byte("not json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router := gin.Default()
		router.POST("/api/v1/schedule", handler.ComputeSchedule)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
