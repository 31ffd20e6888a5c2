package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/projectanchor/scheduler/pkg/api/dto"
	"github.com/projectanchor/scheduler/pkg/api/middleware"
)

func TestValidateRequest(t *testing.T) {
	t.Run("valid create project request", func(t *testing.T) {
		req := dto.CreateProjectRequest{Name: "Kitchen Remodel"}

		err := middleware.ValidateRequest(req)
		assert.NoError(t, err)
	})

	t.Run("missing project name", func(t *testing.T) {
		req := dto.CreateProjectRequest{}

		err := middleware.ValidateRequest(req)
		assert.Error(t, err)
	})

	t.Run("task without id rejected", func(t *testing.T) {
		req := dto.ScheduleRequest{
			Tasks: []dto.TaskDTO{{Name: "Nameless", DurationDays: 1}},
		}

		err := middleware.ValidateRequest(req)
		assert.Error(t, err)
	})

	t.Run("negative duration rejected", func(t *testing.T) {
		req := dto.ScheduleRequest{
			Tasks: []dto.TaskDTO{{ID: "t1", Name: "Design", DurationDays: -1}},
		}

		err := middleware.ValidateRequest(req)
		assert.Error(t, err)
	})

	t.Run("negative minute duration rejected", func(t *testing.T) {
		minutes := int64(-30)
		req := dto.ScheduleRequest{
			Tasks: []dto.TaskDTO{{ID: "t1", Name: "Design", DurationMinutes: &minutes}},
		}

		err := middleware.ValidateRequest(req)
		assert.Error(t, err)
	})
}

func TestBindAndValidate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("valid request", func(t *testing.T) {
		req := dto.SaveProjectRequest{
			Name:    "Launch Plan",
			Tasks:   []dto.TaskDTO{{ID: "t1", Name: "Ship", DurationDays: 2}},
			Anchors: map[string]string{"t1": "2026-05-01"},
		}

		body, _ := json.Marshal(req)
		httpReq := httptest.NewRequest(http.MethodPut, "/test", bytes.NewReader(body))
		httpReq.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httpReq

		var boundReq dto.SaveProjectRequest
		result := middleware.BindAndValidate(c, &boundReq)

		assert.True(t, result)
		assert.Equal(t, "Launch Plan", boundReq.Name)
		assert.Len(t, boundReq.Tasks, 1)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		httpReq := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader([]byte("invalid json")))
		httpReq.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httpReq

		var boundReq dto.ScheduleRequest
		result := middleware.BindAndValidate(c, &boundReq)

		assert.False(t, result)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation failure surfaces field details", func(t *testing.T) {
		req := dto.SaveProjectRequest{
			// Name intentionally empty.
			Tasks: []dto.TaskDTO{{ID: "t1", Name: "Ship", DurationDays: 2}},
		}

		body, _ := json.Marshal(req)
		httpReq := httptest.NewRequest(http.MethodPut, "/test", bytes.NewReader(body))
		httpReq.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httpReq

		var boundReq dto.SaveProjectRequest
		result := middleware.BindAndValidate(c, &boundReq)

		assert.False(t, result)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestValidationErrorResponse(t *testing.T) {
	t.Run("formats validation errors per field", func(t *testing.T) {
		req := dto.CreateProjectRequest{}

		err := middleware.ValidateRequest(req)
		assert.Error(t, err)

		errors := middleware.ValidationErrorResponse(err)
		assert.NotNil(t, errors)
		assert.Contains(t, errors, "Name")
	})
}
