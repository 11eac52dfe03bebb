package validation_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eisenq/internal/adapter/http/dto"
	"eisenq/internal/adapter/http/validation"
	"eisenq/internal/core/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.UseJSONFieldNames()
}

func contextWithBody(body string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func rawOf(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return raw
}

func TestBindJSON_ReportsFieldRules(t *testing.T) {
	var req dto.CreateTaskRequest
	_, err := validation.BindJSON(contextWithBody(`{"title":"x","dueDate":"tomorrow","parentTaskId":"nope"}`), &req)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"quadrant":     domain.RuleRequired,
		"priority":     domain.RuleRequired,
		"dueDate":      validation.RuleFormat,
		"parentTaskId": validation.RuleFormat,
	}, verr.Fields)
}

func TestBindJSON_RejectsNonObjects(t *testing.T) {
	for _, body := range []string{``, `[]`, `null`, `{"title":`} {
		var req dto.CreateTaskRequest
		_, err := validation.BindJSON(contextWithBody(body), &req)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr, body)
		assert.Equal(t, validation.RuleFormat, verr.Fields["body"])
	}
}

func TestBindJSON_ReportsTypeMismatch(t *testing.T) {
	var req dto.UpdateTaskRequest
	_, err := validation.BindJSON(contextWithBody(`{"duration":"long"}`), &req)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validation.RuleType, verr.Fields["duration"])
}

func TestBuildCreateTaskInput_DueDateForms(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	absolute := "2025-03-15T09:30:00Z"
	input, err := validation.BuildCreateTaskInput(dto.CreateTaskRequest{Title: "a", DueDate: &absolute}, tokyo)
	require.NoError(t, err)
	assert.True(t, time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC).Equal(*input.DueDate))

	day, clock := "2025-03-15", "08:05"
	input, err = validation.BuildCreateTaskInput(dto.CreateTaskRequest{Title: "a", DueDay: &day, DueTime: &clock}, tokyo)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 15, 8, 5, 0, 0, tokyo), *input.DueDate)

	input, err = validation.BuildCreateTaskInput(dto.CreateTaskRequest{Title: "a", DueDay: &day}, tokyo)
	require.NoError(t, err)
	assert.Equal(t, 12, input.DueDate.Hour())

	input, err = validation.BuildCreateTaskInput(dto.CreateTaskRequest{Title: "a"}, tokyo)
	require.NoError(t, err)
	assert.Nil(t, input.DueDate)
}

func TestBuildUpdateTaskInput_PresenceAndNull(t *testing.T) {
	body := `{"title":"renamed","description":null,"duration":null,"quadrant":"urgent-important"}`
	var req dto.UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	input, err := validation.BuildUpdateTaskInput(req, rawOf(t, body), time.UTC)
	require.NoError(t, err)

	title, ok := input.Title.Value()
	assert.True(t, ok)
	assert.Equal(t, "renamed", title)
	assert.True(t, input.Description.IsCleared())
	assert.True(t, input.Duration.IsCleared())
	assert.Equal(t, domain.SetTo(domain.QuadrantUrgentImportant), input.Quadrant)
	assert.True(t, input.Priority.IsUnchanged())
	assert.True(t, input.Status.IsUnchanged())
	assert.True(t, input.DueDate.IsUnchanged())
}

func TestBuildUpdateTaskInput_DueDate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		check   func(t *testing.T, patch domain.Patch[time.Time])
		wantErr bool
	}{
		{
			name:  "null clears",
			body:  `{"dueDate":null}`,
			check: func(t *testing.T, patch domain.Patch[time.Time]) { assert.True(t, patch.IsCleared()) },
		},
		{
			name:  "empty day clears",
			body:  `{"dueDay":""}`,
			check: func(t *testing.T, patch domain.Patch[time.Time]) { assert.True(t, patch.IsCleared()) },
		},
		{
			name: "local day and time",
			body: `{"dueDay":"2025-03-20","dueTime":"17:45"}`,
			check: func(t *testing.T, patch domain.Patch[time.Time]) {
				due, ok := patch.Value()
				require.True(t, ok)
				assert.Equal(t, time.Date(2025, 3, 20, 17, 45, 0, 0, time.UTC), due)
			},
		},
		{
			name: "absolute",
			body: `{"dueDate":"2025-03-20T17:45:00+01:00"}`,
			check: func(t *testing.T, patch domain.Patch[time.Time]) {
				due, ok := patch.Value()
				require.True(t, ok)
				assert.True(t, time.Date(2025, 3, 20, 16, 45, 0, 0, time.UTC).Equal(due))
			},
		},
		{name: "malformed", body: `{"dueDate":"20/03/2025"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.UpdateTaskRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			input, err := validation.BuildUpdateTaskInput(req, rawOf(t, tt.body), time.UTC)
			if tt.wantErr {
				assert.True(t, domain.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			tt.check(t, input.DueDate)
		})
	}
}

func TestBuildUpdateRoutineTaskInput(t *testing.T) {
	body := `{"priority":"low","duration":null}`
	var req dto.UpdateRoutineTaskRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	input := validation.BuildUpdateRoutineTaskInput(req, rawOf(t, body))

	assert.Equal(t, domain.SetTo(domain.PriorityLow), input.Priority)
	assert.True(t, input.Duration.IsCleared())
	assert.True(t, input.Title.IsUnchanged())
	assert.False(t, input.IsEmpty())
}
