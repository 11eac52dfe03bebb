package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"eisenq/internal/adapter/http/dto"
	"eisenq/internal/core/calendar"
	"eisenq/internal/core/domain"
)

const (
	RuleFormat = "format"
	RuleType   = "type"
)

var registerOnce sync.Once

// UseJSONFieldNames makes validator report JSON names instead of Go field
// names.
func UseJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	})
}

// BindJSON binds and validates the body into req and also returns the raw
// object so callers can tell an absent field from an explicit null.
func BindJSON(c *gin.Context, req any) (map[string]json.RawMessage, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, domain.NewValidationError("body", RuleFormat)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, domain.NewValidationError("body", RuleFormat)
	}
	if err := binding.JSON.BindBody(body, req); err != nil {
		return nil, &domain.ValidationError{Fields: FieldErrors(err)}
	}
	return raw, nil
}

// FieldErrors flattens a binding error into field → rule.
func FieldErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(map[string]string, len(validationErrors))
		for _, fieldErr := range validationErrors {
			fields[fieldErr.Field()] = ruleOf(fieldErr.Tag())
		}
		return fields
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return map[string]string{typeErr.Field: RuleType}
	}
	return map[string]string{"body": RuleFormat}
}

func ruleOf(tag string) string {
	switch tag {
	case "required":
		return domain.RuleRequired
	case "max":
		return domain.RuleMax
	case "min", "gte", "lte":
		return domain.RuleRange
	case "oneof":
		return domain.RuleOneOf
	case "datetime", "uuid":
		return RuleFormat
	}
	return tag
}

func BuildCreateTaskInput(req dto.CreateTaskRequest, loc *time.Location) (domain.CreateTaskInput, error) {
	input := domain.CreateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Quadrant:      domain.Quadrant(req.Quadrant),
		Priority:      domain.Priority(req.Priority),
		Status:        domain.TaskStatus(req.Status),
		Duration:      req.Duration,
		ParentTaskID:  req.ParentTaskID,
		RoutineTaskID: req.RoutineTaskID,
	}

	switch {
	case req.DueDate != nil:
		due, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			return domain.CreateTaskInput{}, domain.NewValidationError("dueDate", RuleFormat)
		}
		input.DueDate = &due
	case req.DueDay != nil && strings.TrimSpace(*req.DueDay) != "":
		due := calendar.CombineLocal(*req.DueDay, deref(req.DueTime), loc, calendar.FallbackTaskHour)
		input.DueDate = &due
	}

	return input, nil
}

func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage, loc *time.Location) (domain.UpdateTaskInput, error) {
	input := domain.UpdateTaskInput{
		Title:       stringPatch[string](raw, "title", req.Title),
		Description: stringPatch[string](raw, "description", req.Description),
		Quadrant:    stringPatch[domain.Quadrant](raw, "quadrant", req.Quadrant),
		Priority:    stringPatch[domain.Priority](raw, "priority", req.Priority),
		Status:      stringPatch[domain.TaskStatus](raw, "status", req.Status),
		Duration:    patchOf(raw, "duration", req.Duration),
	}

	switch {
	case hasJSONField(raw, "dueDate"):
		if req.DueDate == nil {
			input.DueDate = domain.Cleared[time.Time]()
			break
		}
		due, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			return domain.UpdateTaskInput{}, domain.NewValidationError("dueDate", RuleFormat)
		}
		input.DueDate = domain.SetTo(due)
	case hasJSONField(raw, "dueDay"):
		if req.DueDay == nil || strings.TrimSpace(*req.DueDay) == "" {
			input.DueDate = domain.Cleared[time.Time]()
			break
		}
		input.DueDate = domain.SetTo(calendar.CombineLocal(*req.DueDay, deref(req.DueTime), loc, calendar.FallbackTaskHour))
	}

	return input, nil
}

func BuildCreateRoutineTaskInput(req dto.CreateRoutineTaskRequest) domain.CreateRoutineTaskInput {
	return domain.CreateRoutineTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Quadrant:    domain.Quadrant(req.Quadrant),
		Priority:    domain.Priority(req.Priority),
		Duration:    req.Duration,
	}
}

func BuildUpdateRoutineTaskInput(req dto.UpdateRoutineTaskRequest, raw map[string]json.RawMessage) domain.UpdateRoutineTaskInput {
	return domain.UpdateRoutineTaskInput{
		Title:       stringPatch[string](raw, "title", req.Title),
		Description: stringPatch[string](raw, "description", req.Description),
		Quadrant:    stringPatch[domain.Quadrant](raw, "quadrant", req.Quadrant),
		Priority:    stringPatch[domain.Priority](raw, "priority", req.Priority),
		Duration:    patchOf(raw, "duration", req.Duration),
	}
}

// patchOf maps an absent field to unchanged and an explicit null to
// cleared.
func patchOf[T any](raw map[string]json.RawMessage, field string, value *T) domain.Patch[T] {
	if !hasJSONField(raw, field) {
		return domain.Unchanged[T]()
	}
	if value == nil || isJSONNull(raw[field]) {
		return domain.Cleared[T]()
	}
	return domain.SetTo(*value)
}

func stringPatch[T ~string](raw map[string]json.RawMessage, field string, value *string) domain.Patch[T] {
	if value == nil {
		return patchOf[T](raw, field, nil)
	}
	converted := T(*value)
	return patchOf(raw, field, &converted)
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
