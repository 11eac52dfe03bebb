package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	RuleRequired = "required"
	RuleMax      = "max"
	RuleRange    = "range"
	RuleOneOf    = "oneof"
)

// Validate checks a create payload. Titles are judged after trimming.
func (in CreateTaskInput) Validate() error {
	verr := &ValidationError{}
	validateTitle(verr, in.Title)
	validateDescription(verr, in.Description)
	if in.Quadrant == "" {
		verr.Add("quadrant", RuleRequired)
	} else if !in.Quadrant.IsValid() {
		verr.Add("quadrant", RuleOneOf)
	}
	if in.Priority == "" {
		verr.Add("priority", RuleRequired)
	} else if !in.Priority.IsValid() {
		verr.Add("priority", RuleOneOf)
	}
	if in.Status != "" && !in.Status.IsValid() {
		verr.Add("status", RuleOneOf)
	}
	validateDuration(verr, in.Duration)
	if in.ParentTaskID != nil && strings.TrimSpace(*in.ParentTaskID) == "" {
		verr.Add("parentTaskId", RuleRequired)
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func (in UpdateTaskInput) Validate() error {
	verr := &ValidationError{}
	if in.Title.IsCleared() {
		verr.Add("title", RuleRequired)
	} else if title, ok := in.Title.Value(); ok {
		validateTitle(verr, title)
	}
	validateDescription(verr, in.Description.Ptr())
	if in.Quadrant.IsCleared() {
		verr.Add("quadrant", RuleRequired)
	} else if q, ok := in.Quadrant.Value(); ok && !q.IsValid() {
		verr.Add("quadrant", RuleOneOf)
	}
	if in.Priority.IsCleared() {
		verr.Add("priority", RuleRequired)
	} else if p, ok := in.Priority.Value(); ok && !p.IsValid() {
		verr.Add("priority", RuleOneOf)
	}
	if in.Status.IsCleared() {
		verr.Add("status", RuleRequired)
	} else if s, ok := in.Status.Value(); ok && !s.IsValid() {
		verr.Add("status", RuleOneOf)
	}
	validateDuration(verr, in.Duration.Ptr())
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func (in CreateRoutineTaskInput) Validate() error {
	verr := &ValidationError{}
	validateTitle(verr, in.Title)
	validateDescription(verr, in.Description)
	if in.Quadrant == "" {
		verr.Add("quadrant", RuleRequired)
	} else if !in.Quadrant.IsValid() {
		verr.Add("quadrant", RuleOneOf)
	}
	if in.Priority == "" {
		verr.Add("priority", RuleRequired)
	} else if !in.Priority.IsValid() {
		verr.Add("priority", RuleOneOf)
	}
	validateDuration(verr, in.Duration)
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func (in UpdateRoutineTaskInput) Validate() error {
	verr := &ValidationError{}
	if in.Title.IsCleared() {
		verr.Add("title", RuleRequired)
	} else if title, ok := in.Title.Value(); ok {
		validateTitle(verr, title)
	}
	validateDescription(verr, in.Description.Ptr())
	if in.Quadrant.IsCleared() {
		verr.Add("quadrant", RuleRequired)
	} else if q, ok := in.Quadrant.Value(); ok && !q.IsValid() {
		verr.Add("quadrant", RuleOneOf)
	}
	if in.Priority.IsCleared() {
		verr.Add("priority", RuleRequired)
	} else if p, ok := in.Priority.Value(); ok && !p.IsValid() {
		verr.Add("priority", RuleOneOf)
	}
	validateDuration(verr, in.Duration.Ptr())
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func validateTitle(verr *ValidationError, title string) {
	value := strings.TrimSpace(title)
	if value == "" {
		verr.Add("title", RuleRequired)
		return
	}
	if utf8.RuneCountInString(value) > TitleMaxLength {
		verr.Add("title", RuleMax)
	}
}

func validateDescription(verr *ValidationError, description *string) {
	if description != nil && utf8.RuneCountInString(*description) > DescriptionMaxLength {
		verr.Add("description", RuleMax)
	}
}

func validateDuration(verr *ValidationError, duration *int) {
	if duration != nil && (*duration < DurationMinMinutes || *duration > DurationMaxMinutes) {
		verr.Add("duration", RuleRange)
	}
}
