// Package calexport renders a dated task as a calendar event: an ICS file or
// an "add event" link for a hosted calendar provider.
package calexport

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"eisenq/internal/core/domain"
)

type Provider string

const (
	ProviderGoogle    Provider = "google"
	ProviderOutlook   Provider = "outlook"
	ProviderOffice365 Provider = "office365"
	ProviderYahoo     Provider = "yahoo"
	ProviderICS       Provider = "ics"
)

// DefaultDuration is the event length for tasks without a duration.
const DefaultDuration = 30 * time.Minute

const productID = "-//eisenq//Task Manager//EN"

const (
	googleLayout  = "20060102T150405Z"
	yahooLayout   = "20060102T150405"
	outlookLayout = "2006-01-02T15:04:05.000Z"
)

var fileNameUnsafe = regexp.MustCompile(`[^a-zA-Z0-9]`)

func ParseProvider(value string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(value))); p {
	case ProviderGoogle, ProviderOutlook, ProviderOffice365, ProviderYahoo, ProviderICS:
		return p, nil
	case "":
		return ProviderICS, nil
	}
	return "", domain.NewValidationError("provider", domain.RuleOneOf)
}

type Event struct {
	UID         string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

// EventFromTask builds the event for a task. Tasks without a due date
// cannot be exported.
func EventFromTask(task domain.Task) (Event, error) {
	if task.DueDate == nil {
		return Event{}, domain.NewValidationError("dueDate", domain.RuleRequired)
	}

	length := DefaultDuration
	if task.Duration != nil && *task.Duration > 0 {
		length = time.Duration(*task.Duration) * time.Minute
	}

	event := Event{
		UID:   task.ID + "@eisenq",
		Title: task.Title,
		Start: task.DueDate.UTC(),
		End:   task.DueDate.UTC().Add(length),
	}
	if task.Description != nil {
		event.Description = *task.Description
	}
	return event, nil
}

// URL returns the provider's compose link for the event.
func URL(provider Provider, event Event) (string, error) {
	switch provider {
	case ProviderGoogle:
		return googleURL(event), nil
	case ProviderOutlook:
		return outlookURL("https://outlook.live.com/calendar/0/deeplink/compose", event), nil
	case ProviderOffice365:
		return outlookURL("https://outlook.office.com/calendar/0/deeplink/compose", event), nil
	case ProviderYahoo:
		return yahooURL(event), nil
	}
	return "", fmt.Errorf("provider %q has no compose link", provider)
}

func googleURL(event Event) string {
	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", event.Title)
	params.Set("dates", event.Start.UTC().Format(googleLayout)+"/"+event.End.UTC().Format(googleLayout))
	params.Set("details", event.Description)
	params.Set("location", "")
	return "https://calendar.google.com/calendar/render?" + params.Encode()
}

func outlookURL(base string, event Event) string {
	params := url.Values{}
	params.Set("path", "/calendar/action/compose")
	params.Set("rru", "addevent")
	params.Set("subject", event.Title)
	params.Set("startdt", event.Start.UTC().Format(outlookLayout))
	params.Set("enddt", event.End.UTC().Format(outlookLayout))
	params.Set("body", event.Description)
	params.Set("location", "")
	return base + "?" + params.Encode()
}

func yahooURL(event Event) string {
	minutes := int(event.End.Sub(event.Start).Round(time.Minute) / time.Minute)

	params := url.Values{}
	params.Set("v", "60")
	params.Set("title", event.Title)
	params.Set("st", event.Start.UTC().Format(yahooLayout))
	params.Set("dur", fmt.Sprintf("%02d%02d", minutes/60, minutes%60))
	params.Set("desc", event.Description)
	params.Set("in_loc", "")
	return "https://calendar.yahoo.com/?" + params.Encode()
}

// ICS serializes the event as a single-event VCALENDAR.
func ICS(event Event, stamp time.Time) string {
	cal := ics.NewCalendar()
	cal.SetProductId(productID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)

	vevent := cal.AddEvent(event.UID)
	vevent.SetDtStampTime(stamp.UTC())
	vevent.SetStartAt(event.Start.UTC())
	vevent.SetEndAt(event.End.UTC())
	vevent.SetSummary(event.Title)
	if event.Description != "" {
		vevent.SetDescription(event.Description)
	}
	return cal.Serialize()
}

// FileName derives a download name from the event title.
func FileName(event Event) string {
	name := fileNameUnsafe.ReplaceAllString(event.Title, "_")
	if name == "" {
		name = "task"
	}
	return name + ".ics"
}
