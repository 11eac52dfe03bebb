package domain

import "time"

type CalendarQuery struct {
	Mode string
	// Reference carries the viewer's location.
	Reference time.Time
	// Step moves the reference by whole view units before rendering.
	Step int
	// Today replaces the reference with the start of the current day.
	Today bool
}

type CalendarDay struct {
	Date  time.Time
	Tasks []Task
}

type CalendarView struct {
	Mode      string
	Reference time.Time
	Days      []CalendarDay
}
