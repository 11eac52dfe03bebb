package dto

type CalendarDayItem struct {
	Date  string     `json:"date"`
	Tasks []TaskItem `json:"tasks"`
}

type CalendarResponse struct {
	View     string            `json:"view"`
	Date     string            `json:"date"`
	Timezone string            `json:"timezone"`
	Days     []CalendarDayItem `json:"days"`
}

type ExportLinkResponse struct {
	Provider string `json:"provider"`
	URL      string `json:"url"`
}
