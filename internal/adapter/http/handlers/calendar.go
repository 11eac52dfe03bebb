package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"eisenq/internal/adapter/http/mapper"
	"eisenq/internal/adapter/http/middleware"
	"eisenq/internal/adapter/http/validation"
	"eisenq/internal/core/domain"
	"eisenq/internal/core/ports"
	"eisenq/pkg/apierrors"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	calendarService ports.CalendarService
	now             func() time.Time
}

func NewCalendarHandler(calendarService ports.CalendarService, opts ...Option) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService, now: applyOptions(opts).now}
}

// View renders ?view=day|week|month around ?date=YYYY-MM-DD in the viewer's
// timezone. Without a date the view is centred on today; step moves it by
// whole view units.
func (h *CalendarHandler) View(c *gin.Context) {
	calendarFailure := failure{
		invalidKey: apierrors.MsgInvalidCalendarQuery,
		failKey:    apierrors.MsgFailCalendar,
		logMessage: "failed to build calendar",
	}
	loc := middleware.GetLocation(c)

	query := domain.CalendarQuery{
		Mode:      c.Query("view"),
		Reference: h.now().In(loc),
		Today:     true,
	}

	if date := strings.TrimSpace(c.Query("date")); date != "" {
		reference, err := time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			writeError(c, domain.NewValidationError("date", validation.RuleFormat), calendarFailure)
			return
		}
		query.Reference = reference
		query.Today = false
	}

	if step := strings.TrimSpace(c.Query("step")); step != "" {
		n, err := strconv.Atoi(step)
		if err != nil {
			writeError(c, domain.NewValidationError("step", validation.RuleFormat), calendarFailure)
			return
		}
		query.Step = n
		if n != 0 {
			query.Today = false
		}
	}

	view, err := h.calendarService.View(c.Request.Context(), middleware.GetUserID(c), query)
	if err != nil {
		writeError(c, err, calendarFailure)
		return
	}

	c.JSON(http.StatusOK, mapper.ToCalendarResponse(view))
}
