package handlers

import (
	"net/http"
	"strconv"
	"time"

	"shiffy/models"
	"shiffy/services/weekwindow"

	"github.com/gin-gonic/gin"
)

// WeekHandler exposes the week window calculator over HTTP.
type WeekHandler struct {
	Defaults weekwindow.Config
	Location *time.Location
	Now      func() time.Time
}

func NewWeekHandler(defaults weekwindow.Config, loc *time.Location) *WeekHandler {
	return &WeekHandler{Defaults: defaults, Location: loc, Now: time.Now}
}

// referenceDate reads ?date=, defaulting to today in loc.
func referenceDate(c *gin.Context, now func() time.Time, loc *time.Location) (time.Time, error) {
	if raw := c.Query("date"); raw != "" {
		return weekwindow.ParseISO(raw)
	}
	if loc == nil {
		loc = time.UTC
	}
	return weekwindow.CalendarDate(now().In(loc)), nil
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &weekwindow.ArgumentError{Field: key, Message: "must be an integer"}
	}
	return n, nil
}

// windowQuery overlays ?weeksBack= and ?weeksForward= on the defaults.
func windowQuery(c *gin.Context, defaults weekwindow.Config) (weekwindow.Config, error) {
	cfg := defaults
	var err error
	if cfg.WeeksBack, err = intQuery(c, "weeksBack", defaults.WeeksBack); err != nil {
		return cfg, err
	}
	if cfg.WeeksForward, err = intQuery(c, "weeksForward", defaults.WeeksForward); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (h *WeekHandler) startsOn(c *gin.Context) (weekwindow.WeekStartsOn, error) {
	if raw := c.Query("weekStartsOn"); raw != "" {
		return weekwindow.ParseWeekStartsOn(raw)
	}
	return h.Defaults.WeekStartsOn, nil
}

// GetWeekWindowHandler handles GET /api/weeks.
func (h *WeekHandler) GetWeekWindowHandler(c *gin.Context) {
	ref, err := referenceDate(c, h.Now, h.Location)
	if err != nil {
		respondError(c, "Invalid date", err)
		return
	}
	cfg, err := windowQuery(c, h.Defaults)
	if err != nil {
		respondError(c, "Invalid window", err)
		return
	}
	if cfg.WeekStartsOn, err = h.startsOn(c); err != nil {
		respondError(c, "Invalid window", err)
		return
	}

	weeks, err := weekwindow.WeeksToLoad(ref, cfg)
	if err != nil {
		respondError(c, "Invalid window", err)
		return
	}

	c.JSON(http.StatusOK, models.WeekWindowResponse{
		ReferenceDate: weekwindow.FormatISO(ref),
		WeekStartsOn:  cfg.WeekStartsOn.String(),
		Center:        weeks[cfg.WeeksBack],
		Weeks:         weeks,
	})
}

// GetWeekStartHandler handles GET /api/weeks/start.
func (h *WeekHandler) GetWeekStartHandler(c *gin.Context) {
	ref, err := referenceDate(c, h.Now, h.Location)
	if err != nil {
		respondError(c, "Invalid date", err)
		return
	}
	startsOn, err := h.startsOn(c)
	if err != nil {
		respondError(c, "Invalid week start", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         weekwindow.FormatISO(ref),
		"weekStartsOn": startsOn.String(),
		"week_start":   weekwindow.FormatISO(weekwindow.WeekStart(ref, startsOn)),
	})
}
