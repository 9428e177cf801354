package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/alexanderramin/fluxion/internal/routine"
	"github.com/alexanderramin/fluxion/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	defaultSeriesDays = 7
	maxSeriesDays     = 366
)

type startRequest struct {
	BlockID       string          `json:"blockId"`
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Category      domain.Category `json:"category"`
	TargetMinutes int             `json:"targetMinutes"`
	ScheduledTime string          `json:"scheduledTime"`
}

type stopRequest struct {
	MarkCompleted bool `json:"markCompleted"`
}

type extendRequest struct {
	Minutes int `json:"minutes"`
}

type toggleRequest struct {
	BlockID string `json:"blockId" binding:"required"`
	Date    string `json:"date"`
}

// fail writes the error envelope with a status derived from err.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case service.IsNotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, routine.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, routine.ErrInvalidBlock):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   msg,
	})
}

func ok(c *gin.Context, key string, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		key:       data,
	})
}

func validDate(date string) bool {
	if date == "" {
		return true
	}
	_, err := domain.ParseDateIn(date, time.Local)
	return err == nil
}

func (s *Server) handleTimer(c *gin.Context) {
	ok(c, "timer", s.focus.Timer(c.Request.Context()))
}

func (s *Server) handleTimerStart(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	if req.BlockID != "" {
		snap, err := s.focus.StartRoutineTask(ctx, req.BlockID)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, "timer", snap)
		return
	}

	if req.ID == "" || req.Title == "" {
		badRequest(c, "id and title are required unless blockId is set")
		return
	}
	snap, err := s.focus.StartTask(ctx, domain.ActiveTask{
		ID:            req.ID,
		Title:         req.Title,
		Category:      req.Category,
		TargetMinutes: req.TargetMinutes,
		ScheduledTime: req.ScheduledTime,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "timer", snap)
}

func (s *Server) handleTimerPause(c *gin.Context) {
	snap, err := s.focus.PauseTask(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "timer", snap)
}

func (s *Server) handleTimerResume(c *gin.Context) {
	snap, err := s.focus.ResumeTask(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "timer", snap)
}

func (s *Server) handleTimerStop(c *gin.Context) {
	var req stopRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	res, err := s.focus.StopTask(c.Request.Context(), req.MarkCompleted)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "result", res)
}

func (s *Server) handleTimerExtend(c *gin.Context) {
	var req extendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Minutes <= 0 {
		badRequest(c, "minutes must be positive")
		return
	}
	snap, err := s.focus.ExtendTask(c.Request.Context(), req.Minutes)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "timer", snap)
}

func (s *Server) handleBlocks(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		blocks []*domain.RoutineBlock
		err    error
	)
	if dayParam := c.Query("day"); dayParam != "" {
		day, perr := routine.ParseWeekday(dayParam)
		if perr != nil {
			badRequest(c, perr.Error())
			return
		}
		blocks, err = s.routines.BlocksForDay(ctx, day)
	} else {
		blocks, err = s.routines.List(ctx)
	}
	if err != nil {
		fail(c, err)
		return
	}
	if blocks == nil {
		blocks = []*domain.RoutineBlock{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"blocks":  blocks,
		"count":   len(blocks),
	})
}

func (s *Server) handleBlockCreate(c *gin.Context) {
	var b domain.RoutineBlock
	if err := c.ShouldBindJSON(&b); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := s.routines.Add(c.Request.Context(), &b); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"block":   b,
	})
}

func (s *Server) handleBlockDelete(c *gin.Context) {
	if err := s.routines.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Block deleted",
	})
}

func (s *Server) handleTasks(c *gin.Context) {
	date := c.Query("date")
	if !validDate(date) {
		badRequest(c, "date must be YYYY-MM-DD")
		return
	}
	tasks, err := s.focus.TasksForDate(c.Request.Context(), date)
	if err != nil {
		fail(c, err)
		return
	}
	if tasks == nil {
		tasks = []domain.RoutineTask{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tasks":   tasks,
		"count":   len(tasks),
	})
}

func (s *Server) handleToggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !validDate(req.Date) {
		badRequest(c, "date must be YYYY-MM-DD")
		return
	}
	completed, err := s.focus.ToggleBlock(c.Request.Context(), req.BlockID, req.Date)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"blockId":   req.BlockID,
		"date":      req.Date,
		"completed": completed,
	})
}

func (s *Server) handleStreak(c *gin.Context) {
	sum, err := s.focus.Streak(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "streak", sum)
}

func (s *Server) handleDaily(c *gin.Context) {
	days := defaultSeriesDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSeriesDays {
			badRequest(c, "days must be between 1 and 366")
			return
		}
		days = n
	}
	series, err := s.stats.DailySeries(c.Request.Context(), days)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "days", series)
}

func (s *Server) handleCategories(c *gin.Context) {
	dist, err := s.stats.CategoryDistribution(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "categories", dist)
}

func (s *Server) handleTotals(c *gin.Context) {
	totals, err := s.stats.Totals(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "totals", totals)
}

func (s *Server) handleHeatmap(c *gin.Context) {
	var month time.Time
	if raw := c.Query("month"); raw != "" {
		m, err := time.ParseInLocation("2006-01", raw, time.Local)
		if err != nil {
			badRequest(c, "month must be YYYY-MM")
			return
		}
		month = m
	}
	cells, err := s.stats.MonthHeatmap(c.Request.Context(), month)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "days", cells)
}

func (s *Server) handleGoal(c *gin.Context) {
	goal, err := s.stats.GoalProgress(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "goal", goal)
}

func (s *Server) handleOverview(c *gin.Context) {
	ov, err := s.stats.Overview(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "overview", ov)
}
