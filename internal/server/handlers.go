package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/riskreg/riskreg/internal/export"
	"github.com/riskreg/riskreg/internal/matrix"
	"github.com/riskreg/riskreg/internal/register"
	"github.com/riskreg/riskreg/internal/risk"
	"github.com/riskreg/riskreg/internal/store"
	"github.com/riskreg/riskreg/internal/summary"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

type cellResponse struct {
	Likelihood int        `json:"likelihood"`
	Impact     int        `json:"impact"`
	Score      int        `json:"score"`
	Level      risk.Level `json:"level"`
	Count      int        `json:"count"`
	Members    []string   `json:"members"`
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err, "request_id", c.GetString("request_id"))
	}
	c.AbortWithStatusJSON(status, errorResponse{Detail: err.Error()})
}

// healthCheck reports whether the store is reachable.
func (s *Server) healthCheck(c *gin.Context) {
	health := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   s.opts.Version,
	}
	if err := s.store.Ping(c.Request.Context()); err != nil {
		health["status"] = "unhealthy"
		health["store_error"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	c.JSON(http.StatusOK, health)
}

// assessRisk stores a new assessment and returns the stamped record.
func (s *Server) assessRisk(c *gin.Context) {
	var in risk.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		s.fail(c, http.StatusUnprocessableEntity, fmt.Errorf("invalid request body: %w", err))
		return
	}

	record, err := s.store.Create(c.Request.Context(), in)
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		s.fail(c, http.StatusUnprocessableEntity, err)
		return
	}
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	if s.metrics != nil {
		s.metrics.ObserveAssessment(record.Level)
	}
	s.logger.Info("risk assessed", "id", record.ID, "asset", record.Asset, "score", record.Score, "level", record.Level)
	c.JSON(http.StatusOK, record)
}

// loadRecords reads the register, re-stamps every record and applies the level query parameter.
func (s *Server) loadRecords(c *gin.Context) ([]risk.Record, bool) {
	filter, err := register.ParseFilter(c.Query("level"))
	if err != nil {
		s.fail(c, http.StatusUnprocessableEntity, err)
		return nil, false
	}
	// filter after re-stamping; a stored level may be stale
	records, err := s.store.List(c.Request.Context(), register.FilterAll)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return nil, false
	}
	return register.Select(risk.StampAll(records), filter), true
}

// listRisks returns the register in insertion order, optionally filtered by level.
func (s *Server) listRisks(c *gin.Context) {
	records, ok := s.loadRecords(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) getSummary(c *gin.Context) {
	records, ok := s.loadRecords(c)
	if !ok {
		return
	}
	sum := summary.Summarize(records)
	if s.metrics != nil && c.Query("level") == "" {
		s.metrics.ObserveSummary(sum)
	}
	c.JSON(http.StatusOK, sum)
}

func (s *Server) getMatrix(c *gin.Context) {
	records, ok := s.loadRecords(c)
	if !ok {
		return
	}
	m := matrix.Build(records)
	cells := make([]cellResponse, 0, len(m))
	for _, cell := range m.Cells() {
		cells = append(cells, cellResponse{
			Likelihood: cell.Likelihood,
			Impact:     cell.Impact,
			Score:      cell.Score,
			Level:      cell.Level,
			Count:      cell.Count(),
			Members:    cell.Members,
		})
	}
	c.JSON(http.StatusOK, cells)
}

// parseView reads sort, dir and level query parameters on top of the default view.
func parseView(c *gin.Context) (register.View, error) {
	view := register.DefaultView()
	if raw := c.Query("sort"); raw != "" {
		key, err := register.ParseField(raw)
		if err != nil {
			return view, err
		}
		view.Key = key
	}
	if raw := c.Query("dir"); raw != "" {
		dir, err := register.ParseDirection(raw)
		if err != nil {
			return view, err
		}
		view.Dir = dir
	}
	filter, err := register.ParseFilter(c.Query("level"))
	if err != nil {
		return view, err
	}
	view.Filter = filter
	return view, nil
}

// exportRisks serves the projected register as a downloadable file.
func (s *Server) exportRisks(c *gin.Context) {
	view, err := parseView(c)
	if err != nil {
		s.fail(c, http.StatusUnprocessableEntity, err)
		return
	}
	format := export.FormatCSV
	if raw := c.Query("format"); raw != "" {
		if format, err = export.ParseFormat(raw); err != nil {
			s.fail(c, http.StatusUnprocessableEntity, err)
			return
		}
	}

	records, err := s.store.List(c.Request.Context(), register.FilterAll)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	projected := register.Project(risk.StampAll(records), view)

	data, err := export.Render(format, projected, s.opts.Version)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName()))
	c.Data(http.StatusOK, format.ContentType(), data)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", c.Param("id"))
	}
	return id, nil
}

// getRisk returns one re-stamped record.
func (s *Server) getRisk(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, http.StatusUnprocessableEntity, err)
		return
	}
	record, err := s.store.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.fail(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, record.Stamp())
}

func (s *Server) deleteRisk(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, http.StatusUnprocessableEntity, err)
		return
	}
	err = s.store.Delete(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.fail(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info("risk deleted", "id", id)
	c.Status(http.StatusNoContent)
}
