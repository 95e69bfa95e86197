package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/learnpath/internal/curriculum"
	"github.com/abhisek/learnpath/internal/knowledge"
	"github.com/abhisek/learnpath/internal/store"
)

type createPathRequest struct {
	UserID     string                `json:"user_id" binding:"required"`
	Assessment curriculum.Assessment `json:"assessment"`
	Goals      []string              `json:"goals"`
}

type createPathResponse struct {
	Path    *curriculum.LearningPath `json:"path"`
	Outcome string                   `json:"outcome"`
	EventID int                      `json:"event_id,omitempty"`
}

// POST /v1/paths
func (s *Server) createPath(c *gin.Context) {
	var req createPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	ctx := c.Request.Context()
	path, err := s.builder.CreateLearningPath(ctx, req.UserID, req.Assessment, req.Goals)
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusBadGateway, "knowledge_source_failed", err)
		return
	}

	resp := createPathResponse{Path: path, Outcome: curriculum.OutcomeCreated}
	status := http.StatusCreated
	if path == nil {
		resp.Outcome = curriculum.OutcomeNothingToLearn
		status = http.StatusOK
	}

	if s.paths != nil {
		goal := ""
		if path != nil {
			goal = path.Goal
		} else if len(req.Goals) > 0 {
			goal = req.Goals[0]
		}
		id, err := s.paths.RecordPath(ctx, req.UserID, goal, path)
		if err != nil {
			// The path is still returned; only the audit entry is lost.
			s.log.Warn("failed to record path", "user_id", req.UserID, "error", err)
		} else {
			resp.EventID = id
		}
	}

	c.JSON(status, resp)
}

type pathEventResponse struct {
	ID         int                      `json:"id"`
	Sequence   int64                    `json:"sequence"`
	Timestamp  time.Time                `json:"timestamp"`
	UserID     string                   `json:"user_id"`
	Goal       string                   `json:"goal"`
	Outcome    string                   `json:"outcome"`
	ModuleIDs  []string                 `json:"module_ids"`
	TotalHours float64                  `json:"total_hours"`
	Path       *curriculum.LearningPath `json:"path,omitempty"`
}

func toPathEventResponse(ev store.PathEvent, withPath bool) pathEventResponse {
	out := pathEventResponse{
		ID:         ev.ID,
		Sequence:   ev.Sequence,
		Timestamp:  ev.Timestamp,
		UserID:     ev.UserID,
		Goal:       ev.Goal,
		Outcome:    ev.Outcome,
		ModuleIDs:  ev.ModuleIDs,
		TotalHours: ev.TotalHours,
	}
	if withPath {
		out.Path = ev.Path
	}
	return out
}

// GET /v1/paths?user_id=&limit=
func (s *Server) listPaths(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(c, http.StatusBadRequest, "invalid_limit", errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}

	events, err := s.paths.QueryPaths(c.Request.Context(), store.QueryOpts{UserID: c.Query("user_id"), Limit: limit})
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "store_failed", err)
		return
	}

	out := make([]pathEventResponse, len(events))
	for i, ev := range events {
		out[i] = toPathEventResponse(ev, false)
	}
	c.JSON(http.StatusOK, gin.H{"paths": out})
}

// GET /v1/paths/:id
func (s *Server) getPath(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid path event id"))
		return
	}

	ev, err := s.paths.GetPath(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "store_failed", err)
		return
	}
	if ev == nil {
		respondError(c, http.StatusNotFound, "not_found", errors.New("path event not found"))
		return
	}
	c.JSON(http.StatusOK, toPathEventResponse(*ev, true))
}

// GET /v1/modules
func (s *Server) listModules(c *gin.Context) {
	lister, ok := s.source.(knowledge.Lister)
	if !ok {
		respondError(c, http.StatusNotImplemented, "not_listable", knowledge.ErrNotListable)
		return
	}
	modules, err := lister.AllModules(c.Request.Context())
	if err != nil {
		if errors.Is(err, knowledge.ErrNotListable) {
			respondError(c, http.StatusNotImplemented, "not_listable", err)
			return
		}
		_ = c.Error(err)
		respondError(c, http.StatusBadGateway, "knowledge_source_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modules": modules})
}

// GET /v1/modules/:id
func (s *Server) getModule(c *gin.Context) {
	m, ok, err := s.source.ModuleDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusBadGateway, "knowledge_source_failed", err)
		return
	}
	if !ok {
		respondError(c, http.StatusNotFound, "not_found", errors.New("module not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"module": m})
}

func healthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
