package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// RevalidateRequest is the request body for POST /revalidate.
type RevalidateRequest struct {
	Path string `json:"path"`
}

// RevalidateResponse is the response body for POST /revalidate (200).
type RevalidateResponse struct {
	Revalidated bool   `json:"revalidated"`
	Path        string `json:"path"`
	Now         int64  `json:"now"`
}

type RevalidateController struct {
	Logger  *slog.Logger
	Service domain.EventService
	now     func() time.Time
}

func NewRevalidateController(logger *slog.Logger, svc domain.EventService) *RevalidateController {
	return &RevalidateController{Logger: logger, Service: svc, now: time.Now}
}

// Revalidate godoc
// @Summary Refresh the cached event listing
// @Description Drops the cached public event listing so the next GET /events reads the store. Requires a bearer token when a revalidation secret is configured.
// @Tags cache
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RevalidateRequest false "Path to refresh (default /)"
// @Success 200 {object} controllers.RevalidateResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /revalidate [post]
func (c *RevalidateController) Revalidate(w http.ResponseWriter, r *http.Request) {
	var req RevalidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Path == "" {
		req.Path = "/"
	}
	if err := c.Service.RevalidateListing(r.Context()); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Revalidation failed", err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, RevalidateResponse{Revalidated: true, Path: req.Path, Now: c.now().UnixMilli()})
}
