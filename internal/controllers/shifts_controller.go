package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/brigadly/backend/internal/dtos"
	"github.com/brigadly/backend/internal/services"
	"github.com/brigadly/backend/internal/utils"
)

// ShiftsController serves the worker-facing shift feed.
type ShiftsController struct {
	feed *services.ShiftFeedService
}

func NewShiftsController(feed *services.ShiftFeedService) *ShiftsController {
	return &ShiftsController{feed: feed}
}

// ----------------------------------------------------------------
// GET /api/v1/shifts/feed
// ----------------------------------------------------------------
func (c *ShiftsController) FeedHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := contextUserID(w, r)
	if !ok {
		return
	}

	q := parseFeedQuery(r)
	resp, err := c.feed.ListOpenShifts(r.Context(), workerID, q)
	if err != nil {
		respondServiceError(w, err, "Failed to list open shifts")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/shifts/{shiftID}
// ----------------------------------------------------------------
func (c *ShiftsController) DetailHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	shiftID, ok := pathUUID(w, mux.Vars(r), "shiftID")
	if !ok {
		return
	}

	detail, err := c.feed.GetShiftDetail(r.Context(), workerID, shiftID)
	if err != nil {
		respondServiceError(w, err, "Shift is not available to you")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, detail)
}

func parseFeedQuery(r *http.Request) dtos.FeedQuery {
	var q dtos.FeedQuery
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		q.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 {
		q.PageSize = v
	}
	return q
}
