package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pointagehq/attendance-backend-go/internal/domain/stats"
	"github.com/pointagehq/attendance-backend-go/internal/handler/http/response"
	"github.com/pointagehq/attendance-backend-go/internal/pkg/validator"
)

type StatsHandler interface {
	GetUserStatistics(w http.ResponseWriter, r *http.Request)
	GetTeamStatistics(w http.ResponseWriter, r *http.Request)
	GetAdminStatistics(w http.ResponseWriter, r *http.Request)
}

type statsHandlerImpl struct {
	statsService stats.StatisticsService
}

func NewStatsHandler(statsService stats.StatisticsService) StatsHandler {
	return &statsHandlerImpl{
		statsService: statsService,
	}
}

// GetUserStatistics implements StatsHandler.
func (h *statsHandlerImpl) GetUserStatistics(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	rng, err := dateRangeFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.statsService.GetUserStatistics(r.Context(), userID, rng)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTeamStatistics implements StatsHandler.
func (h *statsHandlerImpl) GetTeamStatistics(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid team id", nil)
		return
	}

	rng, err := dateRangeFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.statsService.GetTeamStatistics(r.Context(), teamID, rng)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetAdminStatistics implements StatsHandler.
func (h *statsHandlerImpl) GetAdminStatistics(w http.ResponseWriter, r *http.Request) {
	result, err := h.statsService.GetAdminStatistics(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// dateRangeFromQuery validates start_date/end_date query parameters before
// the core is called. Absent parameters leave the range unbounded.
func dateRangeFromQuery(r *http.Request) (stats.DateRange, error) {
	var errs validator.ValidationErrors
	var start, end time.Time

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, ok := validator.IsValidDate(raw)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
		}
		start = parsed
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		parsed, ok := validator.IsValidDate(raw)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		}
		end = parsed
	}
	if len(errs) > 0 {
		return stats.DateRange{}, errs
	}

	return stats.NewDateRange(start, end)
}
