package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	scheduledomain "github.com/wellura/staff-scheduling-go/internal/domain/schedule"
	"github.com/wellura/staff-scheduling-go/internal/handler/http/response"
	"github.com/wellura/staff-scheduling-go/internal/pkg/jwt"
	"github.com/wellura/staff-scheduling-go/internal/pkg/validator"
	"github.com/wellura/staff-scheduling-go/internal/service/schedule"
)

type ScheduleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListForStaff(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService *schedule.Service
}

func NewScheduleHandler(scheduleService *schedule.Service) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

func (h *scheduleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req scheduledomain.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.CreatedBy = jwt.CallerID(r.Context())

	result, err := h.scheduleService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedule created successfully", scheduledomain.ToResponse(result))
}

func (h *scheduleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "scheduleID")

	result, err := h.scheduleService.GetByID(r.Context(), scheduleID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, scheduledomain.ToResponse(result))
}

func (h *scheduleHandlerImpl) ListForStaff(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffID")

	from := time.Now().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 30)
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, ok := validator.IsValidDateTime(raw)
		if !ok {
			response.BadRequest(w, "from must be an ISO8601 timestamp", nil)
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, ok := validator.IsValidDateTime(raw)
		if !ok {
			response.BadRequest(w, "to must be an ISO8601 timestamp", nil)
			return
		}
		to = parsed
	}

	results, err := h.scheduleService.ListByStaffInRange(r.Context(), staffID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]scheduledomain.ScheduleResponse, 0, len(results))
	for _, s := range results {
		out = append(out, scheduledomain.ToResponse(s))
	}
	response.Success(w, out)
}

func (h *scheduleHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "scheduleID")

	var req scheduledomain.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	req.UpdatedBy = jwt.CallerID(r.Context())

	result, err := h.scheduleService.Transition(r.Context(), scheduleID, scheduledomain.Status(req.Status), req.UpdatedBy)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule status updated successfully", scheduledomain.ToResponse(result))
}

func (h *scheduleHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "scheduleID")

	var upTo *time.Time
	if raw := r.URL.Query().Get("until"); raw != "" {
		parsed, ok := validator.IsValidDate(raw)
		if !ok {
			response.BadRequest(w, "until must be a YYYY-MM-DD date", nil)
			return
		}
		// Cover the whole final day.
		end := parsed.AddDate(0, 0, 1)
		upTo = &end
	}

	results, err := h.scheduleService.Materialize(r.Context(), scheduleID, upTo)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, scheduledomain.ToGenerationResponse(results))
}
