package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	timeoffdomain "github.com/wellura/staff-scheduling-go/internal/domain/timeoff"
	"github.com/wellura/staff-scheduling-go/internal/handler/http/response"
	"github.com/wellura/staff-scheduling-go/internal/pkg/jwt"
	"github.com/wellura/staff-scheduling-go/internal/service/timeoff"
)

type TimeOffHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListForStaff(w http.ResponseWriter, r *http.Request)
	VacationBalance(w http.ResponseWriter, r *http.Request)
}

type timeOffHandlerImpl struct {
	timeOffService *timeoff.Service
}

func NewTimeOffHandler(timeOffService *timeoff.Service) TimeOffHandler {
	return &timeOffHandlerImpl{
		timeOffService: timeOffService,
	}
}

func (h *timeOffHandlerImpl) Request(w http.ResponseWriter, r *http.Request) {
	var req timeoffdomain.RequestTimeOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.RequestedBy = jwt.CallerID(r.Context())

	result, err := h.timeOffService.Request(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time-off request created successfully", timeoffdomain.ToResponse(result))
}

func (h *timeOffHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")

	var req timeoffdomain.ProcessTimeOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ProcessedBy = jwt.CallerID(r.Context())

	result, err := h.timeOffService.Process(r.Context(), requestID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time-off request processed successfully", timeoffdomain.ToResponse(result))
}

func (h *timeOffHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")

	result, err := h.timeOffService.GetByID(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timeoffdomain.ToResponse(result))
}

func (h *timeOffHandlerImpl) ListForStaff(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffID")

	results, err := h.timeOffService.ListByStaff(r.Context(), staffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]timeoffdomain.TimeOffResponse, 0, len(results))
	for _, req := range results {
		out = append(out, timeoffdomain.ToResponse(req))
	}
	response.Success(w, out)
}

func (h *timeOffHandlerImpl) VacationBalance(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffID")

	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = parsed
	}

	balance, err := h.timeOffService.Balance(r.Context(), staffID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timeoffdomain.VacationBalanceResponse{
		StaffID:     balance.StaffID,
		Year:        balance.Year,
		TotalDays:   balance.TotalDays,
		UsedDays:    balance.UsedDays,
		CarriedOver: balance.CarriedOver,
		Remaining:   balance.Remaining(),
	})
}
