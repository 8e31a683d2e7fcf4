package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	swapdomain "github.com/wellura/staff-scheduling-go/internal/domain/swap"
	"github.com/wellura/staff-scheduling-go/internal/handler/http/response"
	"github.com/wellura/staff-scheduling-go/internal/pkg/jwt"
	"github.com/wellura/staff-scheduling-go/internal/service/swap"
)

type SwapHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListForStaff(w http.ResponseWriter, r *http.Request)
}

type swapHandlerImpl struct {
	swapService *swap.Service
}

func NewSwapHandler(swapService *swap.Service) SwapHandler {
	return &swapHandlerImpl{
		swapService: swapService,
	}
}

func (h *swapHandlerImpl) Request(w http.ResponseWriter, r *http.Request) {
	var req swapdomain.RequestSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.RequestedBy = jwt.CallerID(r.Context())

	result, err := h.swapService.Request(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Swap request created successfully", swapdomain.ToResponse(result))
}

func (h *swapHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")

	var req swapdomain.ProcessSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ProcessedBy = jwt.CallerID(r.Context())

	result, err := h.swapService.Process(r.Context(), requestID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Swap request processed successfully", swapdomain.ToResponse(result))
}

func (h *swapHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")

	result, err := h.swapService.GetByID(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, swapdomain.ToResponse(result))
}

func (h *swapHandlerImpl) ListForStaff(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffID")

	results, err := h.swapService.ListByStaff(r.Context(), staffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]swapdomain.SwapRequestResponse, 0, len(results))
	for _, req := range results {
		out = append(out, swapdomain.ToResponse(req))
	}
	response.Success(w, out)
}
