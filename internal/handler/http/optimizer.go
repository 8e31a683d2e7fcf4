package http

import (
	"encoding/json"
	"net/http"

	scheduledomain "github.com/wellura/staff-scheduling-go/internal/domain/schedule"
	"github.com/wellura/staff-scheduling-go/internal/handler/http/response"
	"github.com/wellura/staff-scheduling-go/internal/pkg/jwt"
	"github.com/wellura/staff-scheduling-go/internal/service/optimizer"
)

type OptimizerHandler interface {
	OptimizeAssignments(w http.ResponseWriter, r *http.Request)
}

type optimizerHandlerImpl struct {
	optimizerService *optimizer.Service
}

func NewOptimizerHandler(optimizerService *optimizer.Service) OptimizerHandler {
	return &optimizerHandlerImpl{
		optimizerService: optimizerService,
	}
}

type optimizeAssignmentsBody struct {
	optimizer.OptimizeAssignmentsRequest
	// Commit writes accepted assignments as schedules in the same call.
	Commit bool `json:"commit,omitempty"`
}

type commitResultResponse struct {
	Assignment optimizer.Assignment             `json:"assignment"`
	Success    bool                             `json:"success"`
	Schedule   *scheduledomain.ScheduleResponse `json:"schedule,omitempty"`
	Error      string                           `json:"error,omitempty"`
}

type optimizeAssignmentsResponse struct {
	optimizer.OptimizeResult
	CommitResults []commitResultResponse `json:"commit_results,omitempty"`
}

func (h *optimizerHandlerImpl) OptimizeAssignments(w http.ResponseWriter, r *http.Request) {
	var body optimizeAssignmentsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.optimizerService.OptimizeAssignments(r.Context(), body.OptimizeAssignmentsRequest)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := optimizeAssignmentsResponse{OptimizeResult: result}
	if body.Commit {
		commits := h.optimizerService.CommitAssignments(
			r.Context(), body.Shifts, result.Assignments, jwt.CallerID(r.Context()))
		for _, c := range commits {
			item := commitResultResponse{
				Assignment: c.Assignment,
				Success:    c.Err == nil,
			}
			if c.Schedule != nil {
				resp := scheduledomain.ToResponse(*c.Schedule)
				item.Schedule = &resp
			}
			if c.Err != nil {
				item.Error = c.Err.Error()
			}
			out.CommitResults = append(out.CommitResults, item)
		}
	}

	response.Success(w, out)
}
