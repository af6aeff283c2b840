package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasknest-backend/internal/service"
	"github.com/BuzzLyutic/tasknest-backend/pkg/respond"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

type assignTaskRequest struct {
	UserID      string `json:"userId"`
	TaskID      string `json:"taskId"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type approveTaskRequest struct {
	TaskID  string `json:"taskId"`
	Approve *bool  `json:"approve"`
}

func (h *TaskHandler) AssignTask(w http.ResponseWriter, r *http.Request) {
	var req assignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	err := h.service.Assign(r.Context(), service.AssignRequest{
		UserID:      req.UserID,
		TaskID:      req.TaskID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *TaskHandler) ApproveTask(w http.ResponseWriter, r *http.Request) {
	var req approveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	status, err := h.service.Approve(r.Context(), service.ApproveRequest{
		TaskID:  req.TaskID,
		Approve: req.Approve,
	})
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, map[string]interface{}{"success": true, "status": status})
}

func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "TaskNest Backend is running!")
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrAssignFields),
		errors.Is(err, service.ErrApproveFields),
		errors.Is(err, service.ErrMissingAssignee):
		respond.Error(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrUserNotFound):
		respond.Error(w, r, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, err.Error())
	}
}
