package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	dom "tasklist/internal/domain"
	"tasklist/internal/dto"
	"tasklist/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type TaskHandler struct {
	svc    *service.TaskService
	logger zerolog.Logger
	// deleteNoContent answers DELETE with 204 instead of echoing the removed task.
	deleteNoContent bool
}

func NewTaskHandler(svc *service.TaskService, logger zerolog.Logger, deleteNoContent bool) *TaskHandler {
	return &TaskHandler{svc: svc, logger: logger, deleteNoContent: deleteNoContent}
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, err)
		return
	}

	t, err := h.svc.Create(c.Request.Context(), service.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	h.logger.Debug().Int64("id", t.ID).Msg("created task")
	c.JSON(http.StatusCreated, taskToResponse(t, h.svc.Now()))
}

// List godoc
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Param        q         query     string  false  "Search title, description and tags"
// @Param        priority  query     string  false  "all, high, medium, low"
// @Param        status    query     string  false  "all, active, completed"
// @Param        sort      query     string  false  "created, due_date, priority, title"
// @Success      200       {array}   dto.TaskResponse
// @Failure      500       {object}  dto.ErrorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	f := dom.Filter{
		Query:    c.Query("q"),
		Priority: c.Query("priority"),
		Status:   c.Query("status"),
		Sort:     c.Query("sort"),
	}
	list, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tasksToResponses(list, h.svc.Now()))
}

// Overdue godoc
// @Summary      List overdue tasks
// @Tags         tasks
// @Produce      json
// @Success      200  {array}   dto.TaskResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /tasks/overdue [get]
func (h *TaskHandler) Overdue(c *gin.Context) {
	list, err := h.svc.Overdue(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tasksToResponses(list, h.svc.Now()))
}

// GetByID godoc
// @Summary      Get a task by ID
// @Tags         tasks
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t, h.svc.Now()))
}

// Update godoc
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Partial update"
// @Success      200   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	t, err := h.svc.Update(c.Request.Context(), id, service.Patch{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Tags:        req.Tags,
		Completed:   req.Completed,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t, h.svc.Now()))
}

// Toggle godoc
// @Summary      Flip a task's completed flag
// @Tags         tasks
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /tasks/{id}/toggle [put]
func (h *TaskHandler) Toggle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Toggle(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t, h.svc.Now()))
}

// UpdateNotes godoc
// @Summary      Replace a task's notes
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "Task ID"
// @Param        body  body      dto.UpdateNotesRequest  true  "Notes"
// @Success      200   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /tasks/{id}/notes [put]
func (h *TaskHandler) UpdateNotes(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateNotesRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	t, err := h.svc.UpdateNotes(c.Request.Context(), id, req.Notes)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t, h.svc.Now()))
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	h.logger.Debug().Int64("id", t.ID).Msg("deleted task")
	if h.deleteNoContent {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t, h.svc.Now()))
}

// Sync godoc
// @Summary      Replace the whole task list
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      []dto.TaskResponse  true  "Tasks"
// @Success      200   {array}   dto.TaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /tasks/sync [post]
func (h *TaskHandler) Sync(c *gin.Context) {
	var incoming []dom.Task
	if err := c.ShouldBindJSON(&incoming); err != nil {
		badRequest(c, err)
		return
	}
	list, err := h.svc.Replace(c.Request.Context(), incoming)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	h.logger.Info().Int("count", len(list)).Msg("replaced task list")
	c.JSON(http.StatusOK, tasksToResponses(list, h.svc.Now()))
}

// Stats godoc
// @Summary      Aggregate task statistics
// @Tags         stats
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /stats [get]
func (h *TaskHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// bindOptionalJSON decodes the body into dst; an empty body leaves dst zero.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func taskToResponse(t dom.Task, now time.Time) dto.TaskResponse {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Tags:        tags,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Countdown:   dom.Countdown(t.DueDate, now),
	}
}

func tasksToResponses(list []dom.Task, now time.Time) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(list))
	for i := range list {
		out[i] = taskToResponse(list[i], now)
	}
	return out
}
