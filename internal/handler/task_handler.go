package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"roseboard/backend/internal/model"
	"roseboard/backend/internal/service"
)

const streamKeepAlive = 25 * time.Second

type TaskHandler struct {
	taskService *service.TaskService
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	DueDate     *string `json:"dueDate"`
	IsRecurring *bool   `json:"isRecurring"`
	Notes       *string `json:"notes"`
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	tasks, apiErr := h.taskService.List(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req createTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, apiErr := h.taskService.Create(c.Request.Context(), userID, service.CreateTaskInput{
		Title:       req.Title,
		DueDate:     req.DueDate,
		IsRecurring: req.IsRecurring,
		Notes:       req.Notes,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var patch model.TaskPatch
	if !bindJSON(c, &patch) {
		return
	}

	task, apiErr := h.taskService.Update(c.Request.Context(), userID, c.Param("id"), patch)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if apiErr := h.taskService.Delete(c.Request.Context(), userID, c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stream sends the task list as server-sent events: the current list first,
// then the whole list again after every change.
func (h *TaskHandler) Stream(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	watch, apiErr := h.taskService.Watch(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	defer watch.Cancel()

	keepAlive := time.NewTicker(streamKeepAlive)
	defer keepAlive.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("tasks", watch.Snapshot)
	c.Writer.Flush()

	done := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-done:
			return false
		case tasks, open := <-watch.Updates:
			if !open {
				return false
			}
			c.SSEvent("tasks", tasks)
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", time.Now().UTC().Unix())
			return true
		}
	})
}
