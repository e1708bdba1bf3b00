package handlers

import (
	"net/http"

	"hoardify/models"
	"hoardify/services/worker"

	"github.com/gin-gonic/gin"
)

// WorkerHandler serves the workers screen.
type WorkerHandler struct {
	Workers worker.WorkerService
}

func NewWorkerHandler(ws worker.WorkerService) *WorkerHandler {
	return &WorkerHandler{Workers: ws}
}

func (h *WorkerHandler) ListWorkersHandler(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	list, err := h.Workers.ListWorkers(c.Request.Context(), c.Query("search"), activeOnly)
	if err != nil {
		respondError(c, "Failed to fetch workers", err)
		return
	}
	respondPage(c, list)
}

func (h *WorkerHandler) GetWorkerHandler(c *gin.Context) {
	w, err := h.Workers.GetWorker(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to fetch worker", err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WorkerHandler) CreateWorkerHandler(c *gin.Context) {
	var in models.WorkerInput
	if !bindJSON(c, &in) {
		return
	}
	w, err := h.Workers.CreateWorker(c.Request.Context(), adminID(c), in)
	if err != nil {
		respondError(c, "Failed to create worker", err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *WorkerHandler) UpdateWorkerHandler(c *gin.Context) {
	var in models.WorkerInput
	if !bindJSON(c, &in) {
		return
	}
	w, err := h.Workers.UpdateWorker(c.Request.Context(), adminID(c), c.Param("id"), in)
	if err != nil {
		respondError(c, "Failed to update worker", err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// SetActiveHandler handles PUT /api/admin/workers/:id/active.
func (h *WorkerHandler) SetActiveHandler(c *gin.Context) {
	var req struct {
		Active bool `json:"active"`
	}
	if !bindJSON(c, &req) {
		return
	}
	w, err := h.Workers.SetActive(c.Request.Context(), adminID(c), c.Param("id"), req.Active)
	if err != nil {
		respondError(c, "Failed to change worker state", err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WorkerHandler) DeleteWorkerHandler(c *gin.Context) {
	if err := h.Workers.DeleteWorker(c.Request.Context(), adminID(c), c.Param("id")); err != nil {
		respondError(c, "Failed to delete worker", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Worker deleted"})
}
