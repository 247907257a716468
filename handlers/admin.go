package handlers

import (
	"errors"
	"net/http"
	"time"

	"dineslot/models"
	"dineslot/services/tasks"
	"dineslot/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type AdminHandler struct {
	Tasks    TaskEnqueuer
	Location *time.Location
}

// ReconcileHandler queues a reconciliation of one space/date. POST /api/admin/reconcile
func (h *AdminHandler) ReconcileHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.ReconcilePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return
	}
	if req.SpaceID == "" {
		badRequest(c, "spaceId is required")
		return
	}
	day, err := utils.ParseDate(req.Date, h.Location)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	req.Date = day.Format(utils.DateLayout)

	task, err := tasks.NewReconcileTask(req)
	if err != nil {
		respondError(c, err)
		return
	}
	info, err := h.Tasks.Enqueue(task)
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			c.JSON(http.StatusAccepted, gin.H{"status": "already queued"})
			return
		}
		respondError(c, err)
		return
	}

	logger.Info("Reconcile task queued",
		zap.String("taskID", info.ID),
		zap.String("spaceID", req.SpaceID),
		zap.String("date", req.Date),
		zap.String("staffID", c.GetString("staffID")))
	c.JSON(http.StatusAccepted, gin.H{"status": "queued", "taskId": info.ID})
}
