package api

import (
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/service"
)

// TaskLogHandler handles task log HTTP requests. The surface is read-only;
// log entries are written only by the task creation flow.
type TaskLogHandler struct {
	taskLogService service.TaskLogService
}

// NewTaskLogHandler creates a new TaskLogHandler.
func NewTaskLogHandler(taskLogService service.TaskLogService) *TaskLogHandler {
	return &TaskLogHandler{
		taskLogService: taskLogService,
	}
}

// ListTaskLogs handles GET /task-logs requests. The listing is unfiltered
// and may include entries whose task has since been deleted.
func (h *TaskLogHandler) ListTaskLogs(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageParams(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	logs, total, err := h.taskLogService.ListTaskLogs(r.Context(), page)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	response := shared.NewPageResponse(taskLogsToResponses(logs), total, page.Page, page.Size)
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
