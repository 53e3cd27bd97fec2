// internal/handlers/dashboard/dashboard_handler.go
package dashboard

import (
	"net/http"

	"cprice-service/internal/middleware"
	"cprice-service/internal/pkg/response"
	service "cprice-service/internal/service/dashboard"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Overview returns announcements, the pending pool, claimed inquiries and
// workload stats in one payload.
func (h *DashboardHandler) Overview(c *gin.Context) {
	result, err := h.dashboardService.Overview(c.Request.Context(), middleware.Viewer(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "dashboard retrieved", result)
}
