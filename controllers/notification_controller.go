package controllers

import (
	"net/http"

	"commerce-backend/models"
	"commerce-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificationController struct {
	notifications services.NotificationService
}

func NewNotificationController(notifications services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

// GetLogs returns the notification delivery log, filterable by customer and
// delivery status. Admin only.
func (nc *NotificationController) GetLogs(ctx *gin.Context) {
	filter := models.NotificationFilter{
		Status: ctx.Query("status"),
	}
	filter.Page, filter.PageSize = parsePaginationParams(ctx)

	if raw := ctx.Query("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer_id"})
			return
		}
		filter.CustomerID = &id
	}

	logs, total, err := nc.notifications.GetLogs(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"logs": logs,
		"meta": gin.H{
			"page":  filter.Page,
			"limit": filter.PageSize,
			"total": total,
		},
	})
}
