package notifyplatform

import (
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

type scheduleTriggerRequest struct {
	Content domain.NotificationContent `json:"content"`
	Rule    domain.TriggerRule         `json:"rule"`
}

type scheduleTriggerResponse struct {
	HandleID string `json:"handle_id"`
}

type listScheduledResponse struct {
	Triggers []domain.ScheduledNotification `json:"triggers"`
	Count    int                            `json:"count"`
}

type permissionResponse struct {
	State string `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}
