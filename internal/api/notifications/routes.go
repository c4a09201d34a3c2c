package notifications

import (
	"artmarket/internal/api/resource"
	"artmarket/internal/domain/notifications"

	"github.com/gin-gonic/gin"
)

func Register(rg *gin.RouterGroup, d resource.Deps) {
	resource.Mount[notifications.Notification](rg, d, resource.Options{Entity: "notification", Path: "/notifications"})
}
