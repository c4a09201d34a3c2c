package profiles

import (
	"artmarket/internal/api/resource"
	"artmarket/internal/domain/profiles"

	"github.com/gin-gonic/gin"
)

func Register(rg *gin.RouterGroup, d resource.Deps) {
	resource.Mount[profiles.Artist](rg, d, resource.Options{Entity: "artist", Path: "/artists"})
	resource.Mount[profiles.Collector](rg, d, resource.Options{Entity: "collector", Path: "/collectors"})
}
