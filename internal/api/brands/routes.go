package brands

import (
	"net/http"

	"artmarket/internal/api/resource"
	"artmarket/internal/domain/brands"
	"artmarket/internal/platform/logger"
	"artmarket/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	entityBrand    = "brand"
	entityCategory = "brandCategory"
)

func Register(rg *gin.RouterGroup, d resource.Deps) {
	resource.Mount[brands.Brand](rg, d, resource.Options{Entity: entityBrand, Path: "/brands"})
	resource.Mount[brands.BrandCategory](rg, d, resource.Options{
		Entity:    entityCategory,
		Path:      "/brand-categories",
		Eager:     []string{"Brands"},
		Relations: []string{"brands"},
	})

	h := &brandLinks{
		links: repository.NewLinks(d.DB, d.Log),
		log:   d.Log.With("handler", "brand-links"),
		deps:  d,
	}
	rg.PUT("/brands/:id/categories", h.replaceCategories)
}

type brandLinks struct {
	links *repository.Links
	log   *logger.Logger
	deps  resource.Deps
}

// PUT /brands/:id/categories replies with the categories now linked to the
// brand.
func (h *brandLinks) replaceCategories(c *gin.Context) {
	id, err := resource.PathID(c, entityBrand)
	if err != nil {
		resource.Fail(c, h.log, h.deps.Headers, entityBrand, err)
		return
	}
	ids, err := resource.BindIDs(c, entityCategory)
	if err != nil {
		resource.Fail(c, h.log, h.deps.Headers, entityCategory, err)
		return
	}
	ctx := c.Request.Context()
	if err := h.links.ReplaceBrandCategories(ctx, nil, id, ids); err != nil {
		resource.Fail(c, h.log, h.deps.Headers, entityBrand, err)
		return
	}

	out, err := h.links.BrandCategories(ctx, nil, id)
	if err != nil {
		resource.Fail(c, h.log, h.deps.Headers, entityBrand, err)
		return
	}
	h.deps.Headers.Updated(c, entityBrand, id)
	c.JSON(http.StatusOK, out)
}
