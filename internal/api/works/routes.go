package works

import (
	"net/http"

	"artmarket/internal/api/resource"
	"artmarket/internal/domain/works"
	"artmarket/internal/platform/logger"
	"artmarket/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	entityArt        = "art"
	entityCollection = "collection"
	entityFeature    = "feature"
)

// Register mounts arts, collections and features together with the
// collection association endpoints.
func Register(rg *gin.RouterGroup, d resource.Deps) {
	resource.Mount[works.Art](rg, d, resource.Options{
		Entity:    entityArt,
		Path:      "/arts",
		Eager:     []string{"Collections"},
		Relations: []string{"collections"},
	})
	resource.Mount[works.Collection](rg, d, resource.Options{Entity: entityCollection, Path: "/collections"})
	resource.Mount[works.Feature](rg, d, resource.Options{Entity: entityFeature, Path: "/features"})

	h := &collectionLinks{
		links: repository.NewLinks(d.DB, d.Log),
		log:   d.Log.With("handler", "collection-links"),
		deps:  d,
	}
	rg.GET("/collections/:id/features", h.listFeatures)
	rg.PUT("/collections/:id/features", h.replaceFeatures)
	rg.GET("/collections/:id/arts", h.listArts)
	rg.PUT("/collections/:id/arts", h.replaceArts)
}

type collectionLinks struct {
	links *repository.Links
	log   *logger.Logger
	deps  resource.Deps
}

func (h *collectionLinks) fail(c *gin.Context, err error) {
	resource.Fail(c, h.log, h.deps.Headers, entityCollection, err)
}

// GET /collections/:id/features
func (h *collectionLinks) listFeatures(c *gin.Context) {
	id, err := resource.PathID(c, entityCollection)
	if err != nil {
		h.fail(c, err)
		return
	}
	features, err := h.links.CollectionFeatures(c.Request.Context(), nil, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, features)
}

// PUT /collections/:id/features
func (h *collectionLinks) replaceFeatures(c *gin.Context) {
	id, err := resource.PathID(c, entityCollection)
	if err != nil {
		h.fail(c, err)
		return
	}
	ids, err := resource.BindIDs(c, entityFeature)
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	if err := h.links.ReplaceCollectionFeatures(ctx, nil, id, ids); err != nil {
		h.fail(c, err)
		return
	}
	features, err := h.links.CollectionFeatures(ctx, nil, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.deps.Headers.Updated(c, entityCollection, id)
	c.JSON(http.StatusOK, features)
}

// GET /collections/:id/arts
func (h *collectionLinks) listArts(c *gin.Context) {
	id, err := resource.PathID(c, entityCollection)
	if err != nil {
		h.fail(c, err)
		return
	}
	arts, err := h.links.CollectionArts(c.Request.Context(), nil, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, arts)
}

// PUT /collections/:id/arts
func (h *collectionLinks) replaceArts(c *gin.Context) {
	id, err := resource.PathID(c, entityCollection)
	if err != nil {
		h.fail(c, err)
		return
	}
	ids, err := resource.BindIDs(c, entityArt)
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	if err := h.links.ReplaceCollectionArts(ctx, nil, id, ids); err != nil {
		h.fail(c, err)
		return
	}
	arts, err := h.links.CollectionArts(ctx, nil, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.deps.Headers.Updated(c, entityCollection, id)
	c.JSON(http.StatusOK, arts)
}
