// Package resource serves the REST surface shared by every entity:
// create, full and partial update, paged or streamed listing, fetch and
// delete.
package resource

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"artmarket/internal/api/merge"
	"artmarket/internal/api/pagination"
	"artmarket/internal/api/response"
	"artmarket/internal/api/validation"
	"artmarket/internal/domain/entity"
	"artmarket/internal/platform/apierr"
	"artmarket/internal/platform/logger"
	"artmarket/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ContentTypeNDJSON = "application/x-ndjson"

	streamBatchSize = 100
)

// Options describe one entity's REST resource.
type Options struct {
	// Entity is the singular name used in alert headers and errors ("artist").
	Entity string
	// Path is the collection path under the api group ("/artists").
	Path string
	// Eager lists associations preloaded on fetch and on eagerload=true lists.
	Eager []string
	// Relations lists JSON members that a merge-patch must not touch.
	Relations []string
}

// Handler serves one entity type.
type Handler[T any, P entity.Model[T]] struct {
	store       *repository.Store[T, P]
	log         *logger.Logger
	headers     response.Headers
	opts        Options
	columns     map[string]string
	patchFields []string
	limits      pagination.Limits
}

func New[T any, P entity.Model[T]](
	store *repository.Store[T, P],
	baseLog *logger.Logger,
	headers response.Headers,
	limits pagination.Limits,
	opts Options,
) (*Handler[T, P], error) {
	columns, err := pagination.Columns(P(new(T)))
	if err != nil {
		return nil, fmt.Errorf("%s columns: %w", opts.Entity, err)
	}
	exclude := append([]string{"id"}, opts.Relations...)
	validation.Setup()
	return &Handler[T, P]{
		store:       store,
		log:         baseLog.With("resource", opts.Entity),
		headers:     headers,
		opts:        opts,
		columns:     columns,
		patchFields: merge.JSONFields(P(new(T)), exclude...),
		limits:      limits,
	}, nil
}

// MustNew is New for route wiring, where a schema error is a programming
// error.
func MustNew[T any, P entity.Model[T]](
	store *repository.Store[T, P],
	baseLog *logger.Logger,
	headers response.Headers,
	limits pagination.Limits,
	opts Options,
) *Handler[T, P] {
	h, err := New(store, baseLog, headers, limits, opts)
	if err != nil {
		panic(err)
	}
	return h
}

// Register mounts the resource routes on rg.
func (h *Handler[T, P]) Register(rg *gin.RouterGroup) {
	rg.POST(h.opts.Path, h.Create)
	rg.GET(h.opts.Path, h.List)
	rg.GET(h.opts.Path+"/:id", h.Get)
	rg.PUT(h.opts.Path+"/:id", h.Update)
	rg.PATCH(h.opts.Path+"/:id", h.PartialUpdate)
	rg.DELETE(h.opts.Path+"/:id", h.Delete)
}

// Create handles POST /<entities>.
func (h *Handler[T, P]) Create(c *gin.Context) {
	e, err := h.decode(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if e.GetID() != 0 {
		h.fail(c, apierr.IDExists(h.opts.Entity))
		return
	}
	if err := h.validate(e); err != nil {
		h.fail(c, err)
		return
	}

	created, err := h.store.Create(c.Request.Context(), nil, e)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Debug("created", "id", created.GetID())

	c.Header("Location", fmt.Sprintf("%s%s/%d", apiPrefix(c, h.opts.Path), h.opts.Path, created.GetID()))
	h.headers.Created(c, h.opts.Entity, created.GetID())
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /<entities>/:id.
func (h *Handler[T, P]) Update(c *gin.Context) {
	e, err := h.decode(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.checkIDs(c, e.GetID()); err != nil {
		h.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	exists, err := h.store.ExistsByID(ctx, nil, e.GetID())
	if err != nil {
		h.fail(c, err)
		return
	}
	if !exists {
		h.fail(c, apierr.NotFound(h.opts.Entity))
		return
	}
	if err := h.validate(e); err != nil {
		h.fail(c, err)
		return
	}

	saved, err := h.store.Save(ctx, nil, e)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.headers.Updated(c, h.opts.Entity, saved.GetID())
	response.RespondOK(c, saved)
}

// PartialUpdate handles PATCH /<entities>/:id with a merge-patch body.
func (h *Handler[T, P]) PartialUpdate(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		h.fail(c, apierr.Malformed(h.opts.Entity, err))
		return
	}
	var head struct {
		ID *uint `json:"id"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		h.fail(c, apierr.Malformed(h.opts.Entity, err))
		return
	}
	var bodyID uint
	if head.ID != nil {
		bodyID = *head.ID
	}
	if err := h.checkIDs(c, bodyID); err != nil {
		h.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	existing, err := h.store.FindByID(ctx, nil, bodyID, h.opts.Eager...)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := merge.Apply(existing, raw, h.patchFields); err != nil {
		h.fail(c, apierr.Malformed(h.opts.Entity, err))
		return
	}
	if err := h.validate(existing); err != nil {
		h.fail(c, err)
		return
	}

	saved, err := h.store.Save(ctx, nil, existing)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.headers.Updated(c, h.opts.Entity, saved.GetID())
	response.RespondOK(c, saved)
}

// List handles GET /<entities>: a page with X-Total-Count and Link headers,
// or every row as NDJSON when the client accepts it.
func (h *Handler[T, P]) List(c *gin.Context) {
	if acceptsNDJSON(c) {
		h.stream(c)
		return
	}

	page, err := pagination.Parse(c, h.columns, h.limits)
	if err != nil {
		h.fail(c, err)
		return
	}
	var preload []string
	if c.Query("eagerload") == "true" {
		preload = h.opts.Eager
	}

	rows, total, err := h.store.FindAll(c.Request.Context(), nil, page, preload...)
	if err != nil {
		h.fail(c, err)
		return
	}
	pagination.WriteHeaders(c, page, total)
	response.RespondOK(c, rows)
}

func (h *Handler[T, P]) stream(c *gin.Context) {
	sort, err := pagination.ParseSort(c.QueryArray("sort"), h.columns)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Type", ContentTypeNDJSON)
	c.Status(http.StatusOK)
	enc := json.NewEncoder(c.Writer)
	err = h.store.Stream(c.Request.Context(), nil, sort, streamBatchSize, func(rows []P) error {
		for _, row := range rows {
			if err := enc.Encode(row); err != nil {
				return err
			}
		}
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		// Headers are gone; all that is left is to stop and log.
		h.log.Error("stream aborted", "error", err)
	}
}

// Get handles GET /<entities>/:id.
func (h *Handler[T, P]) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.fail(c, apierr.NotFound(h.opts.Entity))
		return
	}
	e, err := h.store.FindByID(c.Request.Context(), nil, id, h.opts.Eager...)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, e)
}

// Delete handles DELETE /<entities>/:id. Unknown ids are not an error.
func (h *Handler[T, P]) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.fail(c, apierr.IDMismatch(h.opts.Entity))
		return
	}
	if err := h.store.DeleteByID(c.Request.Context(), nil, id); err != nil {
		h.fail(c, err)
		return
	}
	h.headers.Deleted(c, h.opts.Entity, id)
	c.Status(http.StatusNoContent)
}

func (h *Handler[T, P]) decode(c *gin.Context) (P, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, apierr.Malformed(h.opts.Entity, err)
	}
	e := P(new(T))
	if err := json.Unmarshal(raw, e); err != nil {
		return nil, apierr.Malformed(h.opts.Entity, err)
	}
	return e, nil
}

func (h *Handler[T, P]) validate(e P) error {
	err := validation.Struct(e)
	if err == nil {
		return nil
	}
	if fields, ok := validation.FieldErrors(h.opts.Entity, err); ok {
		return apierr.Validation(h.opts.Entity, fields)
	}
	return apierr.Malformed(h.opts.Entity, err)
}

// checkIDs enforces that the body carries an id and that it names the same
// entity as the path.
func (h *Handler[T, P]) checkIDs(c *gin.Context, bodyID uint) error {
	if bodyID == 0 {
		return apierr.IDNull(h.opts.Entity)
	}
	id, ok := pathID(c)
	if !ok || id != bodyID {
		return apierr.IDMismatch(h.opts.Entity)
	}
	return nil
}

func (h *Handler[T, P]) fail(c *gin.Context, err error) {
	Fail(c, h.log, h.headers, h.opts.Entity, err)
}

// Fail renders err as a problem response, translating store and query errors
// into their API form.
func Fail(c *gin.Context, log *logger.Logger, headers response.Headers, entityName string, err error) {
	apiErr := Translate(entityName, err)
	if apiErr.Status >= http.StatusInternalServerError {
		log.Error("request failed", "path", c.FullPath(), "error", err)
	} else {
		log.Debug("request rejected", "path", c.FullPath(), "key", apiErr.Key, "error", err)
	}
	headers.RespondError(c, apiErr)
}

func pathID(c *gin.Context) (uint, bool) {
	return ParseID(c.Param("id"))
}

// ParseID accepts positive decimal ids only.
func ParseID(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func acceptsNDJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), ContentTypeNDJSON)
}

// apiPrefix is the part of the request path in front of the resource path,
// e.g. "/api" for "/api/artists".
func apiPrefix(c *gin.Context, path string) string {
	full := c.FullPath()
	if i := strings.LastIndex(full, path); i >= 0 {
		return full[:i]
	}
	return ""
}

// Deps carries what every resource needs to be built.
type Deps struct {
	DB      *gorm.DB
	Log     *logger.Logger
	Headers response.Headers
	Limits  pagination.Limits
}

// Mount builds the handler for T from d and registers its routes on rg.
func Mount[T any, P entity.Model[T]](rg *gin.RouterGroup, d Deps, opts Options) *Handler[T, P] {
	h := MustNew(repository.NewStore[T, P](d.DB, d.Log), d.Log, d.Headers, d.Limits, opts)
	h.Register(rg)
	return h
}
