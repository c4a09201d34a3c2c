package response

import (
	"net/http"
	"strconv"

	"artmarket/internal/platform/apierr"

	"github.com/gin-gonic/gin"
)

const ContentTypeProblem = "application/problem+json"

// Problem is the error body sent for every failed request.
type Problem struct {
	Title       string              `json:"title"`
	Status      int                 `json:"status"`
	Message     string              `json:"message"`
	EntityName  string              `json:"entityName,omitempty"`
	ErrorKey    string              `json:"errorKey"`
	FieldErrors []apierr.FieldError `json:"fieldErrors,omitempty"`
}

// Headers builds the X-<app>-* headers of one application.
type Headers struct {
	App string
}

func (h Headers) Alert() string  { return "X-" + h.App + "-alert" }
func (h Headers) Error() string  { return "X-" + h.App + "-error" }
func (h Headers) Params() string { return "X-" + h.App + "-params" }

func (h Headers) created(entity string) string { return h.App + "." + entity + ".created" }
func (h Headers) updated(entity string) string { return h.App + "." + entity + ".updated" }
func (h Headers) deleted(entity string) string { return h.App + "." + entity + ".deleted" }

func (h Headers) alert(c *gin.Context, msg string, id uint) {
	c.Header(h.Alert(), msg)
	c.Header(h.Params(), strconv.FormatUint(uint64(id), 10))
}

func (h Headers) Created(c *gin.Context, entity string, id uint) { h.alert(c, h.created(entity), id) }
func (h Headers) Updated(c *gin.Context, entity string, id uint) { h.alert(c, h.updated(entity), id) }
func (h Headers) Deleted(c *gin.Context, entity string, id uint) { h.alert(c, h.deleted(entity), id) }

// RespondError aborts the request with a problem body for err.
func (h Headers) RespondError(c *gin.Context, err *apierr.Error) {
	title := http.StatusText(err.Status)
	if err.Status < http.StatusInternalServerError && err.Err != nil {
		title = err.Err.Error()
	}
	c.Header(h.Error(), err.Message())
	if err.Entity != "" {
		c.Header(h.Params(), err.Entity)
	}
	c.Header("Content-Type", ContentTypeProblem)
	c.AbortWithStatusJSON(err.Status, Problem{
		Title:       title,
		Status:      err.Status,
		Message:     err.Message(),
		EntityName:  err.Entity,
		ErrorKey:    err.Key,
		FieldErrors: err.Fields,
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
