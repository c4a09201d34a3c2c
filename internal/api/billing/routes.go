package billing

import (
	"net/http"

	"artmarket/internal/api/resource"
	"artmarket/internal/domain/billing"
	"artmarket/internal/platform/logger"
	"artmarket/internal/repository"

	"github.com/gin-gonic/gin"
)

const entityTransaction = "transaction"

// Register mounts transactions, their data and outputs, and invoices.
func Register(rg *gin.RouterGroup, d resource.Deps) {
	resource.Mount[billing.Transaction](rg, d, resource.Options{Entity: entityTransaction, Path: "/transactions"})
	resource.Mount[billing.Data](rg, d, resource.Options{Entity: "data", Path: "/data"})
	resource.Mount[billing.Output](rg, d, resource.Options{Entity: "output", Path: "/outputs"})
	resource.Mount[billing.Invoice](rg, d, resource.Options{Entity: "invoice", Path: "/invoices"})

	h := &transactionLinks{
		links: repository.NewLinks(d.DB, d.Log),
		log:   d.Log.With("handler", "transaction-links"),
		deps:  d,
	}
	rg.GET("/transactions/:id/data", h.listData)
	rg.GET("/transactions/:id/output", h.getOutput)
}

type transactionLinks struct {
	links *repository.Links
	log   *logger.Logger
	deps  resource.Deps
}

func (h *transactionLinks) fail(c *gin.Context, err error) {
	resource.Fail(c, h.log, h.deps.Headers, entityTransaction, err)
}

// GET /transactions/:id/data
func (h *transactionLinks) listData(c *gin.Context) {
	id, err := resource.PathID(c, entityTransaction)
	if err != nil {
		h.fail(c, err)
		return
	}
	data, err := h.links.TransactionData(c.Request.Context(), nil, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// GET /transactions/:id/output
func (h *transactionLinks) getOutput(c *gin.Context) {
	id, err := resource.PathID(c, entityTransaction)
	if err != nil {
		h.fail(c, err)
		return
	}
	out, err := h.links.TransactionOutput(c.Request.Context(), nil, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
