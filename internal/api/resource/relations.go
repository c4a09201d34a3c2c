package resource

import (
	"encoding/json"

	"artmarket/internal/platform/apierr"

	"github.com/gin-gonic/gin"
)

// IDs is the body of the association replace endpoints.
type IDs struct {
	IDs []uint `json:"ids"`
}

// BindIDs reads an {"ids": [...]} body. A missing list means "no links".
func BindIDs(c *gin.Context, entityName string) ([]uint, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, apierr.Malformed(entityName, err)
	}
	var body IDs
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, apierr.Malformed(entityName, err)
	}
	for _, id := range body.IDs {
		if id == 0 {
			return nil, apierr.IDNull(entityName)
		}
	}
	return body.IDs, nil
}

// PathID reads the :id route parameter, failing with idinvalid.
func PathID(c *gin.Context, entityName string) (uint, error) {
	id, ok := pathID(c)
	if !ok {
		return 0, apierr.IDMismatch(entityName)
	}
	return id, nil
}
