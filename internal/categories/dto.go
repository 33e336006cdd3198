package categories

import (
	"strings"

	"github.com/autolux/marketplace-api/internal/utils"
)

type CategoryRequest struct {
	Name string `json:"name"`
}

func (r *CategoryRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return utils.Invalid("name is required")
	}
	return nil
}
