package brands

import (
	"strings"

	"github.com/autolux/marketplace-api/internal/utils"
)

type BrandRequest struct {
	Name string `json:"name"`
}

func (r *BrandRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return utils.Invalid("name is required")
	}
	return nil
}
