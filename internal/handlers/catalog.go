package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/studypath-backend/internal/catalog"
)

type CatalogHandler struct {
	cat *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{cat: cat}
}

// ListSubjects returns the static subject → topics mapping the UI
// builds its pickers from.
func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	RespondOK(c, h.cat.AsMap())
}
