package handlers

import (
	"net/http"

	"hoardify/models"
	"hoardify/services/hero"

	"github.com/gin-gonic/gin"
)

// HeroHandler serves the hero banner editor.
type HeroHandler struct {
	Hero hero.HeroService
}

func NewHeroHandler(hs hero.HeroService) *HeroHandler {
	return &HeroHandler{Hero: hs}
}

func (h *HeroHandler) ListSlidesHandler(c *gin.Context) {
	slides, err := h.Hero.ListSlides(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to fetch hero slides", err)
		return
	}
	c.JSON(http.StatusOK, slides)
}

func (h *HeroHandler) CreateSlideHandler(c *gin.Context) {
	var in models.HeroSlideInput
	if !bindJSON(c, &in) {
		return
	}
	s, err := h.Hero.CreateSlide(c.Request.Context(), adminID(c), in)
	if err != nil {
		respondError(c, "Failed to create hero slide", err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *HeroHandler) UpdateSlideHandler(c *gin.Context) {
	var in models.HeroSlideInput
	if !bindJSON(c, &in) {
		return
	}
	s, err := h.Hero.UpdateSlide(c.Request.Context(), adminID(c), c.Param("id"), in)
	if err != nil {
		respondError(c, "Failed to update hero slide", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *HeroHandler) DeleteSlideHandler(c *gin.Context) {
	if err := h.Hero.DeleteSlide(c.Request.Context(), adminID(c), c.Param("id")); err != nil {
		respondError(c, "Failed to delete hero slide", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hero slide deleted"})
}

// ReorderHandler handles PUT /api/admin/hero/order.
func (h *HeroHandler) ReorderHandler(c *gin.Context) {
	var req models.HeroReorderRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Hero.Reorder(c.Request.Context(), adminID(c), req.IDs); err != nil {
		respondError(c, "Failed to reorder hero slides", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hero slides reordered"})
}
