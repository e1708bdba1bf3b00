package handlers

import (
	"net/http"

	"hoardify/models"
	"hoardify/services/hoarding"

	"github.com/gin-gonic/gin"
)

// HoardingHandler serves the hoardings and categories screens.
type HoardingHandler struct {
	Hoardings hoarding.HoardingService
}

func NewHoardingHandler(hs hoarding.HoardingService) *HoardingHandler {
	return &HoardingHandler{Hoardings: hs}
}

func (h *HoardingHandler) ListCategoriesHandler(c *gin.Context) {
	cats, err := h.Hoardings.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to fetch categories", err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (h *HoardingHandler) CreateCategoryHandler(c *gin.Context) {
	var in models.CategoryInput
	if !bindJSON(c, &in) {
		return
	}
	cat, err := h.Hoardings.CreateCategory(c.Request.Context(), adminID(c), in)
	if err != nil {
		respondError(c, "Failed to create category", err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *HoardingHandler) DeleteCategoryHandler(c *gin.Context) {
	if err := h.Hoardings.DeleteCategory(c.Request.Context(), adminID(c), c.Param("category")); err != nil {
		respondError(c, "Failed to delete category", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// ListHoardingsHandler handles GET /api/admin/hoardings and
// GET /api/admin/categories/:category/hoardings.
func (h *HoardingHandler) ListHoardingsHandler(c *gin.Context) {
	available, ok := queryBool(c, "available")
	if !ok {
		return
	}
	q := hoarding.Query{
		CategoryID: c.Param("category"),
		Search:     c.Query("search"),
		Available:  available,
	}
	if q.CategoryID == "" {
		q.CategoryID = c.Query("category")
	}
	list, err := h.Hoardings.ListHoardings(c.Request.Context(), q)
	if err != nil {
		respondError(c, "Failed to fetch hoardings", err)
		return
	}
	respondPage(c, list)
}

func (h *HoardingHandler) GetHoardingHandler(c *gin.Context) {
	hd, err := h.Hoardings.GetHoarding(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to fetch hoarding", err)
		return
	}
	c.JSON(http.StatusOK, hd)
}

func (h *HoardingHandler) CreateHoardingHandler(c *gin.Context) {
	var in models.HoardingInput
	if !bindJSON(c, &in) {
		return
	}
	hd, err := h.Hoardings.CreateHoarding(c.Request.Context(), adminID(c), c.Param("category"), in)
	if err != nil {
		respondError(c, "Failed to create hoarding", err)
		return
	}
	c.JSON(http.StatusCreated, hd)
}

func (h *HoardingHandler) UpdateHoardingHandler(c *gin.Context) {
	var in models.HoardingInput
	if !bindJSON(c, &in) {
		return
	}
	hd, err := h.Hoardings.UpdateHoarding(c.Request.Context(), adminID(c), c.Param("category"), c.Param("id"), in)
	if err != nil {
		respondError(c, "Failed to update hoarding", err)
		return
	}
	c.JSON(http.StatusOK, hd)
}

// SetAvailabilityHandler handles PUT /api/admin/categories/:category/hoardings/:id/availability.
func (h *HoardingHandler) SetAvailabilityHandler(c *gin.Context) {
	var req models.AvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Hoardings.SetAvailability(c.Request.Context(), adminID(c), c.Param("category"), c.Param("id"), req.Available); err != nil {
		respondError(c, "Failed to change availability", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "available": req.Available})
}

func (h *HoardingHandler) DeleteHoardingHandler(c *gin.Context) {
	if err := h.Hoardings.DeleteHoarding(c.Request.Context(), adminID(c), c.Param("category"), c.Param("id")); err != nil {
		respondError(c, "Failed to delete hoarding", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hoarding deleted"})
}
