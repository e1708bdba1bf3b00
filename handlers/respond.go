package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hoardify/models"
	"hoardify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a service error onto the HTTP error envelope.
func respondError(c *gin.Context, action string, err error) {
	logger := getLogger(c)
	resp := utils.ErrorResponse{Message: action}
	status := http.StatusInternalServerError

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		resp.Message = "Validation failed"
		resp.Fields = verr.Fields
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
		resp.Details = err.Error()
	case errors.Is(err, models.ErrInvalidStatus):
		status = http.StatusBadRequest
		resp.Details = err.Error()
	case errors.Is(err, models.ErrTransitionNotAllowed):
		status = http.StatusConflict
		resp.Details = err.Error()
	case errors.Is(err, models.ErrUnauthorized):
		status = http.StatusUnauthorized
		resp.Details = "invalid credentials"
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
		resp.Details = "admin access required"
	case errors.Is(err, models.ErrWriteFailed):
		status = http.StatusBadGateway
		resp.Details = "The change could not be saved. Please try again."
	case errors.Is(err, models.ErrReadFailed):
		status = http.StatusServiceUnavailable
		resp.Details = "Data is temporarily unavailable."
		resp.Retryable = true
	}

	if status >= http.StatusInternalServerError {
		logger.Error(action, zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		logger.Debug(action, zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, resp)
}

// bindJSON decodes the body into dst and writes a 400 on malformed input.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		c.Abort()
		return false
	}
	return true
}

// adminID returns the uid placed in the context by the admin auth middleware.
func adminID(c *gin.Context) string {
	return c.GetString("adminID")
}

// respondPage writes one page of items using the page and perPage query parameters.
func respondPage[T any](c *gin.Context, items []T) {
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("perPage"))
	page, perPage = utils.NormalizePage(page, perPage)

	c.JSON(http.StatusOK, models.PagedResponse{
		Items:      utils.Paginate(items, page, perPage),
		Page:       page,
		PerPage:    perPage,
		Total:      len(items),
		TotalPages: utils.CalculateTotalPages(int64(len(items)), perPage),
	})
}

func queryBool(c *gin.Context, key string) (*bool, bool) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query parameter", key+" must be true or false")
		c.Abort()
		return nil, false
	}
	return &v, true
}
