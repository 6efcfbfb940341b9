package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/table-orders-api/services"
	"github.com/kendall-kelly/table-orders-api/utils"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondServiceError translates an error returned by the services package
func respondServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	var fileErr *utils.FileUploadError
	if errors.As(err, &fileErr) {
		respondError(c, http.StatusBadRequest, fileErr.Code, fileErr.Message)
		return
	}

	code := services.ErrorCode(err)
	switch code {
	case services.CodeValidation:
		respondError(c, http.StatusBadRequest, code, err.Error())
	case services.CodeNotFound:
		respondError(c, http.StatusNotFound, code, err.Error())
	case services.CodeConstraint:
		respondError(c, http.StatusConflict, code, err.Error())
	case services.CodeImagesDisabled:
		respondError(c, http.StatusServiceUnavailable, code, "Menu images are not configured")
	default:
		respondError(c, http.StatusInternalServerError, code, "An unexpected error occurred")
	}
}

// parseID reads a positive numeric path parameter, answering 400 when it is malformed
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+param)
		return 0, false
	}
	return uint(id), true
}

func respondValidation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    services.CodeValidation,
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}
