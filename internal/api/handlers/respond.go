package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/smartkitchen/inventory-api/internal/domain"
)

// domainError maps the derivation sentinels onto the API's historical
// status codes and messages. Anything unrecognized is a 500.
func domainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientData):
		errorResponse(c, http.StatusBadRequest, "Not enough data for prediction")
	case errors.Is(err, domain.ErrInvalidData):
		errorResponse(c, http.StatusBadRequest, "Invalid consumption data")
	case errors.Is(err, domain.ErrNoValidPredictions):
		errorResponse(c, http.StatusBadRequest, "No valid expiry predictions available")
	case errors.Is(err, domain.ErrItemNotFound):
		errorResponse(c, http.StatusNotFound, "No data found for item")
	default:
		log.Error().Err(err).Msg("request failed")
		errorResponse(c, http.StatusInternalServerError, err.Error())
	}
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}
