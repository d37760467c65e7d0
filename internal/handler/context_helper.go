package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusync/academia-api/internal/middleware"
	"github.com/edusync/academia-api/internal/models"
	appErrors "github.com/edusync/academia-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func bindPageQuery(c *gin.Context) (models.PageQuery, error) {
	var q models.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return q, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid pagination query")
	}
	return q, nil
}
