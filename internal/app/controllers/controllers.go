package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edupro/talentdesk/internal/app/models/dto"
)

// parseIDParam reads an object id path parameter, writing a 400 itself
// when the value is malformed. Callers return immediately on !ok.
func parseIDParam(ctx *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(ctx.Param(name))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid id")
		errorDetail = errorDetail.WithField(name).WithDetails("must be a 24 character hex string")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return primitive.NilObjectID, false
	}
	return id, true
}

// parseIDQuery parses a hex object id taken from a query parameter,
// writing a 400 when it is malformed.
func parseIDQuery(ctx *gin.Context, value string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid id")
		errorDetail = errorDetail.WithDetails("must be a 24 character hex string")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return primitive.NilObjectID, false
	}
	return id, true
}

// bindJSON binds the request body, writing a 400 with field details on
// validation failure. Callers return immediately on !ok.
func bindJSON(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
