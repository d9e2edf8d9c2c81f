package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "findash/internal/errors"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// userURI binds the user_id path parameter.
type userURI struct {
	UserID uint `uri:"user_id" binding:"required,min=1"`
}

// userYearURI binds the user_id and year path parameters.
type userYearURI struct {
	UserID uint `uri:"user_id" binding:"required,min=1"`
	Year   int  `uri:"year" binding:"required,fiscal_year"`
}

// bindURI binds path parameters into dst.
// Returns ErrInvalidInput if a parameter is missing, malformed or out of range.
func bindURI(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindUri(dst); err != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return nil
}

// respondWithError writes a consistent JSON error response and records err on
// the Gin context so ErrorHandler can log it. AppErrors use their own status
// code, code and message; anything else becomes a generic internal error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.ErrInternalServer
	}
	c.JSON(appErr.StatusCode, ErrorResponse{
		Error: ErrorDetail{Code: appErr.Code, Message: appErr.Message},
	})
	_ = c.Error(err)
}
