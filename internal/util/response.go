package util

import (
	"errors"
	"net/http"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the uniform envelope for all API responses.
type Response struct {
	Code    int         `json:"statusCode"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Data:    data,
		Message: message,
	})
}

func Created(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Data:    data,
		Message: message,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// RespondError maps a service error onto the envelope. Upstream and internal
// failures are genericized so collaborator details never leak to clients.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		logger.Log.Error("unclassified error", zap.Error(err))
		InternalServerError(c)
		return
	}

	switch appErr.Kind {
	case KindValidation:
		BadRequest(c, appErr.Message)
	case KindConflict:
		Error(c, http.StatusConflict, appErr.Message)
	case KindNotFound:
		NotFound(c, appErr.Message)
	case KindUpstream:
		logger.Log.Error("upstream failure", zap.Error(err))
		Error(c, http.StatusServiceUnavailable, "Evaluation service unavailable, please try again later")
	default:
		logger.Log.Error("internal error", zap.Error(err))
		InternalServerError(c)
	}
}
