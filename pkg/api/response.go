package api

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"

	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/store"
)

// OK sends a 200 response. Slices are wrapped in {data: [...]}.
func OK(c *gin.Context, data any) {
	if data != nil {
		if reflect.ValueOf(data).Kind() == reflect.Slice {
			c.JSON(http.StatusOK, gin.H{"data": data})
			return
		}
	}
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func abort(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"ok": 0, "code": code, "message": message})
}

func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	abort(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	abort(c, http.StatusConflict, message)
}

func InternalError(c *gin.Context, err error) {
	abort(c, http.StatusInternalServerError, err.Error())
}

// Error maps journal errors onto status codes.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, store.ErrDailyLimitExceeded), errors.Is(err, store.ErrDuplicateID):
		Conflict(c, err.Error())
	case errors.Is(err, entry.ErrMissingRequiredField), errors.Is(err, entry.ErrInvalidField):
		BadRequest(c, err.Error())
	default:
		InternalError(c, err)
	}
}
