package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/clinicore/records-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError writes a service error with the status its constraint class
// dictates: 404 for missing rows, 400 for null/invalid fields, 409 for
// foreign-key, unique and restrict violations, 500 otherwise.
func RespondError(c *gin.Context, err error) {
	var ce *apperrors.ConstraintError
	if errors.As(err, &ce) {
		c.JSON(ce.StatusCode(), NewErrorResponse(ce.Error()))
		return
	}
	c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error()))
}

// ParseID reads a positive integer path parameter. A zero return means the
// value was rejected and the response already written.
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid "+name))
		return 0, false
	}
	return id, true
}
