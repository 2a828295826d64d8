package common

import (
	"errors"
	"net/http"

	"ecom-admin/domain"

	"github.com/gin-gonic/gin"
)

// ResponseT is the envelope every endpoint answers with, success or
// failure.
type ResponseT[T any] struct {
	Status      int    `json:"status"`
	Code        string `json:"code"`
	Data        T      `json:"data"`
	Description string `json:"description"`
}

var logger Logger

// SetLogger wires the logger used for error responses. Left unset,
// error responses are returned silently.
func SetLogger(l Logger) {
	logger = l
}

func Response[T any](c *gin.Context, status int, code string, data T, desc string) {
	if status >= 400 && logger != nil {
		logger.Error("API Error",
			"status", status,
			"code", code,
			"description", desc,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
	}

	c.AbortWithStatusJSON(status, ResponseT[T]{
		Status:      status,
		Code:        code,
		Data:        data,
		Description: desc,
	})
}

func ResponseOK[T any](c *gin.Context, data T, desc string) {
	Response(c, http.StatusOK, "SUCCESS", data, desc)
}

func ResponseCreated[T any](c *gin.Context, data T, desc string) {
	Response(c, http.StatusCreated, "SUCCESS", data, desc)
}

type PageData[T any] struct {
	Items      T                  `json:"items"`
	Pagination *domain.Pagination `json:"pagination"`
}

func ResponseOKWithPagination[T any](c *gin.Context, data T, pagination *domain.Pagination, desc string) {
	Response(c, http.StatusOK, "SUCCESS", PageData[T]{Items: data, Pagination: pagination}, desc)
}

func ResponseNoContent(c *gin.Context, desc string) {
	Response[any](c, http.StatusNoContent, "SUCCESS", nil, desc)
}

func ResponseBadRequest(c *gin.Context, desc string) {
	dErr := domain.ErrBadRequest.WithWrap(errors.New(desc))
	Response[any](c, dErr.StatusCode(), dErr.IDField, dErr.DetailsField, dErr.ErrorField)
}

func ResponseForbidden(c *gin.Context, desc string) {
	dErr := domain.ErrForbidden.WithWrap(errors.New(desc))
	Response[any](c, dErr.StatusCode(), dErr.IDField, dErr.DetailsField, dErr.ErrorField)
}

func ResponseNotFound(c *gin.Context, desc string) {
	dErr := domain.ErrNotFound.WithWrap(errors.New(desc))
	Response[any](c, dErr.StatusCode(), dErr.IDField, dErr.DetailsField, dErr.ErrorField)
}

// ResponseError maps a domain error onto its http shape. Anything that
// is not a DetailedError is reported as an internal error.
func ResponseError(c *gin.Context, err error) {
	var dErr *domain.DetailedError
	if de, ok := IsDetailError(err); ok {
		dErr = de
	} else {
		dErr = domain.ErrInternalServerError.WithWrap(err)
	}

	Response[any](c, dErr.StatusCode(), dErr.IDField, dErr.DetailsField, dErr.ErrorField)
}
