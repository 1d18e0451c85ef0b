package http

import (
	"errors"
	"net/http"

	"orderservice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []errs.Detail `json:"details,omitempty"`
}

func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindDomain, errs.KindDuplicate, errs.KindConflict:
		return http.StatusConflict
	case errs.KindCancelled:
		return http.StatusRequestTimeout
	case errs.KindInternal:
	}
	return http.StatusInternalServerError
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := s.toResponse(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		s.logger.Error("failed to write error response", zap.Error(err))
	}
}

func (s *Server) toResponse(err error) (int, ErrorResponse) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, ErrorResponse{
			Code:    codeForStatus(httpErr.Code),
			Message: http.StatusText(httpErr.Code),
		}
	}

	kind := errs.KindOf(err)
	if kind == errs.KindInternal {
		return http.StatusInternalServerError, ErrorResponse{
			Code:    errs.CodeInternal,
			Message: "internal error",
		}
	}

	resp := ErrorResponse{Code: errs.CodeOf(err), Message: err.Error()}
	var coded *errs.Error
	if errors.As(err, &coded) {
		resp.Message = coded.Message
		resp.Details = coded.Details
	}
	return statusOf(kind), resp
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusBadRequest:
		return errs.CodeValidation
	}
	if status >= http.StatusInternalServerError {
		return errs.CodeInternal
	}
	return http.StatusText(status)
}
