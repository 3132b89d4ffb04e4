package http

import (
	"errors"
	"log/slog"
	"net/http"

	"preclear/internal/core/application/usecases/commands"
	"preclear/internal/core/application/workflow"
	"preclear/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

var statusByKind = map[string]int{
	workflow.KindInvalidArgument:          http.StatusBadRequest,
	workflow.KindNotFound:                 http.StatusNotFound,
	workflow.KindTransitionNotAllowed:     http.StatusConflict,
	workflow.KindAssignmentNotAllowed:     http.StatusConflict,
	workflow.KindBlockedByOpenExceptions:  http.StatusConflict,
	workflow.KindRequiredDocumentsMissing: http.StatusConflict,
	workflow.KindConcurrencyConflict:      http.StatusConflict,
	workflow.KindInternal:                 http.StatusInternalServerError,
}

func (s *Server) respondError(ctx echo.Context, err error) error {
	return respondError(ctx, s.logger, err)
}

const concurrencyConflictMessage = "concurrent update, retry"

// respondError writes err as a servers.Error. Internal errors and
// concurrency conflicts are logged and their details withheld from the client.
func respondError(ctx echo.Context, logger *slog.Logger, err error) error {
	kind := workflow.Classify(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	body := servers.Error{Code: kind, Message: err.Error()}
	if kind == workflow.KindConcurrencyConflict {
		logger.WarnContext(ctx.Request().Context(), "Request conflicted with a concurrent update",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		body.Message = concurrencyConflictMessage
	}
	if status == http.StatusInternalServerError {
		logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		body.Message = "Internal server error"
	}

	var blocked *commands.BlockedByOpenExceptionsError
	if errors.As(err, &blocked) {
		codes := append([]string(nil), blocked.Codes...)
		body.BlockingCodes = &codes
	}

	return ctx.JSON(status, body)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{Code: workflow.KindInvalidArgument, Message: message})
}

var codeByStatus = map[int]string{
	http.StatusBadRequest:           workflow.KindInvalidArgument,
	http.StatusNotFound:             "route_not_found",
	http.StatusMethodNotAllowed:     "method_not_allowed",
	http.StatusUnsupportedMediaType: workflow.KindInvalidArgument,
}

// newErrorHandler renders echo errors (routing, binding, request
// validation) in the same shape as workflow errors.
func newErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			_ = respondError(ctx, logger, err)
			return
		}
		writeHTTPError(ctx, he)
	}
}

func writeHTTPError(ctx echo.Context, he *echo.HTTPError) {
	code, ok := codeByStatus[he.Code]
	if !ok {
		code = workflow.KindInternal
	}
	message := http.StatusText(he.Code)
	if m, isString := he.Message.(string); isString {
		message = m
	}
	if he.Internal != nil && he.Code == http.StatusBadRequest {
		message = he.Internal.Error()
	}

	_ = ctx.JSON(he.Code, servers.Error{Code: code, Message: message})
}
