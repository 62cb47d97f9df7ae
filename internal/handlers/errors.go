package handlers

import (
	"errors"

	"cookbook/internal/apperrors"
	"cookbook/internal/logger"

	"github.com/gofiber/fiber/v2"
)

var kindStatus = map[apperrors.Kind]int{
	apperrors.KindNotFound:         fiber.StatusNotFound,
	apperrors.KindPermissionDenied: fiber.StatusForbidden,
	apperrors.KindValidation:       fiber.StatusBadRequest,
	apperrors.KindConflict:         fiber.StatusConflict,
	apperrors.KindReferential:      fiber.StatusConflict,
	apperrors.KindTransient:        fiber.StatusServiceUnavailable,
	apperrors.KindUnexpected:       fiber.StatusInternalServerError,
}

var kindMessage = map[apperrors.Kind]string{
	apperrors.KindNotFound:         "Resource not found",
	apperrors.KindPermissionDenied: "Permission denied",
	apperrors.KindValidation:       "Validation failed",
	apperrors.KindConflict:         "Resource already exists",
	apperrors.KindReferential:      "Resource is still referenced",
	apperrors.KindTransient:        "Temporary failure, please retry",
	apperrors.KindUnexpected:       "Internal server error",
}

// respondError renders err by its kind. Unexpected errors are logged and never echoed.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	kind := apperrors.KindUnexpected
	appErr, ok := apperrors.As(err)
	if ok {
		kind = appErr.Kind
	}
	status, known := kindStatus[kind]
	if !known {
		kind, status = apperrors.KindUnexpected, fiber.StatusInternalServerError
	}

	body := fiber.Map{
		"message":   kindMessage[kind],
		"requestId": requestID(c),
	}
	switch kind {
	case apperrors.KindUnexpected:
		log.Error("Unexpected error", "requestId", requestID(c), "method", c.Method(), "path", c.Path(), "error", err)
	case apperrors.KindValidation:
		body["error"] = publicText(appErr)
		if len(appErr.Fields) > 0 {
			body["errors"] = appErr.Fields
		}
	case apperrors.KindTransient:
		log.Warn("Transient failure", "requestId", requestID(c), "path", c.Path(), "error", err)
		c.Set(fiber.HeaderRetryAfter, "1")
		body["error"] = publicText(appErr)
	default:
		body["error"] = publicText(appErr)
	}
	return c.Status(status).JSON(body)
}

// publicText is the error's message without the wrapped store error.
func publicText(e *apperrors.Error) string {
	return (&apperrors.Error{
		Kind:   e.Kind,
		Entity: e.Entity,
		Field:  e.Field,
		Action: e.Action,
		Detail: e.Detail,
	}).Error()
}

func requestID(c *fiber.Ctx) string {
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

// ErrorHandler renders errors that escape handlers and middleware.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{
				"message":   fe.Message,
				"requestId": requestID(c),
			})
		}
		return respondError(c, log, err)
	}
}
