package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"perwadag_backend/internals/helpers/apperr"
)

// FromAppError memetakan error domain (apperr) ke response JSON konsisten.
// *fiber.Error diteruskan apa adanya; sisanya fallback 500.
func FromAppError(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		code := fiber.StatusInternalServerError
		switch ae.Kind {
		case apperr.KindValidation:
			code = fiber.StatusBadRequest
		case apperr.KindConflict:
			code = fiber.StatusConflict
		case apperr.KindNotFound:
			code = fiber.StatusNotFound
		case apperr.KindScopeViolation, apperr.KindLockedPeriode:
			code = fiber.StatusForbidden
		case apperr.KindCascadeFailure:
			code = fiber.StatusInternalServerError
		}
		if ae.Field != "" {
			return ErrorWithDetails(c, code, ae.Msg, fiber.Map{"field": ae.Field})
		}
		return Error(c, code, ae.Msg)
	}

	if fe, ok := err.(*fiber.Error); ok {
		return Error(c, fe.Code, fe.Message)
	}
	return Error(c, fiber.StatusInternalServerError, err.Error())
}
