package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/tu-usuario/catalog-api/internal/application/dto"
	"github.com/tu-usuario/catalog-api/internal/domain"
)

// statusFor mapea cada error de dominio a su status HTTP.
var statusFor = map[error]int{
	domain.ErrUserNotFound:     fiber.StatusNotFound,
	domain.ErrCategoryNotFound: fiber.StatusNotFound,
	domain.ErrProductNotFound:  fiber.StatusNotFound,
	domain.ErrParentNotFound:   fiber.StatusNotFound,

	domain.ErrEmailTaken:        fiber.StatusConflict,
	domain.ErrCategoryNameTaken: fiber.StatusConflict,
	domain.ErrSKUTaken:          fiber.StatusConflict,
	domain.ErrDuplicate:         fiber.StatusConflict,

	domain.ErrUnauthorized:       fiber.StatusUnauthorized,
	domain.ErrInvalidToken:       fiber.StatusUnauthorized,
	domain.ErrTokenExpired:       fiber.StatusUnauthorized,
	domain.ErrInvalidCredentials: fiber.StatusUnauthorized,
	domain.ErrAccountDisabled:    fiber.StatusUnauthorized,

	domain.ErrForbidden:            fiber.StatusForbidden,
	domain.ErrOwnAccountDelete:     fiber.StatusForbidden,
	domain.ErrOwnAccountDeactivate: fiber.StatusForbidden,

	domain.ErrCurrentPassword:     fiber.StatusBadRequest,
	domain.ErrSelfParent:          fiber.StatusBadRequest,
	domain.ErrCategoryHasChildren: fiber.StatusBadRequest,
	domain.ErrCategoryHasProducts: fiber.StatusBadRequest,
	domain.ErrNoImages:            fiber.StatusBadRequest,
	domain.ErrImageIndex:          fiber.StatusBadRequest,
	domain.ErrFileTooLarge:        fiber.StatusBadRequest,
	domain.ErrTooManyFiles:        fiber.StatusBadRequest,
	domain.ErrInvalidFileType:     fiber.StatusBadRequest,
}

// respondError traduce un error de dominio al envelope {error}. Los errores
// no mapeados responden 500 con mensaje genérico y la causa queda en el log.
func respondError(c *fiber.Ctx, err error) error {
	for sentinel, status := range statusFor {
		if errors.Is(err, sentinel) {
			return c.Status(status).JSON(dto.ErrorResponse{Error: sentinel.Error()})
		}
	}
	log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Internal server error"})
}

// respondValidation responde 400 con todos los campos que fallaron.
func respondValidation(c *fiber.Ctx, details []dto.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:   "Validation failed",
		Details: details,
	})
}

func respondBadBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
}
