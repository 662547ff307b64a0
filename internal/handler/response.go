package handler

import (
	"errors"
	"strconv"

	"go-commerce-api/internal/middleware"
	"go-commerce-api/internal/rule"
	"go-commerce-api/internal/service"
	"go-commerce-api/pkg/jwt"
	"go-commerce-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

var notFoundErrors = []error{
	gorm.ErrRecordNotFound,
	service.ErrUserNotFound,
	service.ErrRoleNotFound,
	service.ErrProductNotFound,
	service.ErrVariantNotFound,
	service.ErrBrandNotFound,
	service.ErrCategoryNotFound,
	service.ErrOrderNotFound,
	service.ErrCouponNotFound,
}

var unauthorizedErrors = []error{
	service.ErrInvalidCredentials,
	service.ErrUserInactive,
	service.ErrSessionReplaced,
	jwt.ErrInvalidToken,
	jwt.ErrMissingToken,
}

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	if ve, ok := rule.AsValidation(err); ok {
		if ve.Kind == rule.UniquenessViolation {
			return fiber.StatusConflict
		}
		return fiber.StatusBadRequest
	}

	var fe *validator.FieldError
	if errors.As(err, &fe) {
		return fiber.StatusBadRequest
	}

	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return fiber.StatusNotFound
		}
	}
	for _, target := range unauthorizedErrors {
		if errors.Is(err, target) {
			return fiber.StatusUnauthorized
		}
	}
	if errors.Is(err, service.ErrOrderNotPending) {
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// fail writes {"error": msg}. Internal errors are logged and hidden from the client.
func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		zerolog.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return c.Status(status).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	return id, err == nil
}

// pagination reads ?limit=&offset=, clamping limit to maxLimit.
func pagination(c *fiber.Ctx) service.Pagination {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset, err := strconv.Atoi(c.Query("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return service.Pagination{Limit: limit, Offset: offset}
}

// actor is the caller as set by middleware.RequireAuth.
func actor(c *fiber.Ctx) service.Actor {
	email, _ := c.Locals(middleware.LocalUserEmail).(string)
	name, _ := c.Locals(middleware.LocalUserName).(string)
	return service.Actor{ID: middleware.UserID(c), Email: email, Username: name}
}
