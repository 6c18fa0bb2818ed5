package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/LiamPeng/NYU-CC-k8s/domain/dto"
	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
)

// ========== Error messages ==========

const (
	MsgTitleRequired    = "title is required"
	MsgInvalidID        = "invalid id"
	MsgNotFound         = "not found"
	MsgStoreUnavailable = "store unavailable"
	MsgInternalError    = "internal error"
)

// ========== Success Responses ==========

func SuccessResponse(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

func CreatedResponse(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func OKResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(dto.OKResponse{OK: true})
}

// ========== Error Responses ==========

func ErrorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(dto.ErrorResponse{Error: message})
}

func BadRequestResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusBadRequest, message)
}

func NotFoundResponse(c *fiber.Ctx) error {
	return ErrorResponse(c, fiber.StatusNotFound, MsgNotFound)
}

func ServiceUnavailableResponse(c *fiber.Ctx) error {
	return ErrorResponse(c, fiber.StatusServiceUnavailable, MsgStoreUnavailable)
}

func InternalServerErrorResponse(c *fiber.Ctx) error {
	return ErrorResponse(c, fiber.StatusInternalServerError, MsgInternalError)
}

// StatusForError maps the todo error taxonomy onto an HTTP status and message.
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrInvalidIdentifier):
		return fiber.StatusBadRequest, MsgInvalidID
	case errors.Is(err, models.ErrEmptyTitle):
		return fiber.StatusBadRequest, models.ErrEmptyTitle.Error()
	case errors.Is(err, models.ErrNoFieldsToUpdate):
		return fiber.StatusBadRequest, models.ErrNoFieldsToUpdate.Error()
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound, MsgNotFound
	case errors.Is(err, models.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable, MsgStoreUnavailable
	default:
		return fiber.StatusInternalServerError, MsgInternalError
	}
}

// ServiceErrorResponse writes the JSON error body for a service error.
func ServiceErrorResponse(c *fiber.Ctx, err error) error {
	status, message := StatusForError(err)
	switch status {
	case fiber.StatusNotFound:
		return NotFoundResponse(c)
	case fiber.StatusServiceUnavailable:
		return ServiceUnavailableResponse(c)
	case fiber.StatusInternalServerError:
		return InternalServerErrorResponse(c)
	case fiber.StatusBadRequest:
		return BadRequestResponse(c, message)
	default:
		return ErrorResponse(c, status, message)
	}
}
