package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/LiamPeng/NYU-CC-k8s/pkg/logger"
	"github.com/LiamPeng/NYU-CC-k8s/pkg/utils"
)

// ErrorHandler renders errors that escape a handler as {"error": "..."}.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := utils.MsgInternalError

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
			if code == fiber.StatusNotFound {
				message = utils.MsgNotFound
			}
		} else {
			code, message = utils.StatusForError(err)
		}

		if code >= fiber.StatusInternalServerError {
			logger.ErrorContext(c.UserContext(), "Unhandled error", "path", c.Path(), "error", err)
		}

		return utils.ErrorResponse(c, code, message)
	}
}
