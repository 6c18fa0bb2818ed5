package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/LiamPeng/NYU-CC-k8s/domain/dto"
	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
	"github.com/LiamPeng/NYU-CC-k8s/domain/services"
	"github.com/LiamPeng/NYU-CC-k8s/pkg/logger"
	"github.com/LiamPeng/NYU-CC-k8s/pkg/utils"
)

type TodoHandler struct {
	todoService services.TodoService
}

func NewTodoHandler(todoService services.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

func (h *TodoHandler) ListTodos(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.ListTodosRequest
	if err := c.QueryParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid query parameters", "error", err)
		return utils.BadRequestResponse(c, "invalid query")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		errs := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errs)
		return utils.BadRequestResponse(c, utils.ValidationMessage(err))
	}

	filter := models.FilterAll
	switch req.Done {
	case "true":
		filter = models.FilterDone
	case "false":
		filter = models.FilterNotDone
	}

	todos, err := h.todoService.ListTodos(ctx, filter)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.TodosToResponses(todos))
}

func (h *TodoHandler) CreateTodo(c *fiber.Ctx) error {
	ctx := c.UserContext()

	req := dto.ParseCreateTodoRequest(c.Body())

	todo, err := h.todoService.CreateTodo(ctx, req)
	if err != nil {
		if errors.Is(err, models.ErrEmptyTitle) {
			return utils.BadRequestResponse(c, utils.MsgTitleRequired)
		}
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.CreatedResponse(c, dto.TodoToResponse(todo))
}

func (h *TodoHandler) GetTodo(c *fiber.Ctx) error {
	todo, err := h.todoService.GetTodo(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.TodoToResponse(todo))
}

func (h *TodoHandler) PatchTodo(c *fiber.Ctx) error {
	req := dto.ParsePatchTodoRequest(c.Body())

	todo, err := h.todoService.PatchTodo(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.TodoToResponse(todo))
}

func (h *TodoHandler) ToggleTodo(c *fiber.Ctx) error {
	todo, err := h.todoService.ToggleDone(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.TodoToResponse(todo))
}

func (h *TodoHandler) DeleteTodo(c *fiber.Ctx) error {
	if err := h.todoService.DeleteTodo(c.UserContext(), c.Params("id")); err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.OKResponse(c)
}

func (h *TodoHandler) SearchTodos(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.SearchTodosRequest
	if err := c.QueryParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid query parameters", "error", err)
		return utils.BadRequestResponse(c, "invalid query")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		errs := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errs)
		return utils.BadRequestResponse(c, utils.ValidationMessage(err))
	}

	result, err := h.todoService.SearchTodos(ctx, req.Key, req.Field, false)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.SearchTodosResponse{
		Todos:   dto.TodosToResponses(result.Todos),
		Message: result.Message,
	})
}
