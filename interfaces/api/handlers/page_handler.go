package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/LiamPeng/NYU-CC-k8s/domain/dto"
	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
	"github.com/LiamPeng/NYU-CC-k8s/domain/services"
	"github.com/LiamPeng/NYU-CC-k8s/pkg/logger"
	"github.com/LiamPeng/NYU-CC-k8s/pkg/utils"
)

const pageLayout = "layout"

// PageHandler serves the server-rendered form pages.
type PageHandler struct {
	todoService services.TodoService
	title       string
	heading     string
}

func NewPageHandler(todoService services.TodoService, title, heading string) *PageHandler {
	return &PageHandler{
		todoService: todoService,
		title:       title,
		heading:     heading,
	}
}

func (h *PageHandler) Uncompleted(c *fiber.Ctx) error {
	return h.renderList(c, models.FilterNotDone, "uncompleted")
}

func (h *PageHandler) All(c *fiber.Ctx) error {
	return h.renderList(c, models.FilterAll, "list")
}

func (h *PageHandler) Completed(c *fiber.Ctx) error {
	return h.renderList(c, models.FilterDone, "completed")
}

func (h *PageHandler) renderList(c *fiber.Ctx, filter models.DoneFilter, active string) error {
	todos, err := h.todoService.ListTodos(c.UserContext(), filter)
	if err != nil {
		return h.renderServiceError(c, err)
	}
	return c.Render("index", h.data(fiber.Map{
		"Active": active,
		"Todos":  dto.TodosToViews(todos),
	}), pageLayout)
}

// Create handles the add form (name, desc, date, pr).
func (h *PageHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid form body", "error", err)
		return h.renderError(c, fiber.StatusBadRequest, "invalid form")
	}

	if _, err := h.todoService.CreateTodo(ctx, &req); err != nil {
		if errors.Is(err, models.ErrEmptyTitle) {
			return h.renderError(c, fiber.StatusBadRequest, utils.MsgTitleRequired)
		}
		return h.renderServiceError(c, err)
	}
	return c.Redirect("/list")
}

func (h *PageHandler) Edit(c *fiber.Ctx) error {
	todo, err := h.todoService.GetTodo(c.UserContext(), c.Query("_id"))
	if err != nil {
		status, message := utils.StatusForError(err)
		// id เสียหรือไม่มีในระบบ แสดงเป็น 404 เหมือนกัน
		if status == fiber.StatusBadRequest {
			status, message = fiber.StatusNotFound, utils.MsgNotFound
		}
		return h.renderError(c, status, message)
	}
	return c.Render("update", h.data(fiber.Map{
		"Todo": dto.TodoToView(todo),
	}), pageLayout)
}

// Update handles the edit form posted with _id.
func (h *PageHandler) Update(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var form dto.UpdateTodoForm
	if err := c.BodyParser(&form); err != nil {
		logger.WarnContext(ctx, "Invalid form body", "error", err)
		return h.renderError(c, fiber.StatusBadRequest, "invalid form")
	}

	if _, err := h.todoService.PatchTodo(ctx, form.ID, form.ToPatchRequest()); err != nil {
		return h.renderServiceError(c, err)
	}
	return c.Redirect("/")
}

func (h *PageHandler) Toggle(c *fiber.Ctx) error {
	if _, err := h.todoService.ToggleDone(c.UserContext(), c.Query("_id")); err != nil {
		return h.renderServiceError(c, err)
	}
	return c.Redirect(h.redirectTarget(c))
}

func (h *PageHandler) Remove(c *fiber.Ctx) error {
	if err := h.todoService.DeleteTodo(c.UserContext(), c.Query("_id")); err != nil {
		return h.renderServiceError(c, err)
	}
	return c.Redirect("/")
}

func (h *PageHandler) Search(c *fiber.Ctx) error {
	result, err := h.todoService.SearchTodos(c.UserContext(), c.Query("key"), c.Query("refer"), true)
	if err != nil {
		return h.renderServiceError(c, err)
	}
	return c.Render("searchlist", h.data(fiber.Map{
		"Active": "uncompleted",
		"Todos":  dto.TodosToViews(result.Todos),
		"Error":  result.Message,
	}), pageLayout)
}

func (h *PageHandler) About(c *fiber.Ctx) error {
	return c.Render("credits", h.data(fiber.Map{}), pageLayout)
}

// redirectTarget: next query > Referer > "/". next ต้องเป็น path ภายในเท่านั้น
func (h *PageHandler) redirectTarget(c *fiber.Ctx) string {
	if next := c.Query("next"); strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	if referer := c.Get(fiber.HeaderReferer); referer != "" {
		return referer
	}
	return "/"
}

func (h *PageHandler) renderServiceError(c *fiber.Ctx, err error) error {
	status, message := utils.StatusForError(err)
	return h.renderError(c, status, message)
}

func (h *PageHandler) renderError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).Render("error", h.data(fiber.Map{
		"Status":  status,
		"Message": message,
	}), pageLayout)
}

func (h *PageHandler) data(m fiber.Map) fiber.Map {
	m["Title"] = h.title
	m["Heading"] = h.heading
	if _, ok := m["Active"]; !ok {
		m["Active"] = ""
	}
	return m
}
