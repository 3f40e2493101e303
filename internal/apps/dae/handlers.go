package dae

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/macormexico/sistema-pnc/internal/dto"
	"github.com/macormexico/sistema-pnc/internal/identity"
	"github.com/macormexico/sistema-pnc/internal/services"
)

func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Message: message})
}

// serviceError maps service errors to responses; fallback is the 500 message.
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, ErrValidation):
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrCatalogNotFound), errors.Is(err, services.ErrUserNotFound):
		return errorResponse(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrLastAdmin):
		return errorResponse(c, fiber.StatusConflict, err.Error())
	}
	slog.Error(fallback, "error", err, "path", c.Path())
	return errorResponse(c, fiber.StatusInternalServerError, fallback)
}

type CatalogHandler struct {
	service *CatalogService
}

func NewCatalogHandler(service *CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) List(c *fiber.Ctx) error {
	items, err := h.service.List(c.Query("categoria"))
	if err != nil {
		return serviceError(c, err, "Failed to fetch catalogs")
	}
	return c.JSON(CatalogListResponse{Success: true, Catalogs: items})
}

func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var req CatalogRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	item, err := h.service.Create(req)
	if err != nil {
		return serviceError(c, err, "Failed to create catalog item")
	}
	return c.Status(fiber.StatusCreated).JSON(CatalogResponse{Success: true, Catalog: item})
}

func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		return serviceError(c, err, "Failed to delete catalog item")
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Catalog item deleted"})
}

type UserHandler struct {
	service *UserService
}

func NewUserHandler(service *UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.service.List()
	if err != nil {
		return serviceError(c, err, "Failed to fetch users")
	}
	return c.JSON(UserListResponse{Success: true, Users: users})
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.service.Create(req)
	if err != nil {
		return serviceError(c, err, "Failed to create user")
	}
	return c.Status(fiber.StatusCreated).JSON(UserResponse{Success: true, User: user})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.service.Update(c.Params("id"), req)
	if err != nil {
		return serviceError(c, err, "Failed to update user")
	}
	return c.JSON(UserResponse{Success: true, User: user})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if me, err := identity.FromContext(c); err == nil && me.UserID == id {
		return errorResponse(c, fiber.StatusBadRequest, "You cannot delete your own account")
	}

	if err := h.service.Delete(id); err != nil {
		return serviceError(c, err, "Failed to delete user")
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "User deleted"})
}
