package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nlam511/geo-message/internal/httpx"
	"github.com/nlam511/geo-message/internal/models"
	"github.com/nlam511/geo-message/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetCurrentUser(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		return httpx.NotFound(c, "user_not_found", "User not found")
	}

	return c.JSON(user.ToResponse())
}

func (h *UserHandler) GetQuota(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}
	tier := models.ParseTier(httpx.LocalString(c, "tier"))

	status, err := h.userService.GetQuota(userID, tier, time.Now())
	if err != nil {
		return httpx.Internal(c, "fetch_quota_failed")
	}

	return c.JSON(status)
}
