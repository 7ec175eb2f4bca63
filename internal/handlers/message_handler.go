package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nlam511/geo-message/internal/httpx"
	"github.com/nlam511/geo-message/internal/models"
	"github.com/nlam511/geo-message/internal/repository"
	"github.com/nlam511/geo-message/internal/service"
)

type MessageHandler struct {
	dropService       *service.DropService
	nearbyService     *service.NearbyService
	collectionService *service.CollectionService
}

func NewMessageHandler(
	dropService *service.DropService,
	nearbyService *service.NearbyService,
	collectionService *service.CollectionService,
) *MessageHandler {
	return &MessageHandler{
		dropService:       dropService,
		nearbyService:     nearbyService,
		collectionService: collectionService,
	}
}

func (h *MessageHandler) Drop(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}
	tier := models.ParseTier(httpx.LocalString(c, "tier"))

	var input service.DropInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	message, err := h.dropService.Drop(userID, tier, input, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return httpx.BadRequest(c, "invalid_message", err.Error())
		case errors.Is(err, repository.ErrQuotaExceeded):
			return httpx.TooManyRequests(c, "quota_exceeded", "Daily drop limit reached")
		default:
			return httpx.Internal(c, "drop_failed")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      message.ID,
		"uuid":    message.UUID,
		"message": "Message dropped successfully.",
	})
}

func (h *MessageHandler) Nearby(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return httpx.BadRequest(c, "invalid_latitude", "latitude is required and must be in [-90, 90]")
	}
	lon, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil || lon < -180 || lon > 180 {
		return httpx.BadRequest(c, "invalid_longitude", "longitude is required and must be in [-180, 180]")
	}

	// Optional override, mostly for development; the default comes from
	// server configuration, not the caller's tier.
	radius := 0.0
	if radiusStr := c.Query("radius"); radiusStr != "" {
		r, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil || r <= 0 || r > 10000 {
			return httpx.BadRequest(c, "invalid_radius", "radius must be in (0, 10000] meters")
		}
		radius = r
	}

	messages, err := h.nearbyService.Nearby(userID, lat, lon, radius)
	if err != nil {
		return httpx.Internal(c, "nearby_query_failed")
	}

	return c.JSON(fiber.Map{
		"messages": messages,
		"count":    len(messages),
	})
}

func (h *MessageHandler) Collect(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}
	messageID, err := parseMessageID(c)
	if err != nil {
		return httpx.BadRequest(c, "invalid_message_id", "Invalid message id")
	}

	if err := h.collectionService.Collect(userID, messageID, time.Now()); err != nil {
		switch {
		case repository.IsNotFound(err):
			return httpx.NotFound(c, "message_not_found", "Message not found")
		case errors.Is(err, repository.ErrAlreadyCollected):
			return httpx.Conflict(c, "already_collected", "Message already collected")
		default:
			return httpx.Internal(c, "collect_failed")
		}
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *MessageHandler) Uncollect(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}
	messageID, err := parseMessageID(c)
	if err != nil {
		return httpx.BadRequest(c, "invalid_message_id", "Invalid message id")
	}

	if err := h.collectionService.Uncollect(userID, messageID); err != nil {
		return httpx.Internal(c, "uncollect_failed")
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *MessageHandler) Hide(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}
	messageID, err := parseMessageID(c)
	if err != nil {
		return httpx.BadRequest(c, "invalid_message_id", "Invalid message id")
	}

	if err := h.collectionService.Hide(userID, messageID, time.Now()); err != nil {
		return httpx.Internal(c, "hide_failed")
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *MessageHandler) ListCollected(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	rows, err := h.collectionService.ListCollected(userID)
	if err != nil {
		return httpx.Internal(c, "fetch_collected_failed")
	}

	return c.JSON(fiber.Map{
		"messages": rows,
		"count":    len(rows),
	})
}

func parseMessageID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid message id")
	}
	return uint(id), nil
}
