package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"fleethr/repository"
)

// storeError maps repository failures onto the HTTP error taxonomy. The
// underlying message is surfaced on 500s; this is an internal tool.
func storeError(c *fiber.Ctx, log *zap.Logger, err error, conflictMsg string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "record not found"})
	case errors.Is(err, repository.ErrDuplicate):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": conflictMsg})
	default:
		log.Error("store operation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
