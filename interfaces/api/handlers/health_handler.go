package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LiamPeng/NYU-CC-k8s/domain/dto"
	"github.com/LiamPeng/NYU-CC-k8s/domain/services"
)

type HealthHandler struct {
	healthService services.HealthService
}

func NewHealthHandler(healthService services.HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

// Liveness ตอบ ok ตราบใดที่ process ยังทำงาน
func (h *HealthHandler) Liveness(c *fiber.Ctx) error {
	return c.JSON(dto.StatusResponse{Status: "ok"})
}

// Readiness ต้อง ping store ได้ถึงจะถือว่าพร้อม
func (h *HealthHandler) Readiness(c *fiber.Ctx) error {
	if !h.healthService.IsReady(c.UserContext()) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.StatusResponse{
			Status: "not-ready",
			Reason: h.healthService.StoreName() + " unreachable",
		})
	}
	return c.JSON(dto.StatusResponse{Status: "ready"})
}
