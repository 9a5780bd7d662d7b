package handlers

import (
	"github.com/gofiber/fiber/v2"

	"wayfinder-backend/services"
)

// HandleListBuildings - 건물 및 층 목록 (DB)
func HandleListBuildings(c *fiber.Ctx) error {
	buildings, err := services.ListBuildings()
	if err != nil {
		return sendError(c, err)
	}

	out := make([]fiber.Map, 0, len(buildings))
	for _, b := range buildings {
		floors := make([]string, 0, len(b.Floors))
		for _, f := range b.Floors {
			floors = append(floors, f.RegistryKey())
		}
		out = append(out, fiber.Map{
			"id":     b.ID,
			"name":   b.DisplayName(),
			"campus": b.Campus,
			"floors": floors,
		})
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"count":     len(out),
		"buildings": out,
	})
}
