package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes - API, 메트릭, WebSocket 라우트 등록
func SetupRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Wayfinder 서버가 실행 중입니다.")
	})

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "OK",
			"clients": Manager.GetClientCount(),
			"floors":  navigation.Registry().Count(),
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	api.Get("/buildings", HandleListBuildings)

	// 층 도면
	floors := api.Group("/floors")
	floors.Get("/", HandleListFloors)
	floors.Post("/", HandleUploadFloorPlan)
	floors.Get("/:floorId/grid", HandleGetFloorGrid)
	floors.Get("/:floorId/rooms", HandleGetRooms)
	floors.Get("/:floorId/cells/:x/:y", HandleGetCell)
	floors.Get("/:floorId/trunk/nearest", HandleNearestTrunk)
	floors.Get("/:floorId/logs", HandleGetFloorLogs)

	// 경로 탐색
	nav := api.Group("/navigation")
	nav.Post("/trunk", HandleRouteToTrunk)
	nav.Post("/route", HandleRouteBetween)
	nav.Get("/sessions/:sessionId", HandleGetSession)
	nav.Get("/sessions/:sessionId/route.geojson", HandleSessionGeoJSON)
	nav.Get("/sessions/:sessionId/route.csv", HandleSessionCSV)

	// 로그 조회 API
	logsAPI := api.Group("/logs")
	logsAPI.Get("/", HandleQueryLogs)        // 조건별 조회
	logsAPI.Get("/stats", HandleGetLogStats) // 통계

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// WebSocket
	app.Use("/websocket", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/websocket/web", websocket.New(HandleWebClientWebSocket))
}
