package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"wayfinder-backend/models"
	"wayfinder-backend/services"
)

var (
	navigation *services.NavigationService
	startedAt  = time.Now()
)

// InitNavigation - 탐색 서비스 연결
func InitNavigation(service *services.NavigationService) {
	navigation = service
}

type NavigationRequest struct {
	SessionID string             `json:"session_id"`
	FloorID   string             `json:"floor_id"`
	From      *models.Coordinate `json:"from"`
	To        *models.Coordinate `json:"to"`
}

type NavigationResponse struct {
	Success   bool                `json:"success"`
	SessionID string              `json:"session_id,omitempty"`
	FloorID   string              `json:"floor_id,omitempty"`
	Operation string              `json:"operation,omitempty"`
	Route     []models.Coordinate `json:"route,omitempty"`
	Junction  *models.Coordinate  `json:"junction,omitempty"`
	Cost      float64             `json:"cost"`
	Rooms     []string            `json:"rooms,omitempty"`
	Message   string              `json:"message,omitempty"`
}

func newNavigationResponse(result *services.RouteResult) NavigationResponse {
	resp := NavigationResponse{
		Success:   result.Found(),
		SessionID: result.SessionID,
		FloorID:   result.FloorID,
		Operation: result.Operation,
		Route:     result.Route,
		Junction:  result.Junction,
		Cost:      result.Route.Cost(),
		Rooms:     result.Rooms,
	}
	if resp.Success {
		resp.Message = "경로 탐색 성공"
	} else {
		resp.Message = "경로를 찾을 수 없습니다"
	}
	return resp
}

func errorBody(err error) fiber.Map {
	return fiber.Map{"error": err.Error()}
}

// errorStatus - 서비스 오류를 HTTP 상태 코드로 변환
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrFloorNotFound), errors.Is(err, services.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrNoDatabase):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(errorBody(err))
}

func parseNavigationRequest(c *fiber.Ctx, needTo bool) (models.NavigateRequest, error) {
	var req NavigationRequest
	if err := c.BodyParser(&req); err != nil {
		return models.NavigateRequest{}, errors.New("잘못된 요청 형식입니다")
	}
	if req.FloorID == "" {
		return models.NavigateRequest{}, errors.New("floor_id 가 필요합니다")
	}
	if req.From == nil {
		return models.NavigateRequest{}, errors.New("from 이 필요합니다")
	}
	if needTo && req.To == nil {
		return models.NavigateRequest{}, errors.New("to 가 필요합니다")
	}

	out := models.NavigateRequest{
		SessionID: req.SessionID,
		FloorID:   req.FloorID,
		From:      *req.From,
	}
	if needTo {
		out.To = req.To
	}
	return out, nil
}

func handleNavigate(c *fiber.Ctx, needTo bool) error {
	req, err := parseNavigationRequest(c, needTo)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(NavigationResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	result, err := navigation.Navigate(req)
	if err != nil {
		return sendError(c, err)
	}
	// 경로 없음도 정상 응답
	return c.Status(fiber.StatusOK).JSON(newNavigationResponse(result))
}

// HandleRouteToTrunk - 현재 위치 → 가장 가까운 주 경로
func HandleRouteToTrunk(c *fiber.Ctx) error {
	return handleNavigate(c, false)
}

// HandleRouteBetween - 현재 위치 → 주 경로 → 목적지
func HandleRouteBetween(c *fiber.Ctx) error {
	return handleNavigate(c, true)
}

// HandleGetSession - 세션의 현재 경로
func HandleGetSession(c *fiber.Ctx) error {
	result, err := navigation.CurrentRoute(c.Params("sessionId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(newNavigationResponse(result))
}

// HandleSessionGeoJSON - 현재 경로 GeoJSON
func HandleSessionGeoJSON(c *fiber.Ctx) error {
	result, err := navigation.CurrentRoute(c.Params("sessionId"))
	if err != nil {
		return sendError(c, err)
	}
	if !result.Found() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "현재 경로가 없습니다"})
	}

	data, err := services.RouteGeoJSON(result)
	if err != nil {
		return sendError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(data)
}

// HandleSessionCSV - 현재 경로 CSV
func HandleSessionCSV(c *fiber.Ctx) error {
	result, err := navigation.CurrentRoute(c.Params("sessionId"))
	if err != nil {
		return sendError(c, err)
	}
	if !result.Found() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "현재 경로가 없습니다"})
	}

	floor, err := navigation.Registry().Get(result.FloorID)
	if err != nil {
		return sendError(c, err)
	}
	data, err := services.RouteCSV(result, floor.Rooms)
	if err != nil {
		return sendError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="route-`+result.SessionID+`.csv"`)
	return c.Send(data)
}
