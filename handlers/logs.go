package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"wayfinder-backend/services"
)

// parseLogFilter - 쿼리 파라미터를 경로 로그 조건으로 변환
//
// session_id, floor_id, event_type, found(true/false), start/end(RFC3339), limit
func parseLogFilter(c *fiber.Ctx) (services.RouteLogFilter, error) {
	filter := services.RouteLogFilter{
		SessionID: c.Query("session_id"),
		FloorID:   c.Query("floor_id"),
		EventType: c.Query("event_type"),
	}

	switch filter.EventType {
	case "", services.OperationRouteToTrunk, services.OperationRouteBetween:
	default:
		return filter, fmt.Errorf("event_type must be %s or %s",
			services.OperationRouteToTrunk, services.OperationRouteBetween)
	}

	if s := c.Query("found"); s != "" {
		found, err := strconv.ParseBool(s)
		if err != nil {
			return filter, errors.New("found must be true or false")
		}
		filter.Found = &found
	}

	var err error
	if filter.Since, err = parseTimeParam(c, "start"); err != nil {
		return filter, err
	}
	if filter.Until, err = parseTimeParam(c, "end"); err != nil {
		return filter, err
	}
	if !filter.Since.IsZero() && !filter.Until.IsZero() && filter.Until.Before(filter.Since) {
		return filter, errors.New("end is before start")
	}

	if s := c.Query("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit <= 0 {
			return filter, errors.New("limit must be a positive integer")
		}
		filter.Limit = limit
	}
	return filter, nil
}

func parseTimeParam(c *fiber.Ctx, name string) (time.Time, error) {
	s := c.Query(name)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s time format (use RFC3339)", name)
	}
	return t, nil
}

// HandleQueryLogs - 조건별 경로 로그 조회 (최신순)
func HandleQueryLogs(c *fiber.Ctx) error {
	filter, err := parseLogFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return respondLogs(c, filter)
}

// HandleGetFloorLogs - 한 층의 경로 로그 조회
func HandleGetFloorLogs(c *fiber.Ctx) error {
	floorID := c.Params("floorId")
	if _, err := navigation.Registry().Get(floorID); err != nil {
		return sendError(c, err)
	}
	filter, err := parseLogFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	filter.FloorID = floorID
	return respondLogs(c, filter)
}

func respondLogs(c *fiber.Ctx, filter services.RouteLogFilter) error {
	logs, err := services.QueryRouteLogs(filter)
	if err != nil {
		return logQueryError(c, err, "Failed to fetch logs")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(logs),
		"logs":    logs,
	})
}

// HandleGetLogStats - 경로 로그 통계 (조회 조건 동일)
func HandleGetLogStats(c *fiber.Ctx) error {
	filter, err := parseLogFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	stats, err := services.GetLogStats(filter)
	if err != nil {
		return logQueryError(c, err, "Failed to fetch stats")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}

// logQueryError - DB 미연결은 503, 그 외는 500
func logQueryError(c *fiber.Ctx, err error, message string) error {
	status := errorStatus(err)
	if status != fiber.StatusServiceUnavailable {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}
