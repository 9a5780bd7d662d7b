package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"wayfinder-backend/models"
	"wayfinder-backend/services"
)

type FloorSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Source     string `json:"source"`
	TrunkCells int    `json:"trunk_cells"`
	Rooms      int    `json:"rooms"`
}

// RoomLabel - 방 영역과 라벨 위치
type RoomLabel struct {
	models.RoomRegion
	Center models.Coordinate `json:"center"`
}

func roomLabels(rooms []models.RoomRegion) []RoomLabel {
	out := make([]RoomLabel, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomLabel{RoomRegion: r, Center: r.Center()})
	}
	return out
}

func lookupFloor(c *fiber.Ctx) (*services.FloorEntry, error) {
	return navigation.Registry().Get(c.Params("floorId"))
}

// HandleListFloors - 등록된 층 목록
func HandleListFloors(c *fiber.Ctx) error {
	entries := navigation.Registry().List()
	floors := make([]FloorSummary, 0, len(entries))
	for _, e := range entries {
		floors = append(floors, FloorSummary{
			ID:         e.ID,
			Name:       e.Plan.Name,
			Width:      e.Plan.Width,
			Height:     e.Plan.Height,
			Source:     e.Source,
			TrunkCells: len(e.Grid.TrunkPathCells()),
			Rooms:      len(e.Plan.Rooms),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(floors),
		"floors":  floors,
	})
}

// HandleGetFloorGrid - 렌더링용 격자 ('#' 벽, '=' 주 경로, '.' 통로)
func HandleGetFloorGrid(c *fiber.Ctx) error {
	floor, err := lookupFloor(c)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"id":      floor.ID,
		"width":   floor.Grid.Width(),
		"height":  floor.Grid.Height(),
		"rows":    floor.Grid.Rows(),
		"trunk":   floor.Grid.TrunkPathCells(),
		"rooms":   roomLabels(floor.Rooms.Rooms()),
	})
}

// HandleGetRooms - 보이는 영역의 방 목록. 영역을 생략하면 전체
func HandleGetRooms(c *fiber.Ctx) error {
	floor, err := lookupFloor(c)
	if err != nil {
		return sendError(c, err)
	}
	x1 := c.QueryInt("x1", 0)
	y1 := c.QueryInt("y1", 0)
	x2 := c.QueryInt("x2", floor.Grid.Width()-1)
	y2 := c.QueryInt("y2", floor.Grid.Height()-1)

	rooms := floor.Rooms.RoomsInView(x1, y1, x2, y2)
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(rooms),
		"rooms":   roomLabels(rooms),
	})
}

// HandleGetCell - 셀 하나 조회
func HandleGetCell(c *fiber.Ctx) error {
	floor, err := lookupFloor(c)
	if err != nil {
		return sendError(c, err)
	}
	x, errX := strconv.Atoi(c.Params("x"))
	y, errY := strconv.Atoi(c.Params("y"))
	if errX != nil || errY != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "x, y 는 정수여야 합니다"})
	}

	pos := models.Coordinate{X: x, Y: y}
	cell, ok := floor.Grid.CellAt(pos)
	if !ok {
		return c.JSON(fiber.Map{"success": true, "found": false})
	}
	resp := fiber.Map{
		"success":  true,
		"found":    true,
		"x":        x,
		"y":        y,
		"walkable": cell.Walkable,
		"trunk":    cell.OnTrunkPath,
	}
	if cell.HasRoom() {
		resp["room"] = cell.RoomID
	}
	return c.JSON(resp)
}

// HandleNearestTrunk - 가장 가까운 주 경로 셀
func HandleNearestTrunk(c *fiber.Ctx) error {
	x, errX := strconv.Atoi(c.Query("x"))
	y, errY := strconv.Atoi(c.Query("y"))
	if errX != nil || errY != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "x, y 쿼리 파라미터가 필요합니다"})
	}

	point, ok, err := navigation.NearestTrunkPoint(c.Params("floorId"), models.Coordinate{X: x, Y: y})
	if err != nil {
		return sendError(c, err)
	}
	if !ok {
		return c.JSON(fiber.Map{"success": false, "message": "주 경로가 없습니다"})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"point":   point,
	})
}

// HandleUploadFloorPlan - 도면 등록 (YAML 또는 JSON 본문)
// building, floor 쿼리가 있고 DB 가 연결되어 있으면 저장까지 한다
func HandleUploadFloorPlan(c *fiber.Ctx) error {
	plan, err := services.ParseFloorPlan(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(err))
	}

	source := services.FloorSourceFile
	buildingID, floorKey := c.Query("building"), c.Query("floor")
	if buildingID != "" && floorKey != "" {
		building := models.Building{ID: buildingID, Name: c.Query("building_name", buildingID)}
		saved, err := services.SaveFloorPlan(building, floorKey, plan)
		if err != nil {
			return sendError(c, err)
		}
		plan.ID = saved.RegistryKey()
		source = services.FloorSourceDatabase
	}

	entry, err := navigation.Registry().Register(plan, source)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(err))
	}
	NotifyFloorRegistered(entry)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"id":      entry.ID,
		"width":   entry.Plan.Width,
		"height":  entry.Plan.Height,
		"source":  entry.Source,
	})
}
