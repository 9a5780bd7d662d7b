package services

import (
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"wayfinder-backend/models"
)

// RouteGeoJSON - 경로를 GeoJSON FeatureCollection 으로 변환
// 좌표는 셀 중심 (x+0.5, y+0.5)
func RouteGeoJSON(result *RouteResult) ([]byte, error) {
	if !result.Found() {
		return nil, fmt.Errorf("경로가 없습니다: session %s", result.SessionID)
	}

	fc := geojson.NewFeatureCollection()

	var geometry orb.Geometry
	if len(result.Route) == 1 {
		geometry = cellCenter(result.Route[0])
	} else {
		line := make(orb.LineString, 0, len(result.Route))
		for _, c := range result.Route {
			line = append(line, cellCenter(c))
		}
		geometry = line
	}

	route := geojson.NewFeature(geometry)
	route.Properties["kind"] = "route"
	route.Properties["session_id"] = result.SessionID
	route.Properties["floor_id"] = result.FloorID
	route.Properties["cost"] = result.Route.Cost()
	route.Properties["waypoints"] = len(result.Route)
	if len(result.Rooms) > 0 {
		route.Properties["rooms"] = result.Rooms
	}
	fc.Append(route)

	if result.Junction != nil {
		junction := geojson.NewFeature(cellCenter(*result.Junction))
		junction.Properties["kind"] = "junction"
		fc.Append(junction)
	}

	return fc.MarshalJSON()
}

func cellCenter(c models.Coordinate) orb.Point {
	return orb.Point{float64(c.X) + 0.5, float64(c.Y) + 0.5}
}

// routeCSVRow - CSV 한 줄
type routeCSVRow struct {
	Index          int     `csv:"index"`
	X              int     `csv:"x"`
	Y              int     `csv:"y"`
	StepCost       float64 `csv:"step_cost"`
	CumulativeCost float64 `csv:"cumulative_cost"`
	Room           string  `csv:"room"`
}

// RouteCSV - 경로를 CSV 로 변환
func RouteCSV(result *RouteResult, rooms *RoomIndex) ([]byte, error) {
	if !result.Found() {
		return nil, fmt.Errorf("경로가 없습니다: session %s", result.SessionID)
	}

	rows := make([]*routeCSVRow, 0, len(result.Route))
	total := 0.0
	for i, c := range result.Route {
		step := 0.0
		if i > 0 {
			step = models.StepCost(result.Route[i-1], c)
		}
		total += step
		row := &routeCSVRow{Index: i, X: c.X, Y: c.Y, StepCost: step, CumulativeCost: total}
		if rooms != nil {
			if r, ok := rooms.RoomAt(c); ok {
				row.Room = r.ID
			}
		}
		rows = append(rows, row)
	}
	return gocsv.MarshalBytes(&rows)
}
