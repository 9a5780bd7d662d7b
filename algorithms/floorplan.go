package algorithms

import "wayfinder-backend/models"

const (
	DefaultFloorID     = "default"
	defaultFloorWidth  = 120
	defaultFloorHeight = 100
)

// DefaultFloorPlan returns the built-in single-storey house plan.
func DefaultFloorPlan() models.FloorPlan {
	return models.FloorPlan{
		ID:     DefaultFloorID,
		Name:   "House ground floor",
		Width:  defaultFloorWidth,
		Height: defaultFloorHeight,
		Walls: []models.Segment{
			models.VSeg(30, 60, 100), // garage
			models.VSeg(10, 10, 35),  // dining room, west side
			models.HSeg(35, 10, 25),  // kitchen / pantry
			models.VSeg(25, 35, 50),
			models.VSeg(25, 50, 65), // storage
			models.HSeg(65, 10, 25),
			models.VSeg(60, 50, 80), // living room / foyer
			models.HSeg(10, 35, 55), // covered patio
			models.VSeg(55, 10, 25),
			models.VSeg(70, 10, 35), // main bedroom
			models.HSeg(35, 70, 110),
			models.HSeg(45, 70, 85), // baths
			models.VSeg(85, 35, 55),
			models.VSeg(70, 55, 80), // lower bedroom
			models.VSeg(85, 70, 95), // study
			models.HSeg(70, 85, 110),
			models.HSeg(80, 60, 75), // foyer / porch
		},
		TrunkPaths: []models.Segment{
			models.HSeg(20, 12, 38),  // dining room
			models.HSeg(18, 38, 52),  // patio link
			models.HSeg(18, 52, 108), // main bedroom
			models.VSeg(38, 20, 62),  // living room corridor
			models.HSeg(62, 38, 95),  // lower bedroom
		},
		Rooms: []models.RoomRegion{
			{ID: "dining", Label: "Dining Room", X1: 11, Y1: 11, X2: 34, Y2: 34},
			{ID: "living", Label: "Living Room", X1: 26, Y1: 36, X2: 59, Y2: 79},
			{ID: "patio", Label: "Covered Patio", X1: 36, Y1: 11, X2: 54, Y2: 24},
			{ID: "bedroom_main", Label: "Main Bedroom", X1: 71, Y1: 11, X2: 109, Y2: 34},
			{ID: "bedroom_lower", Label: "Bedroom", X1: 71, Y1: 46, X2: 109, Y2: 79},
			{ID: "bath_upper", Label: "Bath", X1: 86, Y1: 36, X2: 100, Y2: 44},
			{ID: "bath_lower", Label: "Bath", X1: 86, Y1: 46, X2: 100, Y2: 54},
			{ID: "study", Label: "Study", X1: 86, Y1: 71, X2: 109, Y2: 94},
			{ID: "foyer", Label: "Foyer", X1: 61, Y1: 71, X2: 84, Y2: 94},
			{ID: "pantry", Label: "Pantry", X1: 11, Y1: 36, X2: 24, Y2: 49},
			{ID: "storage", Label: "Storage", X1: 11, Y1: 51, X2: 24, Y2: 64},
			{ID: "garage", Label: "Garage", X1: 11, Y1: 66, X2: 29, Y2: 94},
		},
	}
}
