package models

import "time"

// Building - 건물 정보 (buildings 테이블)
type Building struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `json:"name"`
	Campus    string    `json:"campus"`
	CreatedAt time.Time `json:"created_at"`

	Floors []Floor `gorm:"foreignKey:BuildingID" json:"floors,omitempty"`
}

// DisplayName - "이름 (캠퍼스)" 형식
func (b Building) DisplayName() string {
	if b.Campus == "" {
		return b.Name
	}
	return b.Name + " (" + b.Campus + ")"
}

// Floor - 층 정보 (floors 테이블)
type Floor struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	BuildingID string `gorm:"size:64;index;uniqueIndex:idx_building_floor" json:"building_id"`
	Key        string `gorm:"size:64;uniqueIndex:idx_building_floor" json:"key"` // 예: "floor1"
	Width      int    `json:"width"`
	Height     int    `json:"height"`

	Walls         []WallRecord         `gorm:"foreignKey:FloorID" json:"walls,omitempty"`
	TrunkSegments []TrunkSegmentRecord `gorm:"foreignKey:FloorID" json:"trunk_segments,omitempty"`
	Rooms         []RoomRecord         `gorm:"foreignKey:FloorID" json:"rooms,omitempty"`
}

// RegistryKey - 레지스트리에 등록할 층 식별자 "buildingID/floorKey"
func (f Floor) RegistryKey() string {
	return f.BuildingID + "/" + f.Key
}

// WallRecord - 벽 구간 (walls 테이블)
type WallRecord struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	FloorID uint `gorm:"index" json:"floor_id"`
	X1      int  `json:"x1"`
	Y1      int  `json:"y1"`
	X2      int  `json:"x2"`
	Y2      int  `json:"y2"`
}

// TableName - 원본 데이터 구조와 동일한 테이블 이름 사용
func (WallRecord) TableName() string { return "walls" }

// TrunkSegmentRecord - 주 경로 구간 (trunk_segments 테이블)
type TrunkSegmentRecord struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	FloorID uint `gorm:"index" json:"floor_id"`
	X1      int  `json:"x1"`
	Y1      int  `json:"y1"`
	X2      int  `json:"x2"`
	Y2      int  `json:"y2"`
}

func (TrunkSegmentRecord) TableName() string { return "trunk_segments" }

// RoomRecord - 방 영역 (room_regions 테이블)
type RoomRecord struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	FloorID uint   `gorm:"index" json:"floor_id"`
	RoomID  string `gorm:"size:64" json:"room_id"`
	Label   string `json:"label"`
	X1      int    `json:"x1"`
	Y1      int    `json:"y1"`
	X2      int    `json:"x2"`
	Y2      int    `json:"y2"`
}

func (RoomRecord) TableName() string { return "room_regions" }

// ToFloorPlan - DB 레코드를 FloorPlan 으로 변환
func (f Floor) ToFloorPlan() FloorPlan {
	plan := FloorPlan{
		ID:         f.RegistryKey(),
		Name:       f.Key,
		Width:      f.Width,
		Height:     f.Height,
		Walls:      make([]Segment, 0, len(f.Walls)),
		TrunkPaths: make([]Segment, 0, len(f.TrunkSegments)),
		Rooms:      make([]RoomRegion, 0, len(f.Rooms)),
	}
	for _, w := range f.Walls {
		plan.Walls = append(plan.Walls, Segment{X1: w.X1, Y1: w.Y1, X2: w.X2, Y2: w.Y2})
	}
	for _, t := range f.TrunkSegments {
		plan.TrunkPaths = append(plan.TrunkPaths, Segment{X1: t.X1, Y1: t.Y1, X2: t.X2, Y2: t.Y2})
	}
	for _, r := range f.Rooms {
		plan.Rooms = append(plan.Rooms, RoomRegion{ID: r.RoomID, Label: r.Label, X1: r.X1, Y1: r.Y1, X2: r.X2, Y2: r.Y2})
	}
	return plan
}

// FloorFromPlan - FloorPlan 을 DB 레코드로 변환
func FloorFromPlan(buildingID, key string, plan FloorPlan) Floor {
	f := Floor{
		BuildingID: buildingID,
		Key:        key,
		Width:      plan.Width,
		Height:     plan.Height,
	}
	for _, w := range plan.Walls {
		f.Walls = append(f.Walls, WallRecord{X1: w.X1, Y1: w.Y1, X2: w.X2, Y2: w.Y2})
	}
	for _, t := range plan.TrunkPaths {
		f.TrunkSegments = append(f.TrunkSegments, TrunkSegmentRecord{X1: t.X1, Y1: t.Y1, X2: t.X2, Y2: t.Y2})
	}
	for _, r := range plan.Rooms {
		f.Rooms = append(f.Rooms, RoomRecord{RoomID: r.ID, Label: r.Label, X1: r.X1, Y1: r.Y1, X2: r.X2, Y2: r.Y2})
	}
	return f
}
