package models

import (
	"time"
)

// RouteLog - 경로 요청 로그
type RouteLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	RequestID string    `gorm:"size:36;index" json:"request_id"`
	SessionID string    `gorm:"size:36;index" json:"session_id"`
	FloorID   string    `gorm:"size:128;index" json:"floor_id"`
	EventType string    `gorm:"size:32;index" json:"event_type"` // "route_to_trunk", "route_between"

	// 요청 좌표
	FromX int `json:"from_x"`
	FromY int `json:"from_y"`
	ToX   int `json:"to_x"`
	ToY   int `json:"to_y"`

	// 결과
	Found      bool    `json:"found"`
	Junction   string  `json:"junction"` // 주 경로 합류 지점 "x,y"
	Waypoints  int     `json:"waypoints"`
	Cost       float64 `json:"cost"`
	DurationUS int64   `json:"duration_us"`
	Rooms      string  `json:"rooms"` // 지나가는 방 목록 (쉼표 구분)
}

// RouteLogStats - 로그 통계
type RouteLogStats struct {
	TotalRequests int64            `json:"total_requests"`
	FoundRequests int64            `json:"found_requests"`
	EventCounts   map[string]int64 `json:"event_counts"`
	TimeRange     string           `json:"time_range"`
}
