package models

// ========================================
// 메시지 타입 상수
// ========================================
const (
	// Server → Web
	MessageTypeRouteUpdate = "route_update" // 경로 업데이트
	MessageTypeRouteFailed = "route_failed" // 경로 탐색 실패
	MessageTypeFloorUpdate = "floor_update" // 층 등록/갱신
	MessageTypeSystemInfo  = "system_info"  // 시스템 정보

	// Web → Server
	MessageTypeNavigate = "navigate" // 경로 요청
)

// ========================================
// 공통 WebSocket 메시지 형식
// ========================================
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"` // Unix timestamp (ms)
}

// ========================================
// 경로 데이터
// ========================================
type RouteData struct {
	SessionID string       `json:"session_id"`
	FloorID   string       `json:"floor_id"`
	From      Coordinate   `json:"from"`
	To        *Coordinate  `json:"to,omitempty"` // 주 경로까지만 요청한 경우 nil
	Junction  *Coordinate  `json:"junction,omitempty"`
	Points    []Coordinate `json:"points"`
	Cost      float64      `json:"cost"`
	Rooms     []string     `json:"rooms,omitempty"`
}

// NavigateRequest - 경로 요청 (HTTP 본문 / WebSocket navigate 메시지 공용)
type NavigateRequest struct {
	SessionID string      `json:"session_id"`
	FloorID   string      `json:"floor_id"`
	From      Coordinate  `json:"from"`
	To        *Coordinate `json:"to,omitempty"`
}

// FloorUpdateData - 층 등록 알림
type FloorUpdateData struct {
	FloorID string `json:"floor_id"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Source  string `json:"source"` // "builtin", "file", "database"
}

// ========================================
// 시스템 정보
// ========================================
type SystemInfo struct {
	ConnectedClients int   `json:"connected_clients"`
	Floors           int   `json:"floors"`
	Uptime           int64 `json:"uptime"` // 가동 시간 (초)
}
