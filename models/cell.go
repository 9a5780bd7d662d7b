package models

// Cell - 격자 셀 하나의 상태
type Cell struct {
	Walkable    bool   `json:"walkable"`
	OnTrunkPath bool   `json:"on_trunk_path"`
	RoomID      string `json:"room_id,omitempty"` // 방이 없으면 ""
}

// NewCell - 기본 셀 (통행 가능, 주 경로 아님, 방 없음)
func NewCell() Cell {
	return Cell{Walkable: true}
}

// HasRoom - 방 태그 여부
func (c Cell) HasRoom() bool {
	return c.RoomID != ""
}

// Code - 렌더링용 한 글자 코드
// '#' 벽, '=' 주 경로, '.' 통로
func (c Cell) Code() byte {
	switch {
	case !c.Walkable:
		return '#'
	case c.OnTrunkPath:
		return '='
	default:
		return '.'
	}
}
