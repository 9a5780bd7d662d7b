package models

import "math"

// Coordinate - 그리드 셀 위치 (열, 행)
type Coordinate struct {
	X int `json:"x" csv:"x" yaml:"x"`
	Y int `json:"y" csv:"y" yaml:"y"`
}

// DistanceTo - 유클리드 거리
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	dx := float64(c.X - other.X)
	dy := float64(c.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// IsDiagonalTo - x, y가 모두 다르면 대각선 이동
func (c Coordinate) IsDiagonalTo(other Coordinate) bool {
	return c.X != other.X && c.Y != other.Y
}

// IsAdjacentTo - 8방향 인접 여부 (자기 자신 제외)
func (c Coordinate) IsAdjacentTo(other Coordinate) bool {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx == 0 && dy == 0 {
		return false
	}
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}
