package models

// Segment - 축 정렬 셀 구간 (양 끝 포함). 벽과 주 경로에 사용
type Segment struct {
	X1 int `json:"x1" yaml:"x1"`
	Y1 int `json:"y1" yaml:"y1"`
	X2 int `json:"x2" yaml:"x2"`
	Y2 int `json:"y2" yaml:"y2"`
}

// HSeg - y 행의 가로 구간
func HSeg(y, x1, x2 int) Segment {
	return Segment{X1: x1, Y1: y, X2: x2, Y2: y}
}

// VSeg - x 열의 세로 구간
func VSeg(x, y1, y2 int) Segment {
	return Segment{X1: x, Y1: y1, X2: x, Y2: y2}
}

// IsAxisAligned - 한 행 또는 한 열 위에 있는지
func (s Segment) IsAxisAligned() bool {
	return s.X1 == s.X2 || s.Y1 == s.Y2
}

// Cells - 작은 쪽 끝부터 셀 나열. 축 정렬이 아니면 nil
func (s Segment) Cells() []Coordinate {
	if !s.IsAxisAligned() {
		return nil
	}
	x1, x2 := ordered(s.X1, s.X2)
	y1, y2 := ordered(s.Y1, s.Y2)
	cells := make([]Coordinate, 0, (x2-x1)+(y2-y1)+1)
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			cells = append(cells, Coordinate{X: x, Y: y})
		}
	}
	return cells
}

// ClipTo - width x height 격자 안쪽 부분만 남긴 구간
// 격자와 겹치지 않거나 축 정렬이 아니면 false
func (s Segment) ClipTo(width, height int) (Segment, bool) {
	if !s.IsAxisAligned() {
		return Segment{}, false
	}
	x1, x2 := ordered(s.X1, s.X2)
	y1, y2 := ordered(s.Y1, s.Y2)
	x1, x2, okX := clampRange(x1, x2, width)
	y1, y2, okY := clampRange(y1, y2, height)
	if !okX || !okY {
		return Segment{}, false
	}
	return Segment{X1: x1, Y1: y1, X2: x2, Y2: y2}, true
}

// RoomRegion - 이름 있는 사각형 영역 (양 모서리 포함)
type RoomRegion struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	X1    int    `json:"x1" yaml:"x1"`
	Y1    int    `json:"y1" yaml:"y1"`
	X2    int    `json:"x2" yaml:"x2"`
	Y2    int    `json:"y2" yaml:"y2"`
}

// Normalized - X1<=X2, Y1<=Y2 로 정렬한 영역
func (r RoomRegion) Normalized() RoomRegion {
	r.X1, r.X2 = ordered(r.X1, r.X2)
	r.Y1, r.Y2 = ordered(r.Y1, r.Y2)
	return r
}

// ClipTo - width x height 격자 안쪽 부분만 남긴 영역
func (r RoomRegion) ClipTo(width, height int) (RoomRegion, bool) {
	n := r.Normalized()
	var okX, okY bool
	n.X1, n.X2, okX = clampRange(n.X1, n.X2, width)
	n.Y1, n.Y2, okY = clampRange(n.Y1, n.Y2, height)
	if !okX || !okY {
		return RoomRegion{}, false
	}
	return n, true
}

// Contains - 셀이 영역 안에 있는지
func (r RoomRegion) Contains(c Coordinate) bool {
	n := r.Normalized()
	return c.X >= n.X1 && c.X <= n.X2 && c.Y >= n.Y1 && c.Y <= n.Y2
}

// Center - 방 이름 라벨 위치
func (r RoomRegion) Center() Coordinate {
	n := r.Normalized()
	return Coordinate{X: (n.X1 + n.X2) / 2, Y: (n.Y1 + n.Y2) / 2}
}

// FloorPlan - 층 도면 (외부 형식)
type FloorPlan struct {
	ID         string       `json:"id" yaml:"id"`
	Name       string       `json:"name,omitempty" yaml:"name,omitempty"`
	Width      int          `json:"width" yaml:"width"`
	Height     int          `json:"height" yaml:"height"`
	Walls      []Segment    `json:"walls" yaml:"walls"`
	TrunkPaths []Segment    `json:"trunk_paths" yaml:"trunk_paths"`
	Rooms      []RoomRegion `json:"rooms" yaml:"rooms"`
}

func ordered(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// clampRange - 정렬된 [lo, hi] 를 [0, size-1] 로 자름
func clampRange(lo, hi, size int) (int, int, bool) {
	if hi < 0 || lo >= size {
		return 0, 0, false
	}
	if lo < 0 {
		lo = 0
	}
	if hi > size-1 {
		hi = size - 1
	}
	return lo, hi, true
}
