package services

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"

	"wayfinder-backend/models"
)

// roomEntry - R-tree 에 저장하는 방 영역
type roomEntry struct {
	region models.RoomRegion
	order  int // 도면 내 순서. 겹치면 나중 것이 우선 (그리드 태깅과 동일)
	bound  orb.Bound
	rect   rtreego.Rect
}

// Bounds - rtreego.Spatial 구현
func (e *roomEntry) Bounds() rtreego.Rect {
	return e.rect
}

// RoomIndex - 방 영역 공간 인덱스
// 셀 (x, y) 는 연속 좌표 [x, x+1) × [y, y+1) 을 차지한다
type RoomIndex struct {
	tree    *rtreego.Rtree
	regions []models.RoomRegion
	byID    map[string]models.RoomRegion
}

// NewRoomIndex - 방 목록으로 인덱스 생성
func NewRoomIndex(rooms []models.RoomRegion) *RoomIndex {
	idx := &RoomIndex{
		tree:    rtreego.NewTree(2, 25, 50),
		regions: make([]models.RoomRegion, 0, len(rooms)),
		byID:    make(map[string]models.RoomRegion, len(rooms)),
	}

	for i, room := range rooms {
		r := room.Normalized()
		bound := orb.Bound{
			Min: orb.Point{float64(r.X1), float64(r.Y1)},
			Max: orb.Point{float64(r.X2 + 1), float64(r.Y2 + 1)},
		}
		rect, err := boundToRect(bound)
		if err != nil {
			continue
		}
		idx.tree.Insert(&roomEntry{region: r, order: i, bound: bound, rect: rect})
		idx.regions = append(idx.regions, r)
		idx.byID[r.ID] = r
	}
	return idx
}

func boundToRect(b orb.Bound) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{b.Min.X(), b.Min.Y()},
		[]float64{b.Max.X() - b.Min.X(), b.Max.Y() - b.Min.Y()},
	)
}

// Rooms - 등록된 방 목록 (도면 순서)
func (idx *RoomIndex) Rooms() []models.RoomRegion {
	out := make([]models.RoomRegion, len(idx.regions))
	copy(out, idx.regions)
	return out
}

// Lookup - id 로 방 조회
func (idx *RoomIndex) Lookup(id string) (models.RoomRegion, bool) {
	r, ok := idx.byID[id]
	return r, ok
}

// RoomAt - 셀이 속한 방
func (idx *RoomIndex) RoomAt(c models.Coordinate) (models.RoomRegion, bool) {
	center := orb.Point{float64(c.X) + 0.5, float64(c.Y) + 0.5}
	results := idx.tree.SearchIntersect(rtreego.Point{center.X(), center.Y()}.ToRect(0.01))

	var (
		best  *roomEntry
		found bool
	)
	for _, item := range results {
		entry := item.(*roomEntry)
		if !entry.bound.Contains(center) {
			continue
		}
		if !found || entry.order > best.order {
			best, found = entry, true
		}
	}
	if !found {
		return models.RoomRegion{}, false
	}
	return best.region, true
}

// RoomsInView - 사각형 영역과 겹치는 방 목록 (라벨 렌더링용), 도면 순서
func (idx *RoomIndex) RoomsInView(x1, y1, x2, y2 int) []models.RoomRegion {
	view := models.RoomRegion{X1: x1, Y1: y1, X2: x2, Y2: y2}.Normalized()
	rect, err := boundToRect(orb.Bound{
		Min: orb.Point{float64(view.X1), float64(view.Y1)},
		Max: orb.Point{float64(view.X2 + 1), float64(view.Y2 + 1)},
	})
	if err != nil {
		return nil
	}

	hits := make(map[string]bool)
	for _, item := range idx.tree.SearchIntersect(rect) {
		hits[item.(*roomEntry).region.ID] = true
	}

	out := make([]models.RoomRegion, 0, len(hits))
	for _, r := range idx.regions {
		if hits[r.ID] {
			out = append(out, r)
			delete(hits, r.ID)
		}
	}
	return out
}

// RoomsAlong - 경로가 지나가는 방 id 목록 (연속 중복 제거)
func (idx *RoomIndex) RoomsAlong(route models.Route) []string {
	var rooms []string
	for _, c := range route {
		r, ok := idx.RoomAt(c)
		if !ok {
			continue
		}
		if len(rooms) > 0 && rooms[len(rooms)-1] == r.ID {
			continue
		}
		rooms = append(rooms, r.ID)
	}
	return rooms
}
