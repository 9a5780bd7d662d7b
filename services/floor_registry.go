package services

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"wayfinder-backend/algorithms"
	"wayfinder-backend/models"
)

// 도면 출처
const (
	FloorSourceBuiltin  = "builtin"
	FloorSourceFile     = "file"
	FloorSourceDatabase = "database"
)

// FloorEntry - 등록된 층 (생성 후 읽기 전용)
type FloorEntry struct {
	ID           string
	Plan         models.FloorPlan
	Grid         *algorithms.Grid
	Rooms        *RoomIndex
	Source       string
	RegisteredAt time.Time
}

// FloorRegistry - 층 격자 생성 및 조회
// 격자는 완성된 뒤에 등록되므로 조회 중에 생성 중인 격자가 보이지 않는다
type FloorRegistry struct {
	mu     sync.RWMutex
	floors map[string]*FloorEntry
}

// NewFloorRegistry - 빈 레지스트리 생성
func NewFloorRegistry() *FloorRegistry {
	return &FloorRegistry{
		floors: make(map[string]*FloorEntry),
	}
}

// Register - 도면으로 격자를 만들어 등록. 같은 ID 는 교체
func (r *FloorRegistry) Register(plan models.FloorPlan, source string) (*FloorEntry, error) {
	if err := ValidateFloorPlan(plan); err != nil {
		return nil, err
	}
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}

	entry := &FloorEntry{
		ID:           plan.ID,
		Plan:         plan,
		Grid:         algorithms.NewGridFromPlan(plan),
		Rooms:        NewRoomIndex(plan.Rooms),
		Source:       source,
		RegisteredAt: time.Now(),
	}

	r.mu.Lock()
	r.floors[entry.ID] = entry
	floorsRegistered.Set(float64(len(r.floors)))
	r.mu.Unlock()

	log.Printf("🗺️  층 등록: %s (%dx%d, source=%s, 주 경로 셀 %d)",
		entry.ID, plan.Width, plan.Height, source, len(entry.Grid.TrunkPathCells()))
	return entry, nil
}

// Get - 층 조회
func (r *FloorRegistry) Get(id string) (*FloorEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.floors[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFloorNotFound, id)
	}
	return entry, nil
}

// List - ID 순 층 목록
func (r *FloorRegistry) List() []*FloorEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*FloorEntry, 0, len(r.floors))
	for _, entry := range r.floors {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count - 등록된 층 수
func (r *FloorRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.floors)
}

// Remove - 층 삭제
func (r *FloorRegistry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.floors, id)
	floorsRegistered.Set(float64(len(r.floors)))
}

// LoadAll - 내장 도면, dir 의 YAML 파일, DB 층을 차례로 등록
// 개별 실패는 경고만 남기고 건너뜀
func (r *FloorRegistry) LoadAll(dir string) []*FloorEntry {
	var loaded []*FloorEntry

	if entry, err := r.Register(algorithms.DefaultFloorPlan(), FloorSourceBuiltin); err == nil {
		loaded = append(loaded, entry)
	}

	if dir != "" {
		plans, err := LoadFloorPlanDir(dir)
		if err != nil {
			log.Printf("⚠️  도면 디렉터리 로드 실패: %v", err)
		}
		for _, plan := range plans {
			entry, err := r.Register(plan, FloorSourceFile)
			if err != nil {
				log.Printf("⚠️  도면 등록 실패 (%s): %v", plan.ID, err)
				continue
			}
			loaded = append(loaded, entry)
		}
	}

	if DatabaseReady() {
		floors, err := LoadFloors()
		if err != nil {
			log.Printf("⚠️  DB 층 조회 실패: %v", err)
		}
		for _, f := range floors {
			entry, err := r.Register(f.ToFloorPlan(), FloorSourceDatabase)
			if err != nil {
				log.Printf("⚠️  DB 층 등록 실패 (%s): %v", f.RegistryKey(), err)
				continue
			}
			loaded = append(loaded, entry)
		}
	}

	log.Printf("✅ 층 %d개 등록 완료", len(loaded))
	return loaded
}
