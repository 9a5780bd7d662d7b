package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"wayfinder-backend/algorithms"
	"wayfinder-backend/models"
)

var (
	ErrFloorNotFound   = errors.New("floor not found")
	ErrSessionNotFound = errors.New("session not found")
)

// 요청 종류
const (
	OperationRouteToTrunk = "route_to_trunk"
	OperationRouteBetween = "route_between"
)

// RouteResult - 경로 요청 결과
type RouteResult struct {
	SessionID string
	FloorID   string
	Operation string
	From      models.Coordinate
	To        *models.Coordinate
	Junction  *models.Coordinate
	Route     models.Route // nil 이면 경로 없음
	Rooms     []string
	Duration  time.Duration
}

// Found - 경로 존재 여부
func (r *RouteResult) Found() bool {
	return r.Route != nil
}

// ToRouteData - WebSocket 전송 형식
func (r *RouteResult) ToRouteData() models.RouteData {
	return models.RouteData{
		SessionID: r.SessionID,
		FloorID:   r.FloorID,
		From:      r.From,
		To:        r.To,
		Junction:  r.Junction,
		Points:    r.Route,
		Cost:      r.Route.Cost(),
		Rooms:     r.Rooms,
	}
}

// Session - 사용자 한 명의 탐색 상태
type Session struct {
	ID         string
	FloorID    string
	CreatedAt  time.Time
	LastUpdate time.Time

	mu        sync.Mutex
	navigator *algorithms.Navigator
	last      *RouteResult // 마지막 성공 결과
}

// NavigationService - 세션별 경로 탐색 관리
type NavigationService struct {
	registry  *FloorRegistry
	broadcast func(models.WebSocketMessage)

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewNavigationService - 서비스 생성. broadcast 는 nil 가능
func NewNavigationService(registry *FloorRegistry, broadcast func(models.WebSocketMessage)) *NavigationService {
	return &NavigationService{
		registry:  registry,
		broadcast: broadcast,
		sessions:  make(map[string]*Session),
	}
}

// Registry - 층 레지스트리
func (s *NavigationService) Registry() *FloorRegistry {
	return s.registry
}

// NearestTrunkPoint - 가장 가까운 주 경로 셀
func (s *NavigationService) NearestTrunkPoint(floorID string, from models.Coordinate) (models.Coordinate, bool, error) {
	floor, err := s.registry.Get(floorID)
	if err != nil {
		return models.Coordinate{}, false, err
	}
	p, ok := algorithms.NewNavigator(floor.Grid, nil).NearestTrunkPoint(from)
	return p, ok, nil
}

// Navigate - 요청 처리. To 가 nil 이면 주 경로까지만 탐색
func (s *NavigationService) Navigate(req models.NavigateRequest) (*RouteResult, error) {
	floor, err := s.registry.Get(req.FloorID)
	if err != nil {
		return nil, err
	}
	session := s.session(req.SessionID, floor)

	op := OperationRouteToTrunk
	if req.To != nil {
		op = OperationRouteBetween
	}

	session.mu.Lock()
	if session.FloorID != floor.ID {
		log.Printf("🔄 세션 층 변경: %s (%s → %s)", session.ID, session.FloorID, floor.ID)
		session.FloorID = floor.ID
		session.navigator = algorithms.NewNavigator(floor.Grid, nil)
		session.last = nil
	}
	started := time.Now()
	var route models.Route
	if req.To != nil {
		route = session.navigator.RouteBetween(req.From, *req.To)
	} else {
		route = session.navigator.RouteToTrunk(req.From)
	}
	elapsed := time.Since(started)

	result := &RouteResult{
		SessionID: session.ID,
		FloorID:   floor.ID,
		Operation: op,
		From:      req.From,
		To:        req.To,
		Route:     route,
		Duration:  elapsed,
	}
	if route != nil {
		if junction, ok := session.navigator.NearestTrunkPoint(req.From); ok {
			result.Junction = &junction
		}
		result.Rooms = floor.Rooms.RoomsAlong(route)
		session.last = result
	}
	session.LastUpdate = time.Now()
	session.mu.Unlock()

	s.record(result)
	return result, nil
}

// CurrentRoute - 세션의 마지막 성공 경로
func (s *NavigationService) CurrentRoute(sessionID string) (*RouteResult, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if session.last == nil {
		return &RouteResult{SessionID: session.ID, FloorID: session.FloorID}, nil
	}
	out := *session.last
	out.Route = session.navigator.CurrentRoute()
	return &out, nil
}

// SessionIDs - 현재 세션 id 목록
func (s *NavigationService) SessionIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// session - 세션 조회/생성
func (s *NavigationService) session(id string, floor *FloorEntry) *Session {
	if id == "" {
		id = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if existing, ok := s.sessions[id]; ok {
		return existing
	}

	session := &Session{
		ID:         id,
		FloorID:    floor.ID,
		CreatedAt:  now,
		LastUpdate: now,
		navigator:  algorithms.NewNavigator(floor.Grid, nil),
	}
	s.sessions[id] = session
	activeSessions.Set(float64(len(s.sessions)))
	log.Printf("🆕 세션 생성: %s (floor=%s)", id, floor.ID)
	return session
}

// PruneSessions - maxIdle 이상 갱신이 없는 세션 삭제
func (s *NavigationService) PruneSessions(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		session.mu.Lock()
		idle := session.LastUpdate.Before(cutoff)
		session.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	activeSessions.Set(float64(len(s.sessions)))
	if removed > 0 {
		log.Printf("🧹 유휴 세션 %d개 삭제", removed)
	}
	return removed
}

// StartSessionJanitor - 주기적 세션 정리. 반환된 함수로 종료
func (s *NavigationService) StartSessionJanitor(interval, maxIdle time.Duration) func() {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.PruneSessions(maxIdle)
			case <-stop:
				return
			}
		}
	}()
	return func() { close(stop) }
}

// record - 메트릭, 로그, 브로드캐스트
func (s *NavigationService) record(result *RouteResult) {
	routeRequestsTotal.WithLabelValues(result.Operation, resultLabel(result.Found())).Inc()
	routeDuration.WithLabelValues(result.Operation).Observe(result.Duration.Seconds())
	LogRouteRequest(result)

	if result.Found() {
		routeWaypoints.Observe(float64(len(result.Route)))
		log.Printf("✅ 경로 탐색 성공 [%s] %s: %d개 셀, 비용 %.2f",
			result.Operation, result.SessionID, len(result.Route), result.Route.Cost())
	} else {
		log.Printf("❌ 경로를 찾을 수 없습니다 [%s] %s: from=%v to=%v",
			result.Operation, result.SessionID, result.From, result.To)
	}

	if s.broadcast == nil {
		return
	}
	msgType := models.MessageTypeRouteUpdate
	if !result.Found() {
		msgType = models.MessageTypeRouteFailed
	}
	s.broadcast(models.WebSocketMessage{
		Type:      msgType,
		Data:      result.ToRouteData(),
		Timestamp: time.Now().UnixMilli(),
	})
}
