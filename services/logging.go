package services

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wayfinder-backend/models"
)

// 로깅 버퍼 (비동기 일괄 처리)
type LogBuffer struct {
	logs      []models.RouteLog
	mu        sync.Mutex
	flushSize int           // 일괄 저장 크기
	flushTime time.Duration // 자동 플러시 시간
	stopChan  chan struct{}
	done      chan struct{}
}

// 현재 로그 버퍼. StopLogging 이후 nil
var logBuffer atomic.Pointer[LogBuffer]

// InitLogging - 로깅 시스템 초기화
func InitLogging(flushSize int, flushInterval time.Duration) {
	lb := &LogBuffer{
		logs:      make([]models.RouteLog, 0, flushSize*2),
		flushSize: flushSize,
		flushTime: flushInterval,
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}
	logBuffer.Store(lb)

	// 자동 플러시 고루틴 시작
	go lb.autoFlush()

	log.Printf("✅ 로깅 시스템 초기화 완료 (flushSize: %d, flushInterval: %v)", flushSize, flushInterval)
}

// autoFlush - 주기적 로그 저장
func (lb *LogBuffer) autoFlush() {
	defer close(lb.done)
	ticker := time.NewTicker(lb.flushTime)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			lb.Flush()
		case <-lb.stopChan:
			lb.Flush() // 종료 시 남은 로그 저장
			return
		}
	}
}

// AddLog - 로그 버퍼에 추가 (비동기)
func AddLog(logEntry models.RouteLog) {
	lb := logBuffer.Load()
	if lb == nil {
		return
	}

	lb.mu.Lock()
	lb.logs = append(lb.logs, logEntry)
	size := len(lb.logs)
	lb.mu.Unlock()

	// 버퍼 크기가 차면 즉시 플러시
	if size >= lb.flushSize {
		go lb.Flush()
	}
}

// Pending - 아직 저장되지 않은 로그 수
func (lb *LogBuffer) Pending() int {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return len(lb.logs)
}

// Flush - 버퍼의 모든 로그를 DB에 저장
// DB 가 없으면 버린다
func (lb *LogBuffer) Flush() {
	lb.mu.Lock()
	if len(lb.logs) == 0 {
		lb.mu.Unlock()
		return
	}

	// 로그 복사 및 버퍼 초기화
	logsToSave := make([]models.RouteLog, len(lb.logs))
	copy(logsToSave, lb.logs)
	lb.logs = lb.logs[:0]
	lb.mu.Unlock()

	if db == nil {
		return
	}
	if err := db.CreateInBatches(logsToSave, 100).Error; err != nil {
		log.Printf("❌ 로그 저장 실패: %v", err)
		return
	}
	log.Printf("💾 로그 %d개 저장 완료", len(logsToSave))
}

// NewRouteLog - 경로 결과를 로그 레코드로 변환
func NewRouteLog(result *RouteResult) models.RouteLog {
	entry := models.RouteLog{
		CreatedAt:  time.Now(),
		RequestID:  uuid.New().String(),
		SessionID:  result.SessionID,
		FloorID:    result.FloorID,
		EventType:  result.Operation,
		FromX:      result.From.X,
		FromY:      result.From.Y,
		Found:      result.Found(),
		Waypoints:  len(result.Route),
		Cost:       result.Route.Cost(),
		DurationUS: result.Duration.Microseconds(),
		Rooms:      strings.Join(result.Rooms, ","),
	}
	if result.To != nil {
		entry.ToX, entry.ToY = result.To.X, result.To.Y
	}
	if result.Junction != nil {
		entry.Junction = fmt.Sprintf("%d,%d", result.Junction.X, result.Junction.Y)
	}
	return entry
}

// LogRouteRequest - 경로 요청 로그
func LogRouteRequest(result *RouteResult) {
	AddLog(NewRouteLog(result))
}

// RouteLogFilter - 경로 로그 조회 조건. 비어 있는 필드는 조건에서 제외
type RouteLogFilter struct {
	SessionID string
	FloorID   string
	EventType string
	Found     *bool
	Since     time.Time
	Until     time.Time
	Limit     int
}

// 조회 개수 기본값/상한
const (
	DefaultLogLimit = 100
	MaxLogLimit     = 1000
)

// apply - 조건을 쿼리에 반영
func (f RouteLogFilter) apply(query *gorm.DB) *gorm.DB {
	if f.SessionID != "" {
		query = query.Where("session_id = ?", f.SessionID)
	}
	if f.FloorID != "" {
		query = query.Where("floor_id = ?", f.FloorID)
	}
	if f.EventType != "" {
		query = query.Where("event_type = ?", f.EventType)
	}
	if f.Found != nil {
		query = query.Where("found = ?", *f.Found)
	}
	if !f.Since.IsZero() {
		query = query.Where("created_at >= ?", f.Since)
	}
	if !f.Until.IsZero() {
		query = query.Where("created_at <= ?", f.Until)
	}
	return query
}

// limit - 조회 개수 (기본 100, 최대 1000)
func (f RouteLogFilter) limit() int {
	switch {
	case f.Limit <= 0:
		return DefaultLogLimit
	case f.Limit > MaxLogLimit:
		return MaxLogLimit
	default:
		return f.Limit
	}
}

// QueryRouteLogs - 조건에 맞는 경로 로그 (최신순)
func QueryRouteLogs(filter RouteLogFilter) ([]models.RouteLog, error) {
	if db == nil {
		return nil, ErrNoDatabase
	}
	var logs []models.RouteLog
	err := filter.apply(db.Model(&models.RouteLog{})).
		Order("created_at DESC").
		Limit(filter.limit()).
		Find(&logs).Error
	return logs, err
}

// GetLogStats - 로그 통계. Limit 은 사용하지 않는다
func GetLogStats(filter RouteLogFilter) (*models.RouteLogStats, error) {
	if db == nil {
		return nil, ErrNoDatabase
	}

	stats := &models.RouteLogStats{
		EventCounts: make(map[string]int64),
		TimeRange:   describeRange(filter.Since, filter.Until),
	}
	base := func() *gorm.DB { return filter.apply(db.Model(&models.RouteLog{})) }

	if err := base().Count(&stats.TotalRequests).Error; err != nil {
		return nil, err
	}
	if err := base().Where("found = ?", true).Count(&stats.FoundRequests).Error; err != nil {
		return nil, err
	}

	// 이벤트 타입별 카운트
	var eventCounts []struct {
		EventType string
		Count     int64
	}
	if err := base().
		Select("event_type, COUNT(*) as count").
		Group("event_type").
		Scan(&eventCounts).Error; err != nil {
		return nil, err
	}
	for _, ec := range eventCounts {
		stats.EventCounts[ec.EventType] = ec.Count
	}
	return stats, nil
}

func describeRange(since, until time.Time) string {
	switch {
	case since.IsZero() && until.IsZero():
		return "all time"
	case until.IsZero():
		return fmt.Sprintf("since %s", since.Format(time.RFC3339))
	case since.IsZero():
		return fmt.Sprintf("until %s", until.Format(time.RFC3339))
	default:
		return fmt.Sprintf("%s ~ %s", since.Format(time.RFC3339), until.Format(time.RFC3339))
	}
}

// StopLogging - 로깅 시스템 종료 (남은 로그 저장 후 반환)
func StopLogging() {
	lb := logBuffer.Swap(nil)
	if lb == nil {
		return
	}
	close(lb.stopChan)
	<-lb.done
	log.Println("🛑 로깅 시스템 종료")
}
