package handlers

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"wayfinder-backend/models"
	"wayfinder-backend/services"
)

// clientConn - 클라이언트 연결에서 사용하는 쓰기 기능
type clientConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Client - 웹 클라이언트 연결
// 연결당 쓰기는 한 번에 하나만 가능하므로 모든 전송은 Send 를 거친다
type Client struct {
	conn        clientConn
	addr        string
	ConnectedAt time.Time

	writeMu sync.Mutex
}

// NewClient - 클라이언트 생성
func NewClient(conn clientConn, addr string) *Client {
	return &Client{conn: conn, addr: addr, ConnectedAt: time.Now()}
}

// Send - 메시지 전송 (직접 응답과 브로드캐스트 공용)
func (c *Client) Send(msg models.WebSocketMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(msg)
}

// 클라이언트 관리자
type ClientManager struct {
	clients    map[*Client]bool
	broadcast  chan models.WebSocketMessage
	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	mutex      sync.RWMutex
}

// 전역 클라이언트 관리자
var Manager = NewClientManager()

// NewClientManager - 클라이언트 관리자 생성
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan models.WebSocketMessage, 100),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}
}

// 클라이언트 관리 시작
func (manager *ClientManager) Start() {
	log.Println("✅ ClientManager 시작")
	for {
		select {
		case client := <-manager.register:
			manager.mutex.Lock()
			manager.clients[client] = true
			manager.mutex.Unlock()
			log.Printf("클라이언트 등록: %s", client.addr)

		case client := <-manager.unregister:
			manager.remove(client)

		case message := <-manager.broadcast:
			for _, client := range manager.handleBroadcast(message) {
				manager.remove(client)
			}

		case <-manager.quit:
			log.Println("🛑 ClientManager 종료")
			return
		}
	}
}

// Stop - 관리 루프 종료
func (manager *ClientManager) Stop() {
	close(manager.quit)
}

// Register - 클라이언트 등록 (Start 실행 중이어야 함)
func (manager *ClientManager) Register(client *Client) {
	select {
	case manager.register <- client:
	case <-manager.quit:
	}
}

// Unregister - 클라이언트 해제 및 연결 종료
func (manager *ClientManager) Unregister(client *Client) {
	select {
	case manager.unregister <- client:
	case <-manager.quit:
		_ = client.conn.Close()
	}
}

func (manager *ClientManager) remove(client *Client) {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()
	if _, ok := manager.clients[client]; ok {
		delete(manager.clients, client)
		_ = client.conn.Close()
		log.Printf("클라이언트 해제: %s", client.addr)
	}
}

// handleBroadcast - 모든 웹 클라이언트에 전송. 전송 실패한 클라이언트를 반환
func (manager *ClientManager) handleBroadcast(message models.WebSocketMessage) []*Client {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	var failed []*Client
	for client := range manager.clients {
		if err := client.Send(message); err != nil {
			log.Printf("전송 실패 (%s): %v", client.addr, err)
			failed = append(failed, client)
		}
	}
	return failed
}

// BroadcastMessage - 브로드캐스트 큐에 추가. 큐가 가득 차면 버린다
func (manager *ClientManager) BroadcastMessage(msg models.WebSocketMessage) {
	select {
	case manager.broadcast <- msg:
	default:
		log.Printf("⚠️ broadcast 채널 가득 참, 메시지 폐기: %s", msg.Type)
	}
}

func (manager *ClientManager) GetClientCount() int {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()
	return len(manager.clients)
}

// systemInfo - 접속 시 보내는 서버 상태
func systemInfo() models.SystemInfo {
	info := models.SystemInfo{
		ConnectedClients: Manager.GetClientCount(),
		Uptime:           int64(time.Since(startedAt).Seconds()),
	}
	if navigation != nil {
		info.Floors = navigation.Registry().Count()
	}
	return info
}

// inboundMessage - 웹 클라이언트가 보내는 메시지
type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Web 클라이언트 WebSocket Handler
func HandleWebClientWebSocket(c *websocket.Conn) {
	client := NewClient(c, c.RemoteAddr().String())
	Manager.Register(client)
	defer Manager.Unregister(client)

	// 연결 확인 메시지 전송
	_ = client.Send(models.WebSocketMessage{
		Type:      models.MessageTypeSystemInfo,
		Data:      systemInfo(),
		Timestamp: time.Now().UnixMilli(),
	})

	for {
		var msg inboundMessage
		if err := c.ReadJSON(&msg); err != nil {
			log.Printf("웹 메시지 읽기 오류: %v", err)
			break
		}
		handleClientMessage(client, msg)
	}
}

// handleClientMessage - 수신 메시지 처리. 직접 응답도 client.Send 로만 보낸다
func handleClientMessage(client *Client, msg inboundMessage) {
	switch msg.Type {
	case models.MessageTypeNavigate:
		if navigation == nil {
			log.Printf("⚠️ 탐색 서비스가 초기화되지 않음")
			return
		}
		var req models.NavigateRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			log.Printf("⚠️ 잘못된 navigate 메시지: %v", err)
			return
		}
		log.Printf("📍 WebSocket 경로 요청: session=%s floor=%s", req.SessionID, req.FloorID)
		// 결과는 서비스의 broadcast 로 전달된다
		if _, err := navigation.Navigate(req); err != nil {
			log.Printf("❌ 경로 요청 실패: %v", err)
			_ = client.Send(models.WebSocketMessage{
				Type:      models.MessageTypeRouteFailed,
				Data:      errorBody(err),
				Timestamp: time.Now().UnixMilli(),
			})
		}

	default:
		log.Printf("알 수 없는 메시지 타입: %s", msg.Type)
	}
}

// NotifyFloorRegistered - 층 등록 알림
func NotifyFloorRegistered(entry *services.FloorEntry) {
	Manager.BroadcastMessage(models.WebSocketMessage{
		Type: models.MessageTypeFloorUpdate,
		Data: models.FloorUpdateData{
			FloorID: entry.ID,
			Width:   entry.Plan.Width,
			Height:  entry.Plan.Height,
			Source:  entry.Source,
		},
		Timestamp: time.Now().UnixMilli(),
	})
}
