package handlers

import (
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"wayfinder-backend/models"
)

// recordingConn records messages and flags overlapping writes.
type recordingConn struct {
	writing atomic.Bool
	overlap atomic.Bool
	closed  atomic.Bool
	fail    bool

	mu       sync.Mutex
	messages []models.WebSocketMessage
}

func (r *recordingConn) WriteJSON(v interface{}) error {
	if !r.writing.CompareAndSwap(false, true) {
		r.overlap.Store(true)
	}
	defer r.writing.Store(false)
	time.Sleep(20 * time.Microsecond)

	if r.fail {
		return errors.New("broken pipe")
	}
	r.mu.Lock()
	r.messages = append(r.messages, v.(models.WebSocketMessage))
	r.mu.Unlock()
	return nil
}

func (r *recordingConn) Close() error {
	r.closed.Store(true)
	return nil
}

func (r *recordingConn) received() []models.WebSocketMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.WebSocketMessage, len(r.messages))
	copy(out, r.messages)
	return out
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func startManager(t *testing.T) *ClientManager {
	t.Helper()
	m := NewClientManager()
	go m.Start()
	t.Cleanup(m.Stop)
	return m
}

func TestClientManagerBroadcast(t *testing.T) {
	m := startManager(t)
	a, b := &recordingConn{}, &recordingConn{}
	m.Register(NewClient(a, "a"))
	m.Register(NewClient(b, "b"))
	waitFor(t, "two clients", func() bool { return m.GetClientCount() == 2 })

	m.BroadcastMessage(models.WebSocketMessage{Type: models.MessageTypeRouteUpdate})
	for _, conn := range []*recordingConn{a, b} {
		conn := conn
		waitFor(t, "broadcast delivery", func() bool { return len(conn.received()) == 1 })
		if got := conn.received()[0].Type; got != models.MessageTypeRouteUpdate {
			t.Errorf("type = %q", got)
		}
	}
}

func TestClientManagerDropsFailedClient(t *testing.T) {
	m := startManager(t)
	good, bad := &recordingConn{}, &recordingConn{fail: true}
	m.Register(NewClient(good, "good"))
	m.Register(NewClient(bad, "bad"))
	waitFor(t, "two clients", func() bool { return m.GetClientCount() == 2 })

	m.BroadcastMessage(models.WebSocketMessage{Type: models.MessageTypeFloorUpdate})
	waitFor(t, "failed client removal", func() bool { return m.GetClientCount() == 1 })
	if !bad.closed.Load() {
		t.Error("failed connection not closed")
	}
	if good.closed.Load() {
		t.Error("healthy connection closed")
	}
}

func TestClientManagerUnregister(t *testing.T) {
	m := startManager(t)
	conn := &recordingConn{}
	client := NewClient(conn, "c")
	m.Register(client)
	m.Unregister(client)
	waitFor(t, "unregister", func() bool { return m.GetClientCount() == 0 })
	if !conn.closed.Load() {
		t.Error("connection not closed")
	}
}

func TestClientSendAndBroadcastDoNotOverlap(t *testing.T) {
	m := startManager(t)
	conn := &recordingConn{}
	client := NewClient(conn, "c")
	m.Register(client)
	waitFor(t, "registration", func() bool { return m.GetClientCount() == 1 })

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = client.Send(models.WebSocketMessage{Type: models.MessageTypeRouteFailed})
		}()
		go func() {
			defer wg.Done()
			m.BroadcastMessage(models.WebSocketMessage{Type: models.MessageTypeRouteUpdate})
		}()
	}
	wg.Wait()

	waitFor(t, "all messages", func() bool { return len(conn.received()) == 2*n })
	if conn.overlap.Load() {
		t.Error("direct replies and broadcasts wrote to the connection at the same time")
	}
}

func TestHandleClientMessageUnknownFloor(t *testing.T) {
	setupApp(t)
	conn := &recordingConn{}
	client := NewClient(conn, "c")

	handleClientMessage(client, inboundMessage{
		Type: models.MessageTypeNavigate,
		Data: json.RawMessage(`{"floor_id":"nope","from":{"x":1,"y":1}}`),
	})
	got := conn.received()
	if len(got) != 1 || got[0].Type != models.MessageTypeRouteFailed {
		t.Fatalf("replies = %+v, want one route_failed", got)
	}

	handleClientMessage(client, inboundMessage{
		Type: models.MessageTypeNavigate,
		Data: json.RawMessage(`{"floor_id":"corridor","from":{"x":4,"y":2}}`),
	})
	if n := len(conn.received()); n != 1 {
		t.Errorf("successful navigate replied directly: %d messages", n)
	}
}
