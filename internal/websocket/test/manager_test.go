package test

import (
	"context"
	"testing"
	"time"

	"github.com/binhbb2204/movie-stats-viz/internal/websocket"
)

func TestManagerStartsEmpty(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager := websocket.NewManager()
	go manager.Run(ctx)

	manager.BroadcastMessage([]byte("test"))
	time.Sleep(50 * time.Millisecond)

	if n := manager.GetClientCount(); n != 0 {
		t.Errorf("Expected 0 clients, got %d", n)
	}
}

func TestManagerRegisterAndBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager := websocket.NewManager()
	go manager.Run(ctx)

	client := &websocket.Client{ID: "page-1", Send: make(chan []byte, 4), Manager: manager}
	if !manager.Register(client) {
		t.Fatal("Expected registration to succeed")
	}

	manager.BroadcastMessage([]byte("hello"))

	select {
	case msg := <-client.Send:
		if string(msg) != "hello" {
			t.Errorf("Expected hello, got %q", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for broadcast")
	}

	manager.Unregister(client)
	deadline := time.Now().Add(time.Second)
	for manager.GetClientCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if n := manager.GetClientCount(); n != 0 {
		t.Errorf("Expected 0 clients after unregister, got %d", n)
	}
}

func TestManagerRegisterAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	manager := websocket.NewManager()
	stopped := make(chan struct{})
	go func() {
		manager.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	if manager.Register(&websocket.Client{ID: "late", Send: make(chan []byte, 1)}) {
		t.Error("Expected registration to fail after stop")
	}
}

func TestClientUpdateActivity(t *testing.T) {
	client := &websocket.Client{
		ID:         "page-1",
		Send:       make(chan []byte, 1),
		LastActive: time.Now().Add(-1 * time.Hour),
	}

	oldTime := client.GetLastActive()
	client.UpdateActivity()
	if !client.GetLastActive().After(oldTime) {
		t.Error("Expected LastActive to be updated")
	}
}
