package discovery

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestParseAnnouncement(t *testing.T) {
	a, err := ParseAnnouncement([]byte(`MOVIEVIZ:{"local_ip":"10.0.0.5","services":{"api":"http://10.0.0.5:6000"}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if a.LocalIP != "10.0.0.5" || a.Services["api"] != "http://10.0.0.5:6000" {
		t.Fatalf("unexpected announcement: %+v", a)
	}

	if _, err := ParseAnnouncement([]byte(`MANGAHUB:{}`)); err == nil {
		t.Fatal("expected error for foreign prefix")
	}
}

func TestBroadcasterReachesListener(t *testing.T) {
	probe, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	addr := probe.LocalAddr().String()
	probe.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 7*time.Second)
	defer cancel()

	type result struct {
		a   *Announcement
		err error
	}
	done := make(chan result, 1)
	go func() {
		a, err := Listen(ctx, addr)
		done <- result{a, err}
	}()
	time.Sleep(50 * time.Millisecond)

	b := NewBroadcaster("127.0.0.1", map[string]string{"api": "http://127.0.0.1:6000"}, addr)
	b.Start()
	defer b.Stop()

	r := <-done
	if r.err != nil {
		t.Fatalf("listen: %v", r.err)
	}
	if r.a.Services["api"] != "http://127.0.0.1:6000" {
		t.Fatalf("unexpected announcement: %+v", r.a)
	}
}
