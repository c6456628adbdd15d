package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
)

const (
	DefaultPort    = 9099
	messagePrefix  = "MOVIEVIZ:"
	announcePeriod = 5 * time.Second
)

// Announcement tells LAN peers where the movieviz services listen.
type Announcement struct {
	LocalIP   string            `json:"local_ip"`
	Services  map[string]string `json:"services"`
	Timestamp time.Time         `json:"timestamp"`
}

type Broadcaster struct {
	announcement Announcement
	target       string
	mu           sync.RWMutex
	stopCh       chan struct{}
	stopOnce     sync.Once
}

// NewBroadcaster announces services to target, normally
// "255.255.255.255:9099".
func NewBroadcaster(localIP string, services map[string]string, target string) *Broadcaster {
	if target == "" {
		target = fmt.Sprintf("255.255.255.255:%d", DefaultPort)
	}
	return &Broadcaster{
		announcement: Announcement{
			LocalIP:   localIP,
			Services:  services,
			Timestamp: time.Now(),
		},
		target: target,
		stopCh: make(chan struct{}),
	}
}

func (b *Broadcaster) Start() {
	go b.broadcastLoop()
}

func (b *Broadcaster) Stop() {
	b.stopOnce.Do(func() { close(b.stopCh) })
}

func (b *Broadcaster) GetAnnouncement() Announcement {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.announcement
}

func (b *Broadcaster) broadcastLoop() {
	b.broadcast()
	ticker := time.NewTicker(announcePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.broadcast()
		case <-b.stopCh:
			return
		}
	}
}

func (b *Broadcaster) broadcast() {
	conn, err := net.Dial("udp", b.target)
	if err != nil {
		logger.GetLogger().Error("broadcast_dial_failed", "target", b.target, "error", err.Error())
		return
	}
	defer conn.Close()

	b.mu.Lock()
	b.announcement.Timestamp = time.Now()
	data, _ := json.Marshal(b.announcement)
	b.mu.Unlock()

	if _, err := conn.Write([]byte(messagePrefix + string(data))); err != nil {
		logger.GetLogger().Debug("broadcast_write_failed", "target", b.target, "error", err.Error())
	}
}

// Listen waits on addr (e.g. ":9099") for the first announcement or until ctx
// is done.
func Listen(ctx context.Context, addr string) (*Announcement, error) {
	pc, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	defer pc.Close()

	go func() {
		<-ctx.Done()
		pc.SetReadDeadline(time.Now())
	}()

	buf := make([]byte, 4096)
	for {
		n, _, err := pc.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		}
		if a, err := ParseAnnouncement(buf[:n]); err == nil {
			return a, nil
		}
	}
}

func ParseAnnouncement(msg []byte) (*Announcement, error) {
	s := string(msg)
	if !strings.HasPrefix(s, messagePrefix) {
		return nil, fmt.Errorf("not a movieviz announcement")
	}
	var a Announcement
	if err := json.Unmarshal([]byte(strings.TrimPrefix(s, messagePrefix)), &a); err != nil {
		return nil, err
	}
	return &a, nil
}
