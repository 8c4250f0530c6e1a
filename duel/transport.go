package duel

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/pthm-cable/balloonwar/event"
)

// Transport establishes the byte stream between the two players.
type Transport interface {
	// Listen waits for one peer to connect.
	Listen(ctx context.Context) (net.Conn, error)
	// Connect reaches a listening peer. hint is an address; empty means the default.
	Connect(ctx context.Context, hint string) (net.Conn, error)
}

// TCPTransport carries the duel over TCP.
type TCPTransport struct {
	Address        string
	ConnectTimeout time.Duration
}

// Listen accepts exactly one connection, then stops listening.
func (t *TCPTransport) Listen(ctx context.Context) (net.Conn, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", t.Address)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", t.Address, err)
	}
	defer ln.Close()

	// Unblock Accept when the context ends
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	conn, err := ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("accepting peer: %w", ctx.Err())
		}
		return nil, fmt.Errorf("accepting peer: %w", err)
	}
	return conn, nil
}

// Connect dials the peer with the configured timeout.
func (t *TCPTransport) Connect(ctx context.Context, hint string) (net.Conn, error) {
	addr := hint
	if addr == "" {
		addr = t.Address
	}
	d := net.Dialer{Timeout: t.ConnectTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", addr, err)
	}
	return conn, nil
}

// Role names which side of the handshake this player took.
type Role string

const (
	RoleHost Role = "host"
	RoleJoin Role = "join"
)

// Dialer runs handshakes in the background and owns the current link.
// Results reach the game loop through the event queue only.
type Dialer struct {
	transport Transport
	queue     *event.Queue
	cfg       LinkConfig
	logger    *slog.Logger

	mu     sync.Mutex
	link   *Link
	cancel context.CancelFunc
}

// NewDialer creates a dialer.
func NewDialer(transport Transport, queue *event.Queue, cfg LinkConfig, logger *slog.Logger) *Dialer {
	return &Dialer{transport: transport, queue: queue, cfg: cfg, logger: logger}
}

// Host waits for a peer in the background. profile is sent first once connected.
func (d *Dialer) Host(ctx context.Context, profile Message) {
	d.start(ctx, RoleHost, profile, func(ctx context.Context) (net.Conn, error) {
		return d.transport.Listen(ctx)
	})
}

// Join connects to a peer in the background. profile is sent first once connected.
func (d *Dialer) Join(ctx context.Context, hint string, profile Message) {
	d.start(ctx, RoleJoin, profile, func(ctx context.Context) (net.Conn, error) {
		return d.transport.Connect(ctx, hint)
	})
}

func (d *Dialer) start(parent context.Context, role Role, profile Message, establish func(context.Context) (net.Conn, error)) {
	ctx, cancel := context.WithCancel(parent)

	d.mu.Lock()
	d.stopLocked()
	d.cancel = cancel
	d.mu.Unlock()

	d.logger.Info("duel_handshake_start", "role", string(role))
	go d.run(ctx, role, profile, establish)
}

func (d *Dialer) run(ctx context.Context, role Role, profile Message, establish func(context.Context) (net.Conn, error)) {
	conn, err := establish(ctx)
	if err != nil {
		if ctx.Err() != nil {
			// Superseded or shut down locally
			return
		}
		d.logger.Warn("duel_handshake_failed", "role", string(role), "err", err)
		d.queue.Push(event.Event{Kind: event.KindLinkDown, At: time.Now(), Role: string(role), Err: err})
		return
	}

	link := NewLink(conn, d.queue, d.cfg, d.logger)
	link.Send(profile)

	d.mu.Lock()
	if ctx.Err() != nil {
		d.mu.Unlock()
		conn.Close()
		return
	}
	d.link = link
	d.mu.Unlock()

	link.Start()
	d.logger.Info("duel_link_up", "role", string(role), "remote", remoteAddr(conn))
	d.queue.Push(event.Event{Kind: event.KindLinkUp, At: time.Now(), Role: string(role)})
}

// Send forwards a message to the peer. It reports false when there is no link.
func (d *Dialer) Send(m Message) bool {
	d.mu.Lock()
	link := d.link
	d.mu.Unlock()
	if link == nil {
		return false
	}
	return link.Send(m)
}

// Connected reports whether a link is established and running.
func (d *Dialer) Connected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.link == nil {
		return false
	}
	select {
	case <-d.link.Done():
		return false
	default:
		return true
	}
}

// Close cancels any handshake and closes the link.
func (d *Dialer) Close() {
	d.mu.Lock()
	d.stopLocked()
	d.mu.Unlock()
}

func (d *Dialer) stopLocked() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.link != nil {
		d.link.Close()
		d.link = nil
	}
}
