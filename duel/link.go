package duel

import (
	"bufio"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/balloonwar/config"
	"github.com/pthm-cable/balloonwar/event"
)

// LinkConfig holds link timing and buffer sizes.
type LinkConfig struct {
	ReadTimeout   time.Duration // 0 disables the read deadline
	WriteTimeout  time.Duration
	Heartbeat     time.Duration // 0 disables PING
	SendQueueSize int
	MaxLineLength int
}

// LinkConfigFrom extracts link settings from the game config.
func LinkConfigFrom(cfg *config.Config) LinkConfig {
	return LinkConfig{
		ReadTimeout:   cfg.Derived.ReadTimeout,
		WriteTimeout:  cfg.Derived.WriteTimeout,
		Heartbeat:     cfg.Derived.Heartbeat,
		SendQueueSize: cfg.Duel.SendQueue,
		MaxLineLength: cfg.Duel.MaxLineLength,
	}
}

// Link runs the read and write loops for one established connection.
// Decoded messages are posted to the event queue; the first failure posts
// a single KindLinkDown and stops both loops. There is no reconnection.
type Link struct {
	conn   net.Conn
	dec    *Decoder
	writer *bufio.Writer
	queue  *event.Queue
	cfg    LinkConfig
	logger *slog.Logger
	now    func() time.Time

	sendCh    chan Message
	closeCh   chan struct{}
	closeOnce sync.Once
	downOnce  sync.Once
	closing   atomic.Bool
	wg        sync.WaitGroup
}

// NewLink wraps an established connection. Call Start to run it.
func NewLink(conn net.Conn, queue *event.Queue, cfg LinkConfig, logger *slog.Logger) *Link {
	if cfg.SendQueueSize <= 0 {
		cfg.SendQueueSize = 64
	}
	if cfg.MaxLineLength <= 0 {
		cfg.MaxLineLength = 256
	}
	return &Link{
		conn:    conn,
		dec:     NewDecoder(conn, cfg.MaxLineLength),
		writer:  bufio.NewWriter(conn),
		queue:   queue,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
		sendCh:  make(chan Message, cfg.SendQueueSize),
		closeCh: make(chan struct{}),
	}
}

// Start launches the I/O loops.
func (l *Link) Start() {
	l.wg.Add(2)
	go l.readLoop()
	go l.writeLoop()
}

// Send queues a message. It never blocks; it returns false when the link
// is closed or the queue is full.
func (l *Link) Send(m Message) bool {
	select {
	case <-l.closeCh:
		return false
	default:
	}

	select {
	case l.sendCh <- m:
		return true
	default:
		l.logger.Debug("duel_send_dropped", "cmd", m.Cmd.String())
		return false
	}
}

// Close shuts the link down without reporting it as a failure.
func (l *Link) Close() {
	l.closing.Store(true)
	l.shutdown()
}

// Wait blocks until both loops have exited.
func (l *Link) Wait() {
	l.wg.Wait()
}

// Done is closed once the link stops.
func (l *Link) Done() <-chan struct{} {
	return l.closeCh
}

func (l *Link) shutdown() {
	l.closeOnce.Do(func() {
		close(l.closeCh)
		l.conn.Close()
	})
}

// fail reports the first error and stops the link.
func (l *Link) fail(err error) {
	l.downOnce.Do(func() {
		if l.closing.Load() {
			return
		}
		l.logger.Warn("duel_link_down", "remote", remoteAddr(l.conn), "err", err)
		l.queue.Push(event.Event{Kind: event.KindLinkDown, At: l.now(), Err: err})
	})
	l.shutdown()
}

func (l *Link) readLoop() {
	defer l.wg.Done()

	for {
		if l.cfg.ReadTimeout > 0 {
			if err := l.conn.SetReadDeadline(time.Now().Add(l.cfg.ReadTimeout)); err != nil {
				l.fail(err)
				return
			}
		}

		line, err := l.dec.Next()
		if err != nil {
			l.fail(err)
			return
		}

		msg, err := Parse(line)
		if err != nil {
			l.logger.Debug("duel_line_dropped", "line", line, "err", err)
			continue
		}
		if msg.Cmd == CmdPing {
			continue
		}

		l.queue.Push(toEvent(msg, l.now()))
	}
}

func (l *Link) writeLoop() {
	defer l.wg.Done()

	var heartbeat <-chan time.Time
	if l.cfg.Heartbeat > 0 {
		ticker := time.NewTicker(l.cfg.Heartbeat)
		defer ticker.Stop()
		heartbeat = ticker.C
	}

	for {
		var msg Message
		select {
		case <-l.closeCh:
			return
		case msg = <-l.sendCh:
		case <-heartbeat:
			msg = Message{Cmd: CmdPing}
		}

		if err := l.write(msg); err != nil {
			l.fail(err)
			return
		}
	}
}

func (l *Link) write(msg Message) error {
	if l.cfg.WriteTimeout > 0 {
		if err := l.conn.SetWriteDeadline(time.Now().Add(l.cfg.WriteTimeout)); err != nil {
			return err
		}
	}
	if _, err := l.writer.Write(Encode(msg)); err != nil {
		return err
	}
	return l.writer.Flush()
}

func toEvent(msg Message, at time.Time) event.Event {
	ev := event.Event{At: at}
	switch msg.Cmd {
	case CmdProfile:
		ev.Kind = event.KindProfile
		ev.Name = msg.Name
		ev.Best = strconv.Itoa(msg.Best)
	case CmdTimer:
		ev.Kind = event.KindTimer
		ev.Seconds = msg.Seconds
	case CmdPop:
		ev.Kind = event.KindPop
	case CmdStink:
		ev.Kind = event.KindStink
	case CmdStinkTriple:
		ev.Kind = event.KindStinkTriple
	}
	return ev
}

func remoteAddr(conn net.Conn) string {
	if a := conn.RemoteAddr(); a != nil {
		return a.String()
	}
	return ""
}
