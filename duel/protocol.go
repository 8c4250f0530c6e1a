// Package duel implements the two-player link: a line-based text protocol
// over a byte stream, and the goroutines that carry it.
package duel

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrMalformed reports a line with the wrong shape for its command.
	ErrMalformed = errors.New("malformed message")
	// ErrUnknownCommand reports a line whose command is not part of the protocol.
	ErrUnknownCommand = errors.New("unknown command")
)

// Command identifies a protocol message.
type Command uint8

const (
	CmdProfile     Command = iota + 1 // PROFILE:<name>:<best>
	CmdTimer                          // TIMER:<seconds>
	CmdPop                            // POP
	CmdStink                          // STINK
	CmdStinkTriple                    // STINK_TRIPLE
	CmdPing                           // PING, liveness only
)

var commandWords = map[Command]string{
	CmdProfile:     "PROFILE",
	CmdTimer:       "TIMER",
	CmdPop:         "POP",
	CmdStink:       "STINK",
	CmdStinkTriple: "STINK_TRIPLE",
	CmdPing:        "PING",
}

func (c Command) String() string {
	if w, ok := commandWords[c]; ok {
		return w
	}
	return "UNKNOWN"
}

// MaxNameLength caps player names on the wire, in runes.
const MaxNameLength = 32

// Message is one decoded protocol line.
type Message struct {
	Cmd     Command
	Name    string // PROFILE
	Best    int    // PROFILE
	Seconds int    // TIMER
}

// Profile builds a PROFILE message.
func Profile(name string, best int) Message {
	return Message{Cmd: CmdProfile, Name: SanitizeName(name), Best: best}
}

// Timer builds a TIMER message.
func Timer(seconds int) Message {
	return Message{Cmd: CmdTimer, Seconds: seconds}
}

// Encode renders a message as a newline-terminated line.
func Encode(m Message) []byte {
	var line string
	switch m.Cmd {
	case CmdProfile:
		line = fmt.Sprintf("PROFILE:%s:%d", SanitizeName(m.Name), m.Best)
	case CmdTimer:
		line = "TIMER:" + strconv.Itoa(m.Seconds)
	default:
		line = m.Cmd.String()
	}
	return append([]byte(line), '\n')
}

// Parse decodes one line without its terminator. Field counts and numbers
// are validated before use.
func Parse(line string) (Message, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, ":")

	switch fields[0] {
	case "POP":
		return bare(CmdPop, fields)
	case "STINK":
		return bare(CmdStink, fields)
	case "STINK_TRIPLE":
		return bare(CmdStinkTriple, fields)
	case "PING":
		return bare(CmdPing, fields)

	case "PROFILE":
		if len(fields) != 3 {
			return Message{}, fmt.Errorf("PROFILE with %d fields: %w", len(fields), ErrMalformed)
		}
		best, err := strconv.Atoi(fields[2])
		if err != nil || best < 0 {
			return Message{}, fmt.Errorf("PROFILE best %q: %w", fields[2], ErrMalformed)
		}
		return Message{Cmd: CmdProfile, Name: SanitizeName(fields[1]), Best: best}, nil

	case "TIMER":
		if len(fields) != 2 {
			return Message{}, fmt.Errorf("TIMER with %d fields: %w", len(fields), ErrMalformed)
		}
		secs, err := strconv.Atoi(fields[1])
		if err != nil || secs <= 0 {
			return Message{}, fmt.Errorf("TIMER seconds %q: %w", fields[1], ErrMalformed)
		}
		return Message{Cmd: CmdTimer, Seconds: secs}, nil
	}
	return Message{}, fmt.Errorf("%q: %w", fields[0], ErrUnknownCommand)
}

func bare(cmd Command, fields []string) (Message, error) {
	if len(fields) != 1 {
		return Message{}, fmt.Errorf("%s with arguments: %w", cmd, ErrMalformed)
	}
	return Message{Cmd: cmd}, nil
}

// SanitizeName makes a player name safe to embed in a PROFILE line.
func SanitizeName(name string) string {
	var b strings.Builder
	n := 0
	for _, r := range strings.TrimSpace(name) {
		if n == MaxNameLength {
			break
		}
		if r == ':' || r == utf8.RuneError || unicode.IsControl(r) {
			r = '_'
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// Decoder splits a stream into protocol lines. Messages may arrive several
// per read or split across reads; lines longer than the limit are dropped.
type Decoder struct {
	r       *bufio.Reader
	maxLine int
	dropped int
}

// NewDecoder creates a decoder with a line limit in bytes, excluding the terminator.
func NewDecoder(r io.Reader, maxLine int) *Decoder {
	return &Decoder{r: bufio.NewReaderSize(r, maxLine+1), maxLine: maxLine}
}

// Next returns the next line without its terminator. A partial line at
// EOF is discarded.
func (d *Decoder) Next() (string, error) {
	for {
		line, err := d.r.ReadSlice('\n')
		switch {
		case err == nil:
			if len(line)-1 > d.maxLine {
				d.dropped++
				continue
			}
			return string(line[:len(line)-1]), nil
		case errors.Is(err, bufio.ErrBufferFull):
			if err := d.skipLine(); err != nil {
				return "", err
			}
			d.dropped++
		default:
			return "", err
		}
	}
}

// skipLine discards input up to and including the next newline.
func (d *Decoder) skipLine() error {
	for {
		_, err := d.r.ReadSlice('\n')
		if err == nil {
			return nil
		}
		if !errors.Is(err, bufio.ErrBufferFull) {
			return err
		}
	}
}

// Dropped returns how many oversized lines were discarded.
func (d *Decoder) Dropped() int {
	return d.dropped
}
