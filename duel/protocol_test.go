package duel

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		msg  Message
		want string
	}{
		{Profile("Bella", 42), "PROFILE:Bella:42\n"},
		{Profile("a:b\x07c", 0), "PROFILE:a_b_c:0\n"},
		{Timer(90), "TIMER:90\n"},
		{Message{Cmd: CmdPop}, "POP\n"},
		{Message{Cmd: CmdStink}, "STINK\n"},
		{Message{Cmd: CmdStinkTriple}, "STINK_TRIPLE\n"},
		{Message{Cmd: CmdPing}, "PING\n"},
	}

	for _, tt := range tests {
		if got := string(Encode(tt.msg)); got != tt.want {
			t.Errorf("Encode(%+v) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		line    string
		want    Message
		wantErr error
	}{
		{"POP", Message{Cmd: CmdPop}, nil},
		{"STINK", Message{Cmd: CmdStink}, nil},
		{"STINK_TRIPLE", Message{Cmd: CmdStinkTriple}, nil},
		{"PING", Message{Cmd: CmdPing}, nil},
		{"TIMER:90", Message{Cmd: CmdTimer, Seconds: 90}, nil},
		{"TIMER:90\r", Message{Cmd: CmdTimer, Seconds: 90}, nil},
		{"PROFILE:Lodi:7", Message{Cmd: CmdProfile, Name: "Lodi", Best: 7}, nil},
		{"PROFILE::0", Message{Cmd: CmdProfile, Name: "", Best: 0}, nil},

		{"TIMER", Message{}, ErrMalformed},
		{"TIMER:", Message{}, ErrMalformed},
		{"TIMER:abc", Message{}, ErrMalformed},
		{"TIMER:-5", Message{}, ErrMalformed},
		{"TIMER:0", Message{}, ErrMalformed},
		{"TIMER:1:2", Message{}, ErrMalformed},
		{"PROFILE:OnlyName", Message{}, ErrMalformed},
		{"PROFILE:a:b:c", Message{}, ErrMalformed},
		{"PROFILE:Name:lots", Message{}, ErrMalformed},
		{"POP:1", Message{}, ErrMalformed},
		{"", Message{}, ErrUnknownCommand},
		{"POPSTINK", Message{}, ErrUnknownCommand},
		{"pop", Message{}, ErrUnknownCommand},
	}

	for _, tt := range tests {
		got, err := Parse(tt.line)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.line, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tt.line, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

func TestSanitizeName(t *testing.T) {
	long := strings.Repeat("x", 50)
	if got := SanitizeName(long); len(got) != MaxNameLength {
		t.Errorf("expected name truncated to %d, got %d", MaxNameLength, len(got))
	}
	if got := SanitizeName("  Bella\n "); got != "Bella" {
		t.Errorf("expected trimmed name, got %q", got)
	}
	if got := SanitizeName("x:y"); got != "x_y" {
		t.Errorf("expected colon replaced, got %q", got)
	}
}

func collectLines(t *testing.T, d *Decoder) []string {
	t.Helper()
	var lines []string
	for {
		line, err := d.Next()
		if err == io.EOF {
			return lines
		}
		if err != nil {
			t.Fatalf("Next error: %v", err)
		}
		lines = append(lines, line)
	}
}

func TestDecoderManyPerRead(t *testing.T) {
	d := NewDecoder(strings.NewReader("POP\nSTINK\nTIMER:30\n"), 256)
	lines := collectLines(t, d)
	want := []string{"POP", "STINK", "TIMER:30"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestDecoderSplitAcrossReads(t *testing.T) {
	r := iotest.OneByteReader(strings.NewReader("PROFILE:Bella:12\nPOP\n"))
	lines := collectLines(t, NewDecoder(r, 256))
	if len(lines) != 2 || lines[0] != "PROFILE:Bella:12" || lines[1] != "POP" {
		t.Errorf("expected profile and pop, got %v", lines)
	}
}

func TestDecoderDropsOversizedLines(t *testing.T) {
	input := strings.Repeat("A", 300) + "\nPOP\n" + strings.Repeat("B", 20) + "\nSTINK\n"
	d := NewDecoder(strings.NewReader(input), 16)
	lines := collectLines(t, d)

	if len(lines) != 2 || lines[0] != "POP" || lines[1] != "STINK" {
		t.Errorf("expected only short lines, got %v", lines)
	}
	if d.Dropped() != 2 {
		t.Errorf("expected 2 dropped lines, got %d", d.Dropped())
	}
}

func TestDecoderPartialLineAtEOF(t *testing.T) {
	lines := collectLines(t, NewDecoder(strings.NewReader("POP\nSTI"), 256))
	if len(lines) != 1 || lines[0] != "POP" {
		t.Errorf("expected partial line discarded, got %v", lines)
	}
}
