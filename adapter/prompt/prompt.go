package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Policy answers every question the same way.
type Policy bool

const (
	Always Policy = true
	Never  Policy = false
)

func (p Policy) Confirm(context.Context, string, string) bool {
	return bool(p)
}

// Terminal asks on out and reads a y/n answer from in. Anything but an
// explicit yes, including a read error, is a no.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
	mu  sync.Mutex
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (t *Terminal) Confirm(ctx context.Context, title, question string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ctx.Err() != nil {
		return false
	}

	if _, err := fmt.Fprintf(t.out, "%s\n%s [y/N] ", title, question); err != nil {
		return false
	}

	line, err := t.in.ReadString('\n')
	if err != nil && len(line) == 0 {
		return false
	}

	return IsYes(line)
}

func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "o", "oui":
		return true
	default:
		return false
	}
}
