package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// Prompter asks the user questions on a terminal.
//
// Lines are read by a single background goroutine started on the first
// ReadLine. A read abandoned through ctx keeps its line for the next call.
type Prompter struct {
	writer io.Writer
	reader *bufio.Reader
	lines  chan string
	start  sync.Once
	err    error
}

// NewPrompter creates a prompter reading answers from r and writing questions to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(r),
		writer: w,
		lines:  make(chan string),
	}
}

// ReadLine reads one trimmed line. It returns ErrInputCancelled if ctx ends
// first, and the reader's error (io.EOF included) once input is exhausted.
func (p *Prompter) ReadLine(ctx context.Context) (string, error) {
	p.start.Do(func() { go p.readLoop() })

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case line, ok := <-p.lines:
		if !ok {
			return "", p.err
		}
		return line, nil
	}
}

// readLoop feeds p.lines until the reader fails. p.err is set before the
// channel closes.
func (p *Prompter) readLoop() {
	for {
		value, err := p.reader.ReadString('\n')
		if value != "" || err == nil {
			p.lines <- strings.TrimSpace(value)
		}
		if err != nil {
			p.err = err
			close(p.lines)
			return
		}
	}
}

// Confirm asks a yes/no question. Anything but y or yes means no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(question+" [y/N]")); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := p.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes", "ha":
		return true, nil
	default:
		return false, nil
	}
}
