package shell

import (
	"bufio"
	"io"
	"os"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// LineReader supplies one input line per call, without its trailing
// newline. It returns io.EOF when input is exhausted or the user asked to
// stop.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Interactive reports whether stdin is attached to a terminal.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ReadlineReader reads lines with line editing and persistent history.
// An interrupt at the prompt is reported as io.EOF so the driver sees a
// single termination signal.
type ReadlineReader struct {
	rl *readline.Instance
}

// NewReadlineReader opens a readline instance backed by historyFile. An
// empty or missing history file is tolerated; pass "" to disable history.
func NewReadlineReader(historyFile string) (*ReadlineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:       historyFile,
		HistorySearchFold: true,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
	})
	if err != nil {
		return nil, err
	}
	return &ReadlineReader{rl: rl}, nil
}

func (reader *ReadlineReader) ReadLine(prompt string) (string, error) {
	reader.rl.SetPrompt(prompt)
	line, err := reader.rl.Readline()
	switch err {
	case nil:
		return line, nil
	case readline.ErrInterrupt:
		return "", io.EOF
	default:
		return "", err
	}
}

// Close flushes history to disk and restores the terminal.
func (reader *ReadlineReader) Close() error {
	return reader.rl.Close()
}

// ScannerReader reads plain lines and ignores prompts, for piped input.
type ScannerReader struct {
	scanner *bufio.Scanner
}

func NewScannerReader(r io.Reader) *ScannerReader {
	return &ScannerReader{scanner: bufio.NewScanner(r)}
}

func (reader *ScannerReader) ReadLine(string) (string, error) {
	if !reader.scanner.Scan() {
		if err := reader.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return reader.scanner.Text(), nil
}
