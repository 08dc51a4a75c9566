package shell

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"duckshell/command"
	"duckshell/engine"
)

// scriptReader replays a fixed set of lines and records the prompts it was
// asked with. After the script runs out it reports io.EOF.
type scriptReader struct {
	lines   []string
	prompts []string
}

func (reader *scriptReader) ReadLine(prompt string) (string, error) {
	reader.prompts = append(reader.prompts, prompt)
	if len(reader.lines) == 0 {
		return "", io.EOF
	}
	line := reader.lines[0]
	reader.lines = reader.lines[1:]
	return line, nil
}

func setupTestEngine(t *testing.T) *engine.Engine {
	t.Helper()

	eng, err := engine.Open("")
	if err != nil {
		t.Fatalf("Failed to open in-memory engine: %v", err)
	}
	t.Cleanup(func() { eng.Close() })

	for _, statement := range []string{
		"CREATE SCHEMA public",
		"CREATE TABLE public.orders (id INTEGER, total DOUBLE)",
	} {
		result, err := eng.Query(statement)
		if err != nil {
			t.Fatalf("Failed to execute %q: %v", statement, err)
		}
		result.Close()
	}

	return eng
}

func setupTestShell(t *testing.T, lines ...string) (*Shell, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	sh := New(setupTestEngine(t), &scriptReader{lines: lines}, out, command.Default())
	return sh, out
}

func TestNextUnitSingleStatement(t *testing.T) {
	sh := &Shell{in: &scriptReader{lines: []string{"select 1;"}}}

	unit, err := sh.nextUnit()
	if err != nil {
		t.Fatalf("Failed to read unit: %v", err)
	}
	if unit != "select 1;" {
		t.Errorf("Expected %q, got %q", "select 1;", unit)
	}
}

func TestNextUnitMultiLineStatement(t *testing.T) {
	reader := &scriptReader{lines: []string{"select", "1;"}}
	sh := &Shell{in: reader}

	unit, err := sh.nextUnit()
	if err != nil {
		t.Fatalf("Failed to read unit: %v", err)
	}
	if unit != "select\n1;" {
		t.Errorf("Expected %q, got %q", "select\n1;", unit)
	}

	wantPrompts := []string{mainPrompt, contPrompt}
	if len(reader.prompts) != 2 || reader.prompts[0] != wantPrompts[0] || reader.prompts[1] != wantPrompts[1] {
		t.Errorf("Expected prompts %v, got %v", wantPrompts, reader.prompts)
	}
}

func TestNextUnitTrailingWhitespaceTerminator(t *testing.T) {
	sh := &Shell{in: &scriptReader{lines: []string{"select 1;  "}}}

	unit, err := sh.nextUnit()
	if err != nil {
		t.Fatalf("Failed to read unit: %v", err)
	}
	if unit != "select 1;  " {
		t.Errorf("Expected the raw line back, got %q", unit)
	}
}

func TestNextUnitCommandNeverAccumulates(t *testing.T) {
	reader := &scriptReader{lines: []string{"  .help", "select 1;"}}
	sh := &Shell{in: reader}

	unit, err := sh.nextUnit()
	if err != nil {
		t.Fatalf("Failed to read unit: %v", err)
	}
	if unit != "  .help" {
		t.Errorf("Expected command line alone, got %q", unit)
	}
	if len(reader.lines) != 1 {
		t.Errorf("Expected the next line to stay unread, %d lines left", len(reader.lines))
	}
}

func TestNextUnitEmptyFirstLine(t *testing.T) {
	sh := &Shell{in: &scriptReader{lines: []string{""}}}

	unit, err := sh.nextUnit()
	if err != nil {
		t.Fatalf("Failed to read unit: %v", err)
	}
	if unit != "" {
		t.Errorf("Expected empty unit, got %q", unit)
	}
}

func TestNextUnitEndOfInput(t *testing.T) {
	sh := &Shell{in: &scriptReader{}}

	if _, err := sh.nextUnit(); err != io.EOF {
		t.Errorf("Expected io.EOF, got %v", err)
	}
}

func TestRunDescribeTable(t *testing.T) {
	sh, out := setupTestShell(t, ".describe-table orders")

	sh.Run()

	want := "id|INTEGER\ntotal|DOUBLE\n\n"
	if out.String() != want {
		t.Errorf("Expected output %q, got %q", want, out.String())
	}
}

func TestRunExit(t *testing.T) {
	sh, out := setupTestShell(t, ".exit")

	sh.Run()

	if out.String() != "\n" {
		t.Errorf("Expected a single trailing newline, got %q", out.String())
	}
}

func TestRunEndOfInput(t *testing.T) {
	sh, out := setupTestShell(t)

	sh.Run()

	if out.String() != "\n" {
		t.Errorf("Expected a single trailing newline, got %q", out.String())
	}
}

func TestRunEmptyUnitIsNoOp(t *testing.T) {
	sh, out := setupTestShell(t, "", "select 42 as v;", ".exit")

	sh.Run()

	if out.String() != "42\n\n" {
		t.Errorf("Expected %q, got %q", "42\n\n", out.String())
	}
}

func TestRunUnknownCommandRecovers(t *testing.T) {
	sh, out := setupTestShell(t, ".bogus", "select 41 + 1 as v;", ".exit")

	sh.Run()

	output := out.String()
	if !strings.Contains(output, "unknown command: bogus") {
		t.Errorf("Expected unknown-command message in %q", output)
	}
	if !strings.Contains(output, "42\n") {
		t.Errorf("Expected the loop to keep serving queries, got %q", output)
	}
}

func TestRunEngineErrorRecovers(t *testing.T) {
	sh, out := setupTestShell(t, "select * from missing;", "select 7 as v;", ".exit")

	sh.Run()

	output := out.String()
	if !strings.Contains(output, "missing") {
		t.Errorf("Expected engine error message in %q", output)
	}
	if !strings.Contains(output, "7\n") {
		t.Errorf("Expected the loop to keep serving queries, got %q", output)
	}
}

func TestRunStatementPassedThroughVerbatim(t *testing.T) {
	sh, out := setupTestShell(t, "select", "2 + 3 as v", ";", ".exit")

	sh.Run()

	if !strings.Contains(out.String(), "5\n") {
		t.Errorf("Expected accumulated statement to execute, got %q", out.String())
	}
}

// trackedResult counts Close calls and can fail mid-iteration.
type trackedResult struct {
	rows   [][]string
	pos    int
	failAt int // index at which Next errors; -1 to disable
	closes int
}

func (result *trackedResult) Next() ([]string, error) {
	if result.failAt >= 0 && result.pos == result.failAt {
		return nil, errors.New("mid-stream failure")
	}
	if result.pos >= len(result.rows) {
		return nil, io.EOF
	}
	row := result.rows[result.pos]
	result.pos++
	return row, nil
}

func (result *trackedResult) Close() error {
	result.closes++
	return nil
}

func setupTrackedShell(t *testing.T, result *trackedResult, lines ...string) (*Shell, *bytes.Buffer) {
	t.Helper()

	reg := command.NewRegistry()
	reg.Register(command.Command{
		Name: "emit",
		Run: func(*engine.Engine, []string) (engine.Result, error) {
			return result, nil
		},
	})

	out := &bytes.Buffer{}
	return New(nil, &scriptReader{lines: lines}, out, command.Build(reg)), out
}

func TestRunClosesResultOnce(t *testing.T) {
	result := &trackedResult{rows: [][]string{{"a"}, {"b"}}, failAt: -1}
	sh, out := setupTrackedShell(t, result, ".emit")

	sh.Run()

	if result.closes != 1 {
		t.Errorf("Expected exactly one close, got %d", result.closes)
	}
	if out.String() != "a\nb\n\n" {
		t.Errorf("Expected %q, got %q", "a\nb\n\n", out.String())
	}
}

func TestRunClosesResultOnMidStreamError(t *testing.T) {
	result := &trackedResult{rows: [][]string{{"a"}, {"b"}}, failAt: 1}
	sh, out := setupTrackedShell(t, result, ".emit")

	sh.Run()

	if result.closes != 1 {
		t.Errorf("Expected exactly one close after mid-stream error, got %d", result.closes)
	}
	if !strings.Contains(out.String(), "mid-stream failure") {
		t.Errorf("Expected the error to be printed, got %q", out.String())
	}
}

func TestRunInterruptWhilePrinting(t *testing.T) {
	result := &trackedResult{rows: [][]string{{"a"}, {"b"}, {"c"}}, failAt: -1}
	sh, out := setupTrackedShell(t, result, ".emit")

	interrupt := make(chan os.Signal, 1)
	interrupt <- os.Interrupt
	sh.NotifyInterrupt(interrupt)

	sh.Run()

	if result.closes != 1 {
		t.Errorf("Expected the in-flight result to be released, got %d closes", result.closes)
	}
	if out.String() != "\n" {
		t.Errorf("Expected termination with a trailing newline, got %q", out.String())
	}
}
