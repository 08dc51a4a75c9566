package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"duckshell/command"
	"duckshell/engine"
)

const (
	mainPrompt = "duck> "
	contPrompt = " ...> "

	// terminator ends an accumulated statement; dot commands never need it
	terminator = ";"
)

var errInterrupted = errors.New("interrupted")

// Shell drives the read-dispatch-print loop against a live engine.
type Shell struct {
	eng        *engine.Engine
	in         LineReader
	out        io.Writer
	dispatcher *command.Dispatcher
	interrupt  <-chan os.Signal
}

func New(eng *engine.Engine, in LineReader, out io.Writer, dispatcher *command.Dispatcher) *Shell {
	return &Shell{eng: eng, in: in, out: out, dispatcher: dispatcher}
}

// NotifyInterrupt makes Run terminate, after releasing any in-flight
// result, when a signal arrives on ch while rows are being printed.
// Interrupts at the prompt are already handled by the line reader.
func (shell *Shell) NotifyInterrupt(ch <-chan os.Signal) {
	shell.interrupt = ch
}

// Run loops until end-of-input, an interrupt, or the exit command. Parse
// errors and engine errors are printed and the loop continues; nothing
// else escapes an iteration.
func (shell *Shell) Run() {
	for {
		unit, err := shell.nextUnit()
		if err != nil {
			fmt.Fprintln(shell.out)
			return
		}
		if unit == "" {
			continue
		}

		if err := shell.execute(unit); err != nil {
			if errors.Is(err, command.ErrExit) || errors.Is(err, errInterrupted) {
				fmt.Fprintln(shell.out)
				return
			}
			fmt.Fprintln(shell.out, err)
		}
	}
}

// nextUnit accumulates one logical command. A line starting with the
// command marker is returned alone immediately; anything else keeps
// accumulating under the continuation prompt until a line ends with the
// statement terminator. An empty line ends the unit early, so an empty
// first line yields an empty unit.
func (shell *Shell) nextUnit() (string, error) {
	var buffer []string
	for linenum := 0; ; linenum++ {
		prompt := mainPrompt
		if linenum > 0 {
			prompt = contPrompt
		}

		line, err := shell.in.ReadLine(prompt)
		if err != nil {
			return "", err
		}
		if line == "" {
			break
		}
		buffer = append(buffer, line)

		if linenum == 0 && isCommand(line) {
			break
		}
		if strings.HasSuffix(strings.TrimRight(line, " \t"), terminator) {
			break
		}
	}
	return strings.Join(buffer, "\n"), nil
}

func isCommand(unit string) bool {
	return strings.HasPrefix(strings.TrimLeft(unit, " \t"), command.Marker)
}

func (shell *Shell) execute(unit string) error {
	result, err := shell.results(unit)
	if err != nil {
		return err
	}
	defer result.Close()

	return shell.show(result)
}

func (shell *Shell) results(unit string) (engine.Result, error) {
	if isCommand(unit) {
		return shell.dispatcher.Dispatch(shell.eng, unit)
	}
	return shell.eng.Query(unit)
}

func (shell *Shell) show(result engine.Result) error {
	for {
		select {
		case <-shell.interrupt:
			return errInterrupted
		default:
		}

		row, err := result.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := Print(shell.out, row); err != nil {
			return err
		}
	}
}

// Print writes one result row as pipe-joined text, the shell's only output
// format for rows.
func Print(w io.Writer, row []string) error {
	_, err := fmt.Fprintln(w, strings.Join(row, "|"))
	return err
}
