package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"duckshell/engine"
)

// Marker prefixes every administrative command line.
const Marker = "."

// ErrExit is returned by the exit command to signal end-of-input to the
// driver instead of producing a result.
var ErrExit = errors.New("exit")

// ParseError reports a malformed command line: unknown name, wrong arity,
// or a token that fails its scalar conversion. It is always recoverable;
// the driver prints it and keeps the session alive.
type ParseError struct {
	msg string
}

func (e *ParseError) Error() string {
	return e.msg
}

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{msg: fmt.Sprintf(format, args...)}
}

// Dispatcher turns a tokenized command line into a bound handler
// invocation. Build derives one line parser per registered command from
// its parameter descriptors, so adding a registry entry is all a new
// command needs.
type Dispatcher struct {
	parsers map[string]*lineParser
}

type lineParser struct {
	cmd      Command
	required int
}

// Build constructs a Dispatcher for a registry. It panics if a command
// declares a required parameter after an optional one, since such a
// descriptor cannot be bound left to right.
func Build(reg *Registry) *Dispatcher {
	dispatcher := &Dispatcher{parsers: make(map[string]*lineParser)}
	for _, cmd := range reg.All() {
		required := 0
		optionalSeen := false
		for _, param := range cmd.Params {
			if param.Optional {
				optionalSeen = true
				continue
			}
			if optionalSeen {
				panic(fmt.Sprintf("command %q: required parameter %q follows an optional one",
					cmd.Name, param.Name))
			}
			required++
		}
		dispatcher.parsers[cmd.Name] = &lineParser{cmd: cmd, required: required}
	}
	return dispatcher
}

var (
	buildOnce         sync.Once
	defaultDispatcher *Dispatcher
)

// Default returns the dispatcher for the process-wide registry, built once
// after all static registrations and reused for the life of the process.
func Default() *Dispatcher {
	buildOnce.Do(func() {
		defaultDispatcher = Build(defaultRegistry)
	})
	return defaultDispatcher
}

// Dispatch strips the marker, tokenizes the line on whitespace, binds the
// tokens against the named command's parameters and invokes its handler.
func (dispatcher *Dispatcher) Dispatch(eng *engine.Engine, line string) (engine.Result, error) {
	trimmed := strings.TrimPrefix(strings.TrimLeft(line, " \t"), Marker)
	tokens := strings.Fields(trimmed)
	if len(tokens) == 0 {
		return nil, parseErrorf("no command given (try %shelp)", Marker)
	}

	parser, ok := dispatcher.parsers[tokens[0]]
	if !ok {
		return nil, parseErrorf("unknown command: %s (try %shelp)", tokens[0], Marker)
	}

	args, err := parser.bind(tokens[1:])
	if err != nil {
		return nil, err
	}
	return parser.cmd.Run(eng, args)
}

func (parser *lineParser) bind(tokens []string) ([]string, error) {
	if len(tokens) < parser.required {
		return nil, parseErrorf("%s: expected at least %d argument(s), got %d",
			parser.cmd.Name, parser.required, len(tokens))
	}
	if len(tokens) > len(parser.cmd.Params) {
		return nil, parseErrorf("%s: expected at most %d argument(s), got %d",
			parser.cmd.Name, len(parser.cmd.Params), len(tokens))
	}

	args := make([]string, len(parser.cmd.Params))
	for i, param := range parser.cmd.Params {
		if i >= len(tokens) {
			args[i] = param.Default
			continue
		}
		value, err := convert(parser.cmd.Name, param, tokens[i])
		if err != nil {
			return nil, err
		}
		args[i] = value
	}
	return args, nil
}

func convert(command string, param Param, token string) (string, error) {
	switch param.Type {
	case TypeInt:
		if _, err := strconv.Atoi(token); err != nil {
			return "", parseErrorf("%s: argument %s: expected an integer, got %q",
				command, param.Name, token)
		}
	}
	return token, nil
}
