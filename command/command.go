package command

import (
	"fmt"
	"sort"
	"strings"

	"duckshell/engine"
)

// ParamType tags the scalar conversion applied to a bound token.
type ParamType int

const (
	TypeString ParamType = iota
	TypeInt
	// TypeRaw passes the token through with no conversion at all.
	TypeRaw
)

// Param describes one positional parameter of a command, in declaration
// order. A parameter with Optional set is filled from Default when the
// token is omitted; optional parameters may only appear at the tail.
type Param struct {
	Name     string
	Type     ParamType
	Default  string
	Optional bool
}

// HandlerFunc executes a command against a live connection. Arguments
// arrive in declared parameter order, defaults already applied.
type HandlerFunc func(eng *engine.Engine, args []string) (engine.Result, error)

// Command pairs a handler with the parameter descriptors the dispatcher is
// generated from.
type Command struct {
	Name   string
	Params []Param
	Run    HandlerFunc
}

// Usage renders the command's calling convention, e.g.
// ".list-tables [schema]".
func (cmd Command) Usage() string {
	parts := []string{Marker + cmd.Name}
	for _, param := range cmd.Params {
		if param.Optional {
			parts = append(parts, "["+param.Name+"]")
		} else {
			parts = append(parts, "<"+param.Name+">")
		}
	}
	return strings.Join(parts, " ")
}

// Registry maps command names to commands. It is populated once at process
// start and frozen; re-registering a name is a programming error.
type Registry struct {
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

func (reg *Registry) Register(cmd Command) {
	if _, dup := reg.commands[cmd.Name]; dup {
		panic(fmt.Sprintf("command %q registered twice", cmd.Name))
	}
	reg.commands[cmd.Name] = cmd
}

func (reg *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := reg.commands[name]
	return cmd, ok
}

// All returns the registered commands sorted by name.
func (reg *Registry) All() []Command {
	all := make([]Command, 0, len(reg.commands))
	for _, cmd := range reg.commands {
		all = append(all, cmd)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

var defaultRegistry = NewRegistry()

// Register adds a command to the process-wide registry. Must happen before
// the default dispatcher is first built.
func Register(cmd Command) {
	defaultRegistry.Register(cmd)
}
