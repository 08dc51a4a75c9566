// Package command implements the administrative dot-command subsystem: a
// frozen registry of named commands with descriptor-declared positional
// parameters, and a dispatcher generated from those descriptors.
//
// Commands declare their parameters as data rather than code:
//
//	command.Register(command.Command{
//	    Name: "list-tables",
//	    Params: []command.Param{
//	        {Name: "schema", Type: command.TypeString, Default: "public", Optional: true},
//	    },
//	    Run: listTables,
//	})
//
// The dispatcher derives a positional parser for each entry, so a new
// command needs nothing beyond its registration. The process-wide
// dispatcher is built once, after all init-time registrations, and reused:
//
//	result, err := command.Default().Dispatch(eng, ".list-tables public")
//
// Parse failures surface as *ParseError and are always recoverable. The
// exit command returns ErrExit instead of a result; the shell treats it as
// end-of-input.
package command
