// Package shell implements the interactive loop: reading lines, growing
// them into logical command units, routing each unit to either the
// dot-command dispatcher or the engine, and printing the resulting rows.
//
// The loop is single-threaded and synchronous; exactly one command is in
// flight at a time, and its result is released before the next prompt.
//
//	reader, err := shell.NewReadlineReader(historyFile)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Close()
//
//	sh := shell.New(eng, reader, os.Stdout, command.Default())
//	sh.Run()
package shell
