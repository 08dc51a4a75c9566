package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"duckshell/command"
	"duckshell/engine"
	"duckshell/shell"
)

const (
	PromptColor = "\033[36m" // Cyan
	ResetColor  = "\033[0m"
	BoldColor   = "\033[1m"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Usage = usage
	flag.Parse()

	database := flag.Arg(0)
	oneShot := flag.Arg(1)

	if database == "" {
		// scratch database for ad hoc sessions, removed on exit
		tempDir, err := os.MkdirTemp("", "duckshell")
		if err != nil {
			return err
		}
		defer os.RemoveAll(tempDir)
		database = filepath.Join(tempDir, "scratch.duckdb")
	}

	eng, err := engine.Open(database)
	if err != nil {
		return err
	}
	defer eng.Close()

	if oneShot != "" {
		return runQuery(eng, oneShot)
	}

	if !shell.Interactive() {
		shell.New(eng, shell.NewScannerReader(os.Stdin), os.Stdout, command.Default()).Run()
		return nil
	}

	reader, err := shell.NewReadlineReader(historyPath())
	if err != nil {
		return err
	}
	defer reader.Close()

	printBanner(eng, database)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	sh := shell.New(eng, reader, os.Stdout, command.Default())
	sh.NotifyInterrupt(interrupt)
	sh.Run()
	return nil
}

// runQuery executes a single query given on the command line and exits.
func runQuery(eng *engine.Engine, query string) error {
	result, err := eng.Query(query)
	if err != nil {
		return err
	}
	defer result.Close()

	for {
		row, err := result.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := shell.Print(os.Stdout, row); err != nil {
			return err
		}
	}
}

func printBanner(eng *engine.Engine, database string) {
	fmt.Printf("%s%sduckshell%s %s, DuckDB %s\n", BoldColor, PromptColor, ResetColor, Version, eng.Version())
	fmt.Printf("Enter %q for usage hints.\n", command.Marker+"help")
	fmt.Printf("Connected to database: %s\n", database)
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".duckshell_history")
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: duckshell [database] [sql]\n\n")
	fmt.Fprintln(out, "  database   Path of a DuckDB database (a scratch database is used when omitted)")
	fmt.Fprintln(out, "  sql        Optional SQL to execute non-interactively")
	flag.PrintDefaults()
}
