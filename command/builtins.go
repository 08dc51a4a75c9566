package command

import "duckshell/engine"

// DefaultSchema is the schema list-tables falls back to when none is given.
const DefaultSchema = "public"

func init() {
	Register(Command{
		Name: "list-schemas",
		Run:  listSchemas,
	})
	Register(Command{
		Name: "list-tables",
		Params: []Param{
			{Name: "schema", Type: TypeString, Default: DefaultSchema, Optional: true},
		},
		Run: listTables,
	})
	Register(Command{
		Name: "describe-table",
		Params: []Param{
			{Name: "table", Type: TypeString},
		},
		Run: describeTable,
	})
	Register(Command{
		Name: "exit",
		Run:  exitShell,
	})
	Register(Command{
		Name: "help",
		Run:  help,
	})
}

func listSchemas(eng *engine.Engine, _ []string) (engine.Result, error) {
	schemas, err := eng.SchemaNames()
	if err != nil {
		return nil, err
	}
	data := make([][]string, len(schemas))
	for i, schema := range schemas {
		data[i] = []string{schema}
	}
	return engine.NewRows(data), nil
}

func listTables(eng *engine.Engine, args []string) (engine.Result, error) {
	tables, err := eng.TableNames(args[0])
	if err != nil {
		return nil, err
	}
	data := make([][]string, len(tables))
	for i, table := range tables {
		data[i] = []string{table}
	}
	return engine.NewRows(data), nil
}

func describeTable(eng *engine.Engine, args []string) (engine.Result, error) {
	columns, err := eng.TableColumns(args[0])
	if err != nil {
		return nil, err
	}
	data := make([][]string, len(columns))
	for i, column := range columns {
		data[i] = []string{column.Name, column.Type}
	}
	return engine.NewRows(data), nil
}

func exitShell(*engine.Engine, []string) (engine.Result, error) {
	return nil, ErrExit
}

// help lists the usage line of every registered command, already sorted by
// Registry.All.
func help(*engine.Engine, []string) (engine.Result, error) {
	all := defaultRegistry.All()
	data := make([][]string, len(all))
	for i, cmd := range all {
		data[i] = []string{cmd.Usage()}
	}
	return engine.NewRows(data), nil
}
