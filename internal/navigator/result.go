package navigator

// Result is one renderable unit of a response: a message, optionally with a
// table. ExecuteQuery returns exactly one Result per decomposed task.
type Result struct {
	Message string `json:"message"`
	Table   *Table `json:"table,omitempty"`
}

// Table is tabular result data, already stringified for rendering.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}
