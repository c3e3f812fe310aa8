package export

// Sheet defines tabular export content with ordered rows.
type Sheet struct {
	Title   string
	Headers []string
	Rows    [][]string
}
