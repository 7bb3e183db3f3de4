package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

func validateOutputFormat(output string) error {
	if output != "" && output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable writes aligned tab-separated rows with a header.
func printTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, tabJoin(header))
	for _, row := range rows {
		fmt.Fprintln(tw, tabJoin(row))
	}
	return tw.Flush()
}

func tabJoin(cells []string) string {
	out := ""
	for i, c := range cells {
		if i > 0 {
			out += "\t"
		}
		if c == "" {
			out += "-"
		} else {
			out += c
		}
	}
	return out
}
