package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/tidwall/gjson"
	"sigs.k8s.io/yaml"
)

// printList renders a paginated collection response. Table output walks the
// results array through the column definitions; json/yaml print the raw
// payload untouched.
func printList(body []byte, columns []column) error {
	switch flagOutput {
	case "json":
		return printJSON(body)
	case "yaml":
		return printYAML(body)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	for i, col := range columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, col.header)
	}
	fmt.Fprintln(w)

	for _, result := range gjson.GetBytes(body, "results").Array() {
		for i, col := range columns {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, result.Get(col.path).String())
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

// printItem renders a single flat object as a key/value table, or the raw
// payload for json/yaml.
func printItem(body []byte, columns []column) error {
	switch flagOutput {
	case "json":
		return printJSON(body)
	case "yaml":
		return printYAML(body)
	}

	item := gjson.ParseBytes(body)
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	for _, col := range columns {
		fmt.Fprintf(w, "%s\t%s\n", col.header, item.Get(col.path).String())
	}
	return w.Flush()
}

func printJSON(body []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		// Not JSON; print as-is.
		fmt.Println(string(body))
		return nil
	}
	fmt.Println(buf.String())
	return nil
}

func printYAML(body []byte) error {
	out, err := yaml.JSONToYAML(body)
	if err != nil {
		fmt.Println(string(body))
		return nil
	}
	fmt.Print(string(out))
	return nil
}
