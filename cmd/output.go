package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/oakwood-commons/cfged/internal/backend"
)

// printValue writes a document value in the selected format. A missing value
// prints nothing in text/raw and "null" in json, so scripted callers can
// still parse the output.
func printValue(w io.Writer, v interface{}, found bool, format string) {
	if !found {
		if format == "json" {
			fmt.Fprintln(w, "null")
		}
		return
	}
	switch format {
	case "json":
		fmt.Fprintln(w, formatJSON(v, 0))
	case "raw":
		printRawValue(w, v)
	default:
		printTextValue(w, v, 0)
	}
}

// printRawValue emits the bare value with no key or quoting. Arrays print
// one element per line; objects fall back to JSON.
func printRawValue(w io.Writer, v interface{}) {
	switch val := v.(type) {
	case nil:
	case string:
		fmt.Fprint(w, val)
	case []interface{}:
		for _, item := range val {
			printRawValue(w, item)
			fmt.Fprintln(w)
		}
	case map[string]interface{}:
		fmt.Fprint(w, formatJSON(val, 0))
	default:
		fmt.Fprint(w, formatScalar(val))
	}
}

// printTextValue renders the human-readable indented key: value layout with
// object keys sorted.
func printTextValue(w io.Writer, v interface{}, indent int) {
	prefix := strings.Repeat("  ", indent)
	switch val := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := val[k]
			if isContainer(child) {
				fmt.Fprintf(w, "%s%s:\n", prefix, k)
				printTextValue(w, child, indent+1)
			} else {
				fmt.Fprintf(w, "%s%s: %s\n", prefix, k, formatScalar(child))
			}
		}
	case []interface{}:
		for i, child := range val {
			if isContainer(child) {
				fmt.Fprintf(w, "%s[%d]:\n", prefix, i)
				printTextValue(w, child, indent+1)
			} else {
				fmt.Fprintf(w, "%s[%d]: %s\n", prefix, i, formatScalar(child))
			}
		}
	default:
		fmt.Fprintf(w, "%s%s\n", prefix, formatScalar(v))
	}
}

func isContainer(v interface{}) bool {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return true
	}
	return false
}

// formatScalar renders a leaf value without quoting.
func formatScalar(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case json.Number:
		return val.String()
	default:
		return formatJSON(v, 0)
	}
}

// formatJSON pretty-prints with two-space indentation and sorted object
// keys, so output is stable across runs.
func formatJSON(v interface{}, indent int) string {
	spaces := strings.Repeat("  ", indent)
	inner := strings.Repeat("  ", indent+1)

	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(val)
	case string:
		return `"` + escapeJSONString(val) + `"`
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case json.Number:
		return val.String()
	case []interface{}:
		if len(val) == 0 {
			return "[]"
		}
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = inner + formatJSON(item, indent+1)
		}
		return "[\n" + strings.Join(items, ",\n") + "\n" + spaces + "]"
	case map[string]interface{}:
		if len(val) == 0 {
			return "{}"
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]string, len(keys))
		for i, k := range keys {
			items[i] = inner + `"` + escapeJSONString(k) + `": ` + formatJSON(val[k], indent+1)
		}
		return "{\n" + strings.Join(items, ",\n") + "\n" + spaces + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func escapeJSONString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, c)
			} else {
				b.WriteRune(c)
			}
		}
	}
	return b.String()
}

// printStringList serves both keys and search-path listings: one per line in
// text/raw, a JSON array in json.
func printStringList(w io.Writer, items []string, format string) {
	if format == "json" {
		quoted := make([]string, len(items))
		for i, item := range items {
			quoted[i] = `"` + escapeJSONString(item) + `"`
		}
		fmt.Fprintf(w, "[\n  %s\n]\n", strings.Join(quoted, ",\n  "))
		return
	}
	for _, item := range items {
		fmt.Fprintln(w, item)
	}
}

func printInfo(w io.Writer, info backend.Info, format string) {
	if format == "json" {
		quoted := make([]string, len(info.SearchPaths))
		for i, p := range info.SearchPaths {
			quoted[i] = `"` + escapeJSONString(p) + `"`
		}
		fmt.Fprintln(w, "{")
		fmt.Fprintf(w, "  \"path\": \"%s\",\n", escapeJSONString(info.Path))
		fmt.Fprintf(w, "  \"format\": \"%s\",\n", escapeJSONString(info.Format))
		fmt.Fprintln(w, "  \"search_paths\": [")
		if len(quoted) > 0 {
			fmt.Fprintf(w, "    %s\n", strings.Join(quoted, ",\n    "))
		}
		fmt.Fprintln(w, "  ]")
		fmt.Fprintln(w, "}")
		return
	}
	fmt.Fprintf(w, "Path: %s\n", info.Path)
	fmt.Fprintf(w, "Format: %s\n", info.Format)
	if len(info.SearchPaths) > 0 {
		fmt.Fprintln(w, "Search paths:")
		for _, p := range info.SearchPaths {
			fmt.Fprintf(w, "  %s\n", p)
		}
	}
}

func printValidation(w io.Writer, problems []string, format string) {
	if format == "json" {
		quoted := make([]string, len(problems))
		for i, p := range problems {
			quoted[i] = `"` + escapeJSONString(p) + `"`
		}
		fmt.Fprintln(w, "{")
		fmt.Fprintf(w, "  \"valid\": %t,\n", len(problems) == 0)
		fmt.Fprintln(w, "  \"errors\": [")
		if len(quoted) > 0 {
			fmt.Fprintf(w, "    %s\n", strings.Join(quoted, ",\n    "))
		}
		fmt.Fprintln(w, "  ]")
		fmt.Fprintln(w, "}")
		return
	}
	if len(problems) == 0 {
		fmt.Fprintln(w, "Valid")
		return
	}
	fmt.Fprintln(w, "Invalid:")
	for _, p := range problems {
		fmt.Fprintf(w, "  - %s\n", p)
	}
}
