package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/taigrr/fsutil/internal/fileutil"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// render writes v in the selected output format. text is used for the
// default human format.
func render(w io.Writer, v any, text func(io.Writer) error) error {
	switch outputFormat {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return text(w)
	}
}

func renderLine(w io.Writer, v any, line string) error {
	return render(w, v, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, line)
		return err
	})
}

// ioFields expands an *IOError into log fields.
func ioFields(err error) []zap.Field {
	fields := []zap.Field{zap.Error(err)}
	if ioErr, ok := fileutil.AsIOError(err); ok {
		fields = append(fields, zap.String("path", ioErr.Path))
		if ioErr.Dest != "" {
			fields = append(fields, zap.String("dest", ioErr.Dest))
		}
	}
	return fields
}
