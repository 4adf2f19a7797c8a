package export

import (
	"io"
	"sort"
)

// Format is one output encoding of a quote.
type Format struct {
	Ext         string
	ContentType string
	Render      func(io.Writer, Document) error
}

var formats = map[string]Format{
	"txt":  {Ext: "txt", ContentType: "text/plain; charset=utf-8", Render: Text},
	"pdf":  {Ext: "pdf", ContentType: "application/pdf", Render: PDF},
	"xlsx": {Ext: "xlsx", ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Render: XLSX},
}

// FormatFor looks a format up by file extension.
func FormatFor(ext string) (Format, bool) {
	f, ok := formats[ext]
	return f, ok
}

// Extensions lists the supported extensions.
func Extensions() []string {
	out := make([]string, 0, len(formats))
	for ext := range formats {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
