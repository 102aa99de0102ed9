package render

import (
	"io"

	"github.com/goccy/go-json"

	"gclens/internal/analysis"
)

// JSON prints the report as indented JSON for machine consumers.
func JSON(w io.Writer, report *analysis.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
