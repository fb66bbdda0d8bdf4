package parser

import (
	"context"
	"log/slog"
	"strings"

	apperrors "ffcal/internal/errors"
)

// detail panel selectors
const (
	selectorSpecsTable = "table.calendarspecs"
	selectorSpecsRow   = "tr"
	selectorSpecsCell  = "td"
)

// Expander triggers on-demand expansion of a row's detail panel and
// returns the expanded panel subtree. Implemented by the page-source
// provider; how the interaction happens (a click in a browser session,
// a canned fixture) is its concern.
type Expander interface {
	ExpandDetail(ctx context.Context, ref string) (Node, error)
}

// DetailResolver flattens a row's expandable detail panel into one
// display string.
type DetailResolver struct {
	expander Expander
	logger   *slog.Logger
}

// NewDetailResolver creates a DetailResolver using the given expander.
func NewDetailResolver(expander Expander, logger *slog.Logger) *DetailResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailResolver{expander: expander, logger: logger}
}

// Resolve expands the referenced panel and returns its flattened
// key/value text. An empty ref yields "" without touching the
// expander. Expansion or structural problems are reported as parse
// warnings; the caller absorbs them with a diagnostic, the row is kept
// with an empty detail.
func (r *DetailResolver) Resolve(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}

	panel, err := r.expander.ExpandDetail(ctx, ref)
	if err != nil {
		return "", apperrors.NewParseWarning("detail panel expansion failed", err).
			WithContext("detail_ref", ref)
	}

	return FlattenDetail(panel), nil
}

// FlattenDetail joins every label/value pair inside the panel as
// "Label: Value | Label: Value | ...". Labels and values are trimmed
// and embedded newlines become spaces so the result stays a single
// line. A panel without a recognizable label/value structure
// contributes its raw text unmodified.
func FlattenDetail(panel Node) string {
	if panel == nil {
		return ""
	}

	var parts []string
	for _, row := range specRows(panel) {
		cells := row.Find(selectorSpecsCell)
		if len(cells) < 2 {
			continue
		}
		label := singleLine(cells[0].Text())
		value := singleLine(cells[1].Text())
		if label == "" && value == "" {
			continue
		}
		parts = append(parts, label+": "+value)
	}

	if len(parts) == 0 {
		return singleLine(panel.Text())
	}
	return strings.Join(parts, " | ")
}

// specRows returns the rows of the panel's spec table. The page nests
// more than one calendarspecs table in some panels; the last one holds
// the event specification.
func specRows(panel Node) []Node {
	tables := panel.Find(selectorSpecsTable)
	if len(tables) == 0 {
		// the panel node may itself be the table
		return panel.Find(selectorSpecsRow)
	}
	return tables[len(tables)-1].Find(selectorSpecsRow)
}

func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(collapseSpaces(s))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
