// Package export implements the minimal tabular exporter sketched in §6:
// a closed Field enumeration, a Sink that writes to any io.Writer, and an
// overwrite|append write mode. It deliberately excludes the collection
// algebra (sort/filter/group) and bulk-iterator surface the distillation
// named as non-goals — a Sink only ever writes the tracts it's handed.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"goplss/internal/plss"
	"goplss/pkg/namex"
)

// Field is the closed set of columns a Sink can emit, replacing the
// dynamic attribute-name dispatch the original library used (§9's
// "typed, closed enumeration" redesign decision).
type Field int

const (
	FieldTwp Field = iota
	FieldRge
	FieldSec
	FieldTRS
	FieldOrigIndex
	FieldDesc
	FieldPPDesc
	FieldLots
	FieldQQs
	FieldLotAcres
	FieldFlawed
	FieldFlags
)

// DefaultFields is the column set a Sink uses when none is configured.
var DefaultFields = []Field{FieldTRS, FieldTwp, FieldRge, FieldSec, FieldDesc, FieldLots, FieldQQs}

func (f Field) String() string {
	switch f {
	case FieldTwp:
		return "twp"
	case FieldRge:
		return "rge"
	case FieldSec:
		return "sec"
	case FieldTRS:
		return "trs"
	case FieldOrigIndex:
		return "orig_index"
	case FieldDesc:
		return "desc"
	case FieldPPDesc:
		return "pp_desc"
	case FieldLots:
		return "lots"
	case FieldQQs:
		return "qqs"
	case FieldLotAcres:
		return "lot_acres"
	case FieldFlawed:
		return "flawed"
	case FieldFlags:
		return "flags"
	default:
		return "unknown"
	}
}

// Value extracts this Field's textual representation from a tract.
func (f Field) Value(t *plss.Tract) string {
	switch f {
	case FieldTwp:
		return t.TRS.Twp
	case FieldRge:
		return t.TRS.Rge
	case FieldSec:
		return t.TRS.Sec
	case FieldTRS:
		return t.TRS.String()
	case FieldOrigIndex:
		return strconv.Itoa(t.OrigIndex)
	case FieldDesc:
		return t.Desc
	case FieldPPDesc:
		return t.PPDesc
	case FieldLots:
		return strings.Join(t.Lots, ";")
	case FieldQQs:
		return strings.Join(t.QQs, ";")
	case FieldLotAcres:
		return formatLotAcres(t.LotAcres)
	case FieldFlawed:
		return strconv.FormatBool(t.DescIsFlawed)
	case FieldFlags:
		return formatFlags(t.Flags)
	default:
		return ""
	}
}

func formatLotAcres(m map[string]float64) string {
	if len(m) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m))
	for lot, acres := range m {
		parts = append(parts, fmt.Sprintf("%s=%s", lot, strconv.FormatFloat(acres, 'g', -1, 64)))
	}
	return strings.Join(parts, ";")
}

func formatFlags(flags []plss.Flag) string {
	if len(flags) == 0 {
		return ""
	}
	parts := make([]string, 0, len(flags))
	for _, f := range flags {
		parts = append(parts, string(f.Kind))
	}
	return strings.Join(parts, ";")
}

// Mode selects whether Write emits a header row.
type Mode int

const (
	ModeOverwrite Mode = iota // write a header row, then the data rows
	ModeAppend                // write only data rows, for appending to an existing file
)

// Sink writes Tracts as CSV to an io.Writer. The core parser never does
// its own I/O (§5) — a Sink only ever writes to the writer it is given.
type Sink struct {
	Fields  []Field
	Headers map[Field]string // optional per-field header overrides
	Mode    Mode
}

// NewSink returns a Sink configured with DefaultFields in overwrite mode.
func NewSink() Sink {
	return Sink{Fields: DefaultFields, Mode: ModeOverwrite}
}

// Write emits tracts as CSV rows to w, honoring Mode for the header row.
func (s Sink) Write(w io.Writer, tracts []*plss.Tract) error {
	fields := s.Fields
	if len(fields) == 0 {
		fields = DefaultFields
	}

	cw := csv.NewWriter(w)
	if s.Mode == ModeOverwrite {
		if err := cw.Write(s.header(fields)); err != nil {
			return fmt.Errorf("export: writing header: %w", err)
		}
	}
	for _, t := range tracts {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = f.Value(t)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: writing row %d: %w", t.OrigIndex, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// header builds a sanitized, de-duplicated header row, applying any
// caller-supplied overrides before falling back to a Field's default
// name.
func (s Sink) header(fields []Field) []string {
	used := map[string]struct{}{}
	out := make([]string, len(fields))
	for i, f := range fields {
		name := f.String()
		if s.Headers != nil {
			if override, ok := s.Headers[f]; ok && override != "" {
				name = override
			}
		}
		out[i] = namex.Sanitize(name, used)
	}
	return out
}
