package schema

import "github.com/seismotools/mtstash/internal/tabular"

// FallbackSource is the tag used when nothing else resolves.
const FallbackSource = "user"

// SourceMode states how the caller wants the provenance tag chosen. The
// original behavior let an embedded source column win only when the caller
// supplied no tag at all, which the default tag made unreachable; the mode
// makes that choice explicit and caller-visible.
type SourceMode uint8

const (
	// SourceUnset means the caller expressed no preference.
	SourceUnset SourceMode = iota
	// SourceExplicit means the caller supplied a tag that must win.
	SourceExplicit
	// SourceEmbeddedPreferred means an embedded source column, if present,
	// wins over the fallback.
	SourceEmbeddedPreferred
)

// SourceSpec is the caller's provenance choice for an ingestion run.
type SourceSpec struct {
	Mode SourceMode
	Tag  string
}

// ExplicitSource returns a spec that forces the given tag.
func ExplicitSource(tag string) SourceSpec {
	return SourceSpec{Mode: SourceExplicit, Tag: tag}
}

// EmbeddedSource returns a spec that prefers the table's own source column.
func EmbeddedSource() SourceSpec {
	return SourceSpec{Mode: SourceEmbeddedPreferred}
}

// ResolveSource determines the single provenance tag for a run. Precedence:
// an explicit caller tag, then the first-row value of an embedded source
// column in the raw (pre-projection) table, then FallbackSource.
func ResolveSource(spec SourceSpec, raw *tabular.Table) string {
	if spec.Mode == SourceExplicit && spec.Tag != "" {
		return spec.Tag
	}
	if raw != nil {
		if vals, ok := raw.Column(SourceColumn); ok && len(vals) > 0 && vals[0] != "" {
			return vals[0]
		}
	}
	return FallbackSource
}
