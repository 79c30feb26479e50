package schema

import (
	"testing"

	"github.com/seismotools/mtstash/internal/tabular"
)

func tableWithSource(tag string) *tabular.Table {
	return &tabular.Table{
		Columns: []string{"time", "source"},
		Rows:    [][]string{{"2020-01-01", tag}, {"2020-01-02", "other"}},
	}
}

func TestResolveSource(t *testing.T) {
	tests := []struct {
		name string
		spec SourceSpec
		raw  *tabular.Table
		want string
	}{
		{
			name: "explicit tag wins over embedded column",
			spec: ExplicitSource("A"),
			raw:  tableWithSource("B"),
			want: "A",
		},
		{
			name: "unset falls through to embedded column first row",
			spec: SourceSpec{},
			raw:  tableWithSource("B"),
			want: "B",
		},
		{
			name: "embedded-preferred uses embedded column",
			spec: EmbeddedSource(),
			raw:  tableWithSource("B"),
			want: "B",
		},
		{
			name: "embedded-preferred without column falls back",
			spec: EmbeddedSource(),
			raw:  &tabular.Table{Columns: []string{"time"}, Rows: [][]string{{"2020-01-01"}}},
			want: FallbackSource,
		},
		{
			name: "both absent falls back to user",
			spec: SourceSpec{},
			raw:  &tabular.Table{Columns: []string{"time"}, Rows: [][]string{{"2020-01-01"}}},
			want: "user",
		},
		{
			name: "explicit empty tag does not win",
			spec: SourceSpec{Mode: SourceExplicit},
			raw:  tableWithSource("B"),
			want: "B",
		},
		{
			name: "nil table with unset spec",
			spec: SourceSpec{},
			raw:  nil,
			want: FallbackSource,
		},
		{
			name: "embedded column with empty first row falls back",
			spec: SourceSpec{},
			raw: &tabular.Table{
				Columns: []string{"time", "source"},
				Rows:    [][]string{{"2020-01-01", ""}},
			},
			want: FallbackSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveSource(tt.spec, tt.raw); got != tt.want {
				t.Errorf("ResolveSource() = %q, want %q", got, tt.want)
			}
		})
	}
}
