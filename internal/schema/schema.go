// Package schema enforces the moment-tensor record schema. It projects raw
// tables onto the required column set and resolves the provenance source tag
// for an ingestion run.
package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/seismotools/mtstash/internal/tabular"
)

// RequiredColumns is the full moment-tensor schema. Every ingested table must
// carry all of these; everything else is dropped during projection.
var RequiredColumns = []string{
	"time", "lat", "lon", "depth", "mag",
	"mrr", "mtt", "mpp", "mrt", "mrp", "mtp",
}

// SourceColumn is the optional embedded provenance column. It is read before
// projection drops it.
const SourceColumn = "source"

// Record is one normalized moment-tensor observation.
type Record struct {
	Time   time.Time
	Lat    float64
	Lon    float64
	Depth  float64
	Mag    float64
	Mrr    float64
	Mtt    float64
	Mpp    float64
	Mrt    float64
	Mrp    float64
	Mtp    float64
	Source string
}

// Dataset is the ordered record set produced by one ingestion run. All
// records share the resolved Source tag.
type Dataset struct {
	Records []Record
	Source  string
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.Records) }

// SetSource stamps the tag onto the dataset and every record.
func (d *Dataset) SetSource(tag string) {
	d.Source = tag
	for i := range d.Records {
		d.Records[i].Source = tag
	}
}

// timeLayouts are accepted timestamp forms, most specific first.
// Values are truncated to second precision.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Project validates a raw table against RequiredColumns and converts it to a
// typed Dataset. If any required column is absent it fails with a
// *tabular.FormatError naming the complete missing set. Extra columns are
// discarded. The returned dataset carries no source tag; see Resolve.
func Project(t *tabular.Table) (*Dataset, error) {
	var missing []string
	idx := make(map[string]int, len(RequiredColumns))
	for _, col := range RequiredColumns {
		i := t.ColumnIndex(col)
		if i < 0 {
			missing = append(missing, col)
			continue
		}
		idx[col] = i
	}
	if len(missing) > 0 {
		return nil, &tabular.FormatError{MissingColumns: missing}
	}

	ds := &Dataset{Records: make([]Record, 0, len(t.Rows))}
	for r, row := range t.Rows {
		rec, err := projectRow(row, idx)
		if err != nil {
			return nil, &tabular.FormatError{Reason: fmt.Sprintf("row %d: %v", r+1, err)}
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

func projectRow(row []string, idx map[string]int) (Record, error) {
	cell := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var rec Record
	ts, err := parseTime(cell("time"))
	if err != nil {
		return rec, err
	}
	rec.Time = ts

	fields := []struct {
		col string
		dst *float64
	}{
		{"lat", &rec.Lat}, {"lon", &rec.Lon}, {"depth", &rec.Depth}, {"mag", &rec.Mag},
		{"mrr", &rec.Mrr}, {"mtt", &rec.Mtt}, {"mpp", &rec.Mpp},
		{"mrt", &rec.Mrt}, {"mrp", &rec.Mrp}, {"mtp", &rec.Mtp},
	}
	for _, f := range fields {
		v, err := strconv.ParseFloat(cell(f.col), 64)
		if err != nil {
			return rec, fmt.Errorf("column %q: non-numeric value %q", f.col, cell(f.col))
		}
		*f.dst = v
	}
	return rec, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC().Truncate(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("column %q: unrecognized timestamp %q", "time", s)
}
