package tabular

import "testing"

func TestSniffFormat(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		want Format
	}{
		{
			name: "csv header",
			head: []byte("time,lat,lon,depth,mag,mrr,mtt,mpp,mrt,mrp,mtp\n2020-01-01 00:00:00,10,120,35,6.1,1e17,0,0,0,0,0\n"),
			want: FormatDelimited,
		},
		{
			name: "csv header with crlf",
			head: []byte("time,lat,lon\r\n1,2,3\r\n"),
			want: FormatDelimited,
		},
		{
			name: "xlsx zip magic",
			head: []byte{0x50, 0x4b, 0x03, 0x04, 0x14, 0x00, 0x06, 0x00},
			want: FormatSpreadsheet,
		},
		{
			name: "binary junk",
			head: []byte{0x00, 0x01, 0x02, 0xff, 0xfe},
			want: FormatUnknown,
		},
		{
			name: "text without delimiter",
			head: []byte("this is not a table\njust prose\n"),
			want: FormatUnknown,
		},
		{
			name: "empty",
			head: nil,
			want: FormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SniffFormat(tt.head); got != tt.want {
				t.Errorf("SniffFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}
