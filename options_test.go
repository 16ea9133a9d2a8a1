package stubstats

import "testing"

func TestParseOptions(t *testing.T) {
	tests := []struct {
		args []string
		want Config
	}{
		{nil, Config{}},
		{[]string{"all"}, Config{AllNamespaces: true}},
		{[]string{"bytes", "title", "maxrevlen"},
			Config{Bytes: true, Title: true, MaxRevLen: true}},
		{[]string{"concise"}, Config{Concise: true}},
		{[]string{"5"}, Config{Cutoff: 5}},
		{[]string{"batch", "3"}, Config{BatchSize: 3}},
		{[]string{"all", "bytes", "batch", "10", "100"},
			Config{AllNamespaces: true, Bytes: true,
				BatchSize: 10, Cutoff: 100}},
		// Malformed numbers quietly parse as zero.
		{[]string{"batch", "x"}, Config{}},
		{[]string{"9z"}, Config{Cutoff: 0}},
	}

	for _, test := range tests {
		got, err := ParseOptions(test.args)
		if err != nil {
			t.Fatalf("Error parsing %v: %v", test.args, err)
		}
		if got != test.want {
			t.Errorf("ParseOptions(%v) = %+v, want %+v",
				test.args, got, test.want)
		}
	}
}

func TestParseOptionsErrors(t *testing.T) {
	for _, args := range [][]string{
		{"bogus"},
		{"all", "length"},
		{"batch"},
	} {
		if cfg, err := ParseOptions(args); err == nil {
			t.Errorf("Expected error for %v, got %+v", args, cfg)
		}
	}
}
