package stubstats

import (
	"errors"
	"fmt"
	"strconv"
)

// Config controls which pages a StatsReader emits and which fields
// show up in formatted output.
type Config struct {
	// AllNamespaces counts pages from every namespace (and reports
	// the page id). Without it only the main namespace (ns 0) is
	// counted.
	AllNamespaces bool
	// Bytes reports the summed byte length of a page's revisions.
	Bytes bool
	// Title reports the page title.
	Title bool
	// MaxRevLen reports the largest single revision's byte length.
	MaxRevLen bool
	// Concise drops the field names from output lines, leaving
	// colon-joined values.
	Concise bool
	// Cutoff suppresses pages with that many revisions or fewer.
	Cutoff int64
	// BatchSize folds runs of that many consecutive pages into one
	// record. Zero (or one) means per-page records.
	BatchSize int
}

// ParseOptions resolves the positional option tokens understood by the
// stub stats tools: "all", "bytes", "title", "maxrevlen", "concise",
// "batch" followed by a page count, and a bare integer revision-count
// cutoff. An unrecognized token is the only error; malformed numbers
// quietly parse as zero.
func ParseOptions(args []string) (Config, error) {
	cfg := Config{}
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "all":
			cfg.AllNamespaces = true
		case arg == "bytes":
			cfg.Bytes = true
		case arg == "title":
			cfg.Title = true
		case arg == "maxrevlen":
			cfg.MaxRevLen = true
		case arg == "concise":
			cfg.Concise = true
		case arg == "batch":
			i++
			if i >= len(args) {
				return Config{}, errors.New("batch requires a page count")
			}
			cfg.BatchSize, _ = strconv.Atoi(args[i])
		case len(arg) > 0 && arg[0] >= '0' && arg[0] <= '9':
			cfg.Cutoff, _ = strconv.ParseInt(arg, 10, 64)
		default:
			return Config{}, fmt.Errorf("unknown option %q", arg)
		}
	}
	return cfg, nil
}
