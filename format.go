package stubstats

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatStats renders one output line (sans newline) for a stats
// record. Field order is fixed: page id, byte sum, max revision
// length, revision count, title; each shows up only when the
// configuration asks for it.
func FormatStats(st *PageStats, cfg Config) string {
	if cfg.Concise {
		parts := []string{}
		if cfg.AllNamespaces {
			parts = append(parts, strconv.FormatInt(st.ID, 10))
		}
		if cfg.Bytes {
			parts = append(parts, strconv.FormatInt(st.Bytes, 10))
		}
		if cfg.MaxRevLen {
			parts = append(parts, strconv.FormatInt(st.MaxRevBytes, 10))
		}
		parts = append(parts, strconv.FormatInt(st.Revisions, 10))
		if cfg.Title {
			parts = append(parts, st.Title)
		}
		return strings.Join(parts, ":")
	}

	b := strings.Builder{}
	if cfg.AllNamespaces {
		fmt.Fprintf(&b, "page:%d ", st.ID)
	}
	if cfg.Bytes {
		fmt.Fprintf(&b, "bytes:%d ", st.Bytes)
	}
	if cfg.MaxRevLen {
		fmt.Fprintf(&b, "maxrevlen:%d ", st.MaxRevBytes)
	}
	fmt.Fprintf(&b, "revs:%d", st.Revisions)
	if cfg.Title {
		fmt.Fprintf(&b, " title:%s", st.Title)
	}
	return b.String()
}
