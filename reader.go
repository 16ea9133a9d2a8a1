package stubstats

import (
	"bufio"
	"io"
	"strings"
)

// PageStats holds the accumulated statistics for one page, or for a
// run of consecutive pages when batching is enabled.
type PageStats struct {
	// ID is the page id (the last one seen, for a batch).
	ID int64
	// Title is the page title (likewise the last seen).
	Title string
	// Revisions counts the revisions in counted namespaces.
	Revisions int64
	// Bytes is the summed byte length of those revisions.
	Bytes int64
	// MaxRevBytes is the largest single revision's byte length.
	MaxRevBytes int64
	// Pages counts the pages folded into this record; one unless
	// batching.
	Pages int
}

// A StatsReader emits per-page (or per-batch) revision statistics from
// a stub dump stream.
//
// Lines may be arbitrarily long; page text split over many lines never
// disturbs the counters.
type StatsReader struct {
	r   *bufio.Reader
	cfg Config

	state   State
	cur     PageStats
	inNS    bool
	inBatch int
	err     error
}

// NewStatsReader gets a stats reader over the given stub dump stream.
func NewStatsReader(r io.Reader, cfg Config) *StatsReader {
	return &StatsReader{r: bufio.NewReader(r), cfg: cfg}
}

// Next returns the next emitted statistics record, or io.EOF at the
// end of the stream. A page (or batch) still open at end of input is
// dropped; records only ever surface from a </page> line.
func (sr *StatsReader) Next() (*PageStats, error) {
	for {
		if sr.err != nil {
			return nil, sr.err
		}
		line, err := sr.r.ReadString('\n')
		if err != nil {
			// Hold the error so a final unterminated line
			// still gets processed.
			sr.err = err
		}
		if line == "" {
			return nil, sr.err
		}
		if st := sr.feed(line); st != nil {
			return st, nil
		}
	}
}

// feed runs the classifier on one raw line and applies the side
// effects of the resulting state, returning a record when the line
// closed out a qualifying page or batch.
func (sr *StatsReader) feed(raw string) *PageStats {
	line := strings.TrimRight(strings.TrimLeft(raw, " \t"), "\r\n")
	sr.state = Classify(line, sr.state)

	switch sr.state {
	case StartPage:
		// Namespace gating is per page, but in a batch window
		// the counters carry across pages.
		sr.inNS = false
		if sr.inBatch == 0 {
			sr.cur = PageStats{}
		}
	case Title:
		sr.cur.Title = titleText(line)
	case StartNamespace:
		sr.inNS = sr.cfg.AllNamespaces ||
			strings.HasPrefix(line, "<ns>0</ns>")
	case PageID:
		sr.cur.ID = pageID(line)
		sr.state = None
	case StartRevision:
		if sr.inNS {
			sr.cur.Revisions++
			sr.state = None
		}
	case ByteLen:
		if sr.inNS {
			n := byteLen(line)
			if n > sr.cur.MaxRevBytes {
				sr.cur.MaxRevBytes = n
			}
			sr.cur.Bytes += n
			sr.state = None
		}
	case EndPage:
		sr.state = None
		sr.cur.Pages++
		if sr.cfg.BatchSize > 1 {
			sr.inBatch++
			if sr.inBatch < sr.cfg.BatchSize {
				return nil
			}
			sr.inBatch = 0
		}
		st := sr.cur
		sr.cur = PageStats{}
		if st.Revisions > 0 && st.Revisions > sr.cfg.Cutoff {
			return &st
		}
	}
	return nil
}
