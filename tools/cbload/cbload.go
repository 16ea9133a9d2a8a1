// Load stub dump page statistics into CouchBase
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/couchbase/go-couchbase"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-stubstats"
)

var (
	numWorkers = flag.Int("numWorkers", 8, "Number of store workers")
	allNS      = flag.Bool("all", false, "Count pages from all namespaces")
	cutoff     = flag.Int64("cutoff", 0, "Skip pages with this many revisions or fewer")
)

var wg sync.WaitGroup

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage:\n  %s [opts] stub-meta-history.xml.gz\n",
		os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

type pageDoc struct {
	PageID      int64  `json:"pageid"`
	Title       string `json:"title,omitempty"`
	Revisions   int64  `json:"revs"`
	Bytes       int64  `json:"bytes"`
	MaxRevBytes int64  `json:"maxrevlen"`
}

func doStats(db *couchbase.Bucket, st *stubstats.PageStats) {
	doc := pageDoc{
		PageID:      st.ID,
		Title:       st.Title,
		Revisions:   st.Revisions,
		Bytes:       st.Bytes,
		MaxRevBytes: st.MaxRevBytes,
	}
	key := fmt.Sprintf("page-%d", st.ID)
	if err := db.Set(key, 0, doc); err != nil {
		log.Printf("Error setting %v: %v", key, err)
	}
}

func statsHandler(db *couchbase.Bucket, ch <-chan *stubstats.PageStats) {
	defer wg.Done()
	for st := range ch {
		doStats(db, st)
	}
}

func main() {
	couchbaseServer := flag.String("couchbase", "http://localhost:8091/",
		"Couchbase URL")
	couchbaseBucket := flag.String("bucket", "default", "Couchbase bucket")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}

	db, err := couchbase.GetBucket(*couchbaseServer,
		"default", *couchbaseBucket)
	if err != nil {
		log.Fatalf("Error connecting to couchbase: %v", err)
	}

	r, err := stubstats.OpenDump(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error opening dump: %v", err)
	}
	defer r.Close()

	sr := stubstats.NewStatsReader(r, stubstats.Config{
		AllNamespaces: *allNS,
		Cutoff:        *cutoff,
	})

	ch := make(chan *stubstats.PageStats, 1000)

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go statsHandler(db, ch)
	}

	pages := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(100000)
	for err == nil {
		var st *stubstats.PageStats
		st, err = sr.Next()
		if err == nil {
			ch <- st
		}

		pages++
		if pages%reportfreq == 0 {
			now := time.Now()
			d := now.Sub(prev)
			log.Printf("Processed %s pages total (%.2f/s)",
				humanize.Comma(pages), float64(reportfreq)/d.Seconds())
			prev = now
		}
	}
	close(ch)
	wg.Wait()
	if err != io.EOF {
		log.Fatalf("Error reading dump: %v", err)
	}
	log.Printf("Loaded %s pages in %v",
		humanize.Comma(pages), time.Since(start))
}
