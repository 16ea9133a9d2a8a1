// Load stub dump page statistics into CouchDB
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-couch"
	"github.com/dustin/go-humanize"
	"github.com/dustin/httputil"
	"github.com/dustin/go-stubstats"
)

var (
	numWorkers = flag.Int("numWorkers", 20, "Number of store workers")
	allNS      = flag.Bool("all", false, "Count pages from all namespaces")
	cutoff     = flag.Int64("cutoff", 0, "Skip pages with this many revisions or fewer")
)

var wg sync.WaitGroup

type pageDoc struct {
	ID          string `json:"_id"`
	Rev         string `json:"_rev,omitempty"`
	PageID      int64  `json:"pageid"`
	Title       string `json:"title,omitempty"`
	Revisions   int64  `json:"revs"`
	Bytes       int64  `json:"bytes"`
	MaxRevBytes int64  `json:"maxrevlen"`
}

// A rerun against a newer dump hits the documents from the previous
// run; the one with more revisions wins.
func resolveConflict(db *couch.Database, d *pageDoc) {
	log.Printf("Resolving conflict on %s", d.ID)
	var prev pageDoc
	err := db.Retrieve(d.ID, &prev)
	if err != nil {
		log.Printf("  Error retrieving existing %v: %v", d.ID, err)
		return
	}
	if prev.Rev == "" {
		log.Printf("Got no rev from %v", d.ID)
		return
	}
	if d.Revisions > prev.Revisions {
		log.Printf("  This one is newer...replacing %s.", prev.Rev)
		_, err = db.EditWith(d, d.ID, prev.Rev)
		if err != nil {
			log.Printf("  Error updating %v: %v", prev.ID, err)
		}
	}
}

func doStats(db *couch.Database, st *stubstats.PageStats) {
	doc := pageDoc{
		ID:          fmt.Sprintf("page-%d", st.ID),
		PageID:      st.ID,
		Title:       st.Title,
		Revisions:   st.Revisions,
		Bytes:       st.Bytes,
		MaxRevBytes: st.MaxRevBytes,
	}

	_, _, err := db.Insert(&doc)
	switch {
	case err == nil:
		// yay
	case httputil.IsHTTPStatus(err, 409):
		resolveConflict(db, &doc)
	default:
		log.Printf("Error inserting %#v: %v", doc, err)
	}
}

func statsHandler(db couch.Database, ch <-chan *stubstats.PageStats) {
	defer wg.Done()
	for st := range ch {
		doStats(&db, st)
	}
}

func main() {
	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Fprintf(os.Stderr,
			"Usage:\n  %s [opts] couchdb-url stub-meta-history.xml.gz\n",
			os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	dburl, file := flag.Arg(0), flag.Arg(1)

	db, err := couch.Connect(dburl)
	if err != nil {
		log.Fatalf("Error connecting to couchdb: %v", err)
	}

	r, err := stubstats.OpenDump(file)
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
