// Load stub dump page statistics into MongoDB
package main

import (
	"flag"
	"io"
	"log"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-stubstats"
	"gopkg.in/mgo.v2"
)

var (
	proc       = flag.Int("proc", 8, "How many store workers to run.")
	file       = flag.String("file", "", "The stub dump file (.bz2/.gz ok).")
	dburl      = flag.String("dburl", "localhost", "The dburl(s). I.e. localhost.")
	verbose    = flag.Bool("v", false, "Verbose logging?")
	collection = flag.String("collection", "pagestats", "The collection to store page stats in.")
	dbname     = flag.String("dbname", "wp", "The database name to use.")
	allNS      = flag.Bool("all", false, "Count pages from all namespaces.")
	cutoff     = flag.Int64("cutoff", 0, "Skip pages with this many revisions or fewer.")
)

var wg sync.WaitGroup

// Page ids are unique per wiki, so a rerun against the same dump just
// skips what's already there.
var pageIDIndex = mgo.Index{
	Key:        []string{"pageid"},
	Unique:     true,
	DropDups:   true,
	Background: true,
	Sparse:     true,
}

type pageDoc struct {
	PageID      int64  "pageid"
	Title       string "title,omitempty"
	Revisions   int64  "revs"
	Bytes       int64  "bytes"
	MaxRevBytes int64  "maxrevlen"
}

func storeStats(db *mgo.Database, st *stubstats.PageStats) {
	doc := pageDoc{
		PageID:      st.ID,
		Title:       st.Title,
		Revisions:   st.Revisions,
		Bytes:       st.Bytes,
		MaxRevBytes: st.MaxRevBytes,
	}
	err := db.C(*collection).Insert(&doc)
	if err != nil {
		if mgo.IsDup(err) {
			if *verbose {
				log.Printf("Duplicate key error inserting %d", doc.PageID)
			}
		} else {
			log.Printf("Error inserting %d: %s", doc.PageID, err)
		}
	}
}

func statsHandler(db *mgo.Database, ch <-chan *stubstats.PageStats) {
	defer wg.Done()
	for st := range ch {
		storeStats(db, st)
	}
}

func processDump(sr *stubstats.StatsReader, db *mgo.Database) {
	ch := make(chan *stubstats.PageStats, 1000)
	for i := 0; i < *proc; i++ {
		wg.Add(1)
		go statsHandler(db, ch)
	}

	pages := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(100000)
	var err error
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
			log.Printf("Processed %s pages total (%.2f/s)\n",
				humanize.Comma(pages), float64(reportfreq)/d.Seconds())
			prev = now
		}
	}
	close(ch)
	wg.Wait()
	if err != io.EOF {
		log.Fatalf("Error reading dump: %v", err)
	}

	d := time.Since(start)
	log.Printf("Loaded %s pages in %v (%.2f p/s)",
		humanize.Comma(pages), d, float64(pages)/d.Seconds())
}

func main() {
	flag.Parse()
	if *file == "" {
		log.Fatal("You must supply a stub dump file.")
	}
	session, err := mgo.Dial(*dburl)
	if err != nil {
		log.Fatalf("Error connecting to mongodb: %v", err)
	}

	r, err := stubstats.OpenDump(*file)
	if err != nil {
		log.Fatalf("Error opening dump: %v", err)
	}
	defer r.Close()

	sr := stubstats.NewStatsReader(r, stubstats.Config{
		AllNamespaces: *allNS,
		Cutoff:        *cutoff,
	})

	err = session.DB(*dbname).C(*collection).EnsureIndex(pageIDIndex)
	if err != nil {
		log.Fatal("Error creating pageid index", err)
	}
	processDump(sr, session.DB(*dbname))
}
