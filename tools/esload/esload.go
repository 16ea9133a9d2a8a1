// Load stub dump page statistics into ElasticSearch
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-elasticsearch"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-stubstats"
)

var wg sync.WaitGroup

func statsHandler(u string, ch <-chan *stubstats.PageStats) {
	defer wg.Done()
	counter := 0
	es := elasticsearch.ElasticSearch{URL: u}
	bulkLoader := es.Bulk()

	for st := range ch {
		counter++
		if counter > 1000 {
			bulkLoader.SendBatch()
			counter = 0
		}
		ui := elasticsearch.UpdateInstruction{
			Id:    fmt.Sprintf("page-%d", st.ID),
			Index: "wikistubs",
			Type:  "page",
			Body: map[string]interface{}{
				"pageid":    st.ID,
				"title":     st.Title,
				"revs":      st.Revisions,
				"bytes":     st.Bytes,
				"maxrevlen": st.MaxRevBytes,
			},
		}
		bulkLoader.Update(&ui)
	}
	bulkLoader.Quit()
}

func main() {
	if len(os.Args) < 3 {
		log.Fatalf("Usage: %s stub-meta-history.xml.gz http://es-host:9200/",
			os.Args[0])
	}
	filename, esurl := os.Args[1], os.Args[2]

	r, err := stubstats.OpenDump(filename)
	if err != nil {
		log.Fatalf("Error opening dump: %v", err)
	}
	defer r.Close()

	sr := stubstats.NewStatsReader(r, stubstats.Config{AllNamespaces: true})

	ch := make(chan *stubstats.PageStats, 1000)

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go statsHandler(esurl, ch)
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
