// Count revisions per page in a wikipedia stub dump.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-stubstats"
)

var (
	file    = flag.String("file", "", "stub dump to read (.bz2/.gz ok, default stdin)")
	verbose = flag.Bool("v", false, "log progress to stderr")
)

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage:\n  %s [opts] [all] [bytes] [maxrevlen] [title] [concise] [batch <n>] [cutoff]\n",
		os.Args[0])
	fmt.Fprintf(os.Stderr, "\ncounts number of revisions in each page\n")
	fmt.Fprintf(os.Stderr, "with 'all', displays the page id for each page\n")
	fmt.Fprintf(os.Stderr, "for all namespaces\n")
	fmt.Fprintf(os.Stderr, "with 'bytes', displays the sum of byte lengths for\n")
	fmt.Fprintf(os.Stderr, "each page\n")
	fmt.Fprintf(os.Stderr, "with 'maxrevlen', displays the max byte length for\n")
	fmt.Fprintf(os.Stderr, "revisions of the page\n")
	fmt.Fprintf(os.Stderr, "with 'title', displays the title for each page\n")
	fmt.Fprintf(os.Stderr, "with 'concise', displays values only, colon separated\n")
	fmt.Fprintf(os.Stderr, "with 'batch <n>', sums stats over runs of n pages\n")
	fmt.Fprintf(os.Stderr, "without 'all', displays only the revision count, and\n")
	fmt.Fprintf(os.Stderr, "only for the main namespace (ns 0)\n")
	fmt.Fprintf(os.Stderr, "with cutoff number, prints only information for pages\n")
	fmt.Fprintf(os.Stderr, "with more revisions than the cutoff\n")
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	flag.Parse()

	cfg, err := stubstats.ParseOptions(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n", err)
		usage()
	}

	r, err := stubstats.OpenDump(*file)
	if err != nil {
		log.Fatalf("Error opening dump: %v", err)
	}
	defer r.Close()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	sr := stubstats.NewStatsReader(r, cfg)

	records := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(100000)
	for {
		st, err := sr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Error reading dump: %v", err)
		}
		fmt.Fprintln(w, stubstats.FormatStats(st, cfg))

		records++
		if *verbose && records%reportfreq == 0 {
			now := time.Now()
			d := now.Sub(prev)
			log.Printf("Emitted %s records total (%.2f/s)",
				humanize.Comma(records), float64(reportfreq)/d.Seconds())
			prev = now
		}
	}
	if *verbose {
		log.Printf("Emitted %s records in %v",
			humanize.Comma(records), time.Since(start))
	}
}
