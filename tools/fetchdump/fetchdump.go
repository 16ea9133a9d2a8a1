// Fetch a stub dump from the wikimedia download servers.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/httputil"
)

var dumpType = flag.String("type", "stub-meta-history",
	"dump variant to fetch (e.g. stub-meta-current)")

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n  %s [opts] wikiname\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\ne.g. %s enwiki\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

type progressWriter struct {
	w         io.Writer
	done      int64
	total     int64
	threshold float64
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.done += int64(n)
	if p.total > 0 && float64(p.done) > p.threshold*float64(p.total) {
		log.Printf("%3d%% done (%s of %s)", int(100*p.threshold),
			humanize.Bytes(uint64(p.done)),
			humanize.Bytes(uint64(p.total)))
		p.threshold += .05
	}
	return n, err
}

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}
	wiki := flag.Arg(0)

	urlstr := fmt.Sprintf(
		"https://dumps.wikimedia.org/%s/latest/%s-latest-%s.xml.gz",
		wiki, wiki, *dumpType)

	res, err := http.Get(urlstr)
	if err != nil {
		log.Fatalf("Error fetching %v: %v", urlstr, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		log.Fatalf("Error fetching %v: %v", urlstr, httputil.HTTPError(res))
	}

	u, err := url.Parse(urlstr)
	if err != nil {
		log.Fatalf("Error parsing %v: %v", urlstr, err)
	}
	filename := path.Base(u.Path)

	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		log.Fatalf("Error creating %v: %v", filename, err)
	}
	defer f.Close()

	log.Printf("Downloading %v to %v", urlstr, filename)
	start := time.Now()
	n, err := io.Copy(&progressWriter{w: f, total: res.ContentLength},
		res.Body)
	if err != nil {
		log.Fatalf("Error downloading %v: %v", urlstr, err)
	}
	log.Printf("Downloaded %s in %v",
		humanize.Bytes(uint64(n)), time.Since(start))
}
