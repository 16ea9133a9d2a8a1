// Split a stub dump into page-aligned compressed chunks.
package main

import (
	"bufio"
	"compress/gzip"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-stubstats"
)

var (
	perChunk = flag.Int("pages", 100000, "Pages per output chunk")
	prefix   = flag.String("prefix", "chunk", "Output filename prefix")
)

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

// A chunkWriter spreads pages across numbered gzip files, repeating
// the dump header in each and closing each with the document end tag
// so every chunk is a loadable dump on its own.
type chunkWriter struct {
	prefix   string
	perChunk int
	header   []byte

	n     int
	pages int
	total int64
	f     *os.File
	z     *gzip.Writer
}

func (c *chunkWriter) write(line string) error {
	if c.z == nil {
		name := fmt.Sprintf("%s-%05d.xml.gz", c.prefix, c.n)
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		c.f = f
		c.z = gzip.NewWriter(f)
		if _, err := c.z.Write(c.header); err != nil {
			return err
		}
		log.Printf("Writing %s", name)
	}
	_, err := io.WriteString(c.z, line)
	return err
}

func (c *chunkWriter) endPage() error {
	c.pages++
	c.total++
	if c.pages < c.perChunk {
		return nil
	}
	return c.closeChunk()
}

func (c *chunkWriter) closeChunk() error {
	if c.z == nil {
		return nil
	}
	if _, err := io.WriteString(c.z, "</mediawiki>\n"); err != nil {
		return err
	}
	if err := c.z.Close(); err != nil {
		return err
	}
	if err := c.f.Close(); err != nil {
		return err
	}
	c.z, c.f = nil, nil
	c.n++
	c.pages = 0
	return nil
}

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}

	r, err := stubstats.OpenDump(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error opening dump: %v", err)
	}
	defer r.Close()

	br := bufio.NewReader(r)
	cw := &chunkWriter{prefix: *prefix, perChunk: *perChunk}

	var header []byte
	inHeader := true
	state := stubstats.None
	for {
		line, rerr := br.ReadString('\n')
		if line != "" {
			trimmed := strings.TrimLeft(line, " \t")
			state = stubstats.Classify(trimmed, state)
			switch {
			case inHeader && state == stubstats.StartPage:
				inHeader = false
				cw.header = header
				err = cw.write(line)
			case inHeader:
				header = append(header, line...)
			case strings.HasPrefix(trimmed, "</mediawiki"):
				// Each chunk gets its own closing tag.
			default:
				err = cw.write(line)
				if err == nil && state == stubstats.EndPage {
					state = stubstats.None
					err = cw.endPage()
				}
			}
			if err != nil {
				log.Fatalf("Error writing chunk: %v", err)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			log.Fatalf("Error reading dump: %v", rerr)
		}
	}

	if err := cw.closeChunk(); err != nil {
		log.Fatalf("Error closing final chunk: %v", err)
	}
	log.Printf("Split %s pages across %v chunks",
		humanize.Comma(cw.total), cw.n)
}
