package stubstats

import (
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
)

// OpenDump opens a stub dump for reading, transparently decompressing
// .bz2 and .gz files. An empty path or "-" reads standard input.
func OpenDump(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(path) {
	case ".bz2":
		return struct {
			io.Reader
			io.Closer
		}{bzip2.NewReader(f), f}, nil
	case ".gz":
		z, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return struct {
			io.Reader
			io.Closer
		}{z, f}, nil
	}
	return f, nil
}
