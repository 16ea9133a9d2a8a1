package stubstats

import (
	"strconv"
	"strings"
)

const bytesAttr = `bytes="`

// byteLen pulls the revision size out of the self-closing text element
// of a stub dump.
//
// Typical entry in stubs used to be: <text id="11453" bytes="4837" />
// now: <text xml:space="preserve" bytes="141920" id="87207" />
// so the bytes attribute is located by substring, not by position.
// A missing or malformed attribute counts as zero.
func byteLen(line string) int64 {
	i := strings.Index(line, bytesAttr)
	if i < 0 {
		return 0
	}
	rest := line[i+len(bytesAttr):]
	j := 0
	for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
		j++
	}
	n, _ := strconv.ParseInt(rest[:j], 10, 64)
	return n
}

// pageID parses the id following the <id> tag. Zero on malformed
// input.
func pageID(line string) int64 {
	rest := strings.TrimPrefix(line, "<id>")
	j := 0
	for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
		j++
	}
	n, _ := strconv.ParseInt(rest[:j], 10, 64)
	return n
}

// titleText extracts the title from a <title>...</title> line.
func titleText(line string) string {
	return strings.TrimSuffix(strings.TrimPrefix(line, "<title>"),
		"</title>")
}
