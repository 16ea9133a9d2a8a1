package stubstats

import "strings"

// A State records which structural marker of a stub dump stream was
// most recently recognized.
type State int

const (
	None State = iota
	StartPage
	Title
	StartNamespace
	PageID
	StartRevision
	ByteLen
	EndPage
)

// Classify maps one input line, already stripped of leading
// whitespace, onto the next state. A line that doesn't begin with a
// recognized marker leaves the state alone; page text can run over
// many lines and must not disturb in-flight counting.
//
// The <ns> and <id> markers are short enough to collide with page
// content, so they only match directly after the marker that precedes
// them in the page header (<title>, then <ns>, then <id>).
func Classify(line string, cur State) State {
	switch {
	case strings.HasPrefix(line, "<page>"):
		return StartPage
	case strings.HasPrefix(line, "<title>"):
		return Title
	case cur == Title && strings.HasPrefix(line, "<ns>"):
		return StartNamespace
	case cur == StartNamespace && strings.HasPrefix(line, "<id>"):
		return PageID
	case strings.HasPrefix(line, "<revision>"):
		return StartRevision
	case strings.HasPrefix(line, "<text "):
		return ByteLen
	case strings.HasPrefix(line, "</page>"):
		return EndPage
	case strings.HasPrefix(line, "</mediawiki"):
		return None
	}
	return cur
}
