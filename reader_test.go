package stubstats

import (
	"io"
	"strings"
	"testing"
)

const testDump = `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.10/" version="0.10">
  <siteinfo>
    <sitename>Wikipedia</sitename>
    <base>https://en.wikipedia.org/wiki/Main_Page</base>
  </siteinfo>
  <page>
    <title>Example</title>
    <ns>0</ns>
    <id>42</id>
    <revision>
      <id>1001</id>
      <timestamp>2004-09-25T04:42:19Z</timestamp>
      <contributor>
        <username>Somebody</username>
        <id>7</id>
      </contributor>
      <text xml:space="preserve" bytes="100" id="1001" />
    </revision>
    <revision>
      <id>1002</id>
      <timestamp>2004-09-26T11:03:02Z</timestamp>
      <text id="1002" bytes="250" />
    </revision>
  </page>
  <page>
    <title>Talk:Example</title>
    <ns>1</ns>
    <id>43</id>
    <revision>
      <id>1003</id>
      <text bytes="75" id="1003" />
    </revision>
  </page>
  <page>
    <title>Anarchism</title>
    <ns>0</ns>
    <id>12</id>
    <revision>
      <id>1004</id>
      <text bytes="400" id="1004" />
    </revision>
  </page>
</mediawiki>
`

func collect(t *testing.T, input string, cfg Config) []*PageStats {
	sr := NewStatsReader(strings.NewReader(input), cfg)
	rv := []*PageStats{}
	for {
		st, err := sr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Error reading stats: %v", err)
		}
		rv = append(rv, st)
	}
	return rv
}

func TestMainNamespaceOnly(t *testing.T) {
	stats := collect(t, testDump, Config{})
	if len(stats) != 2 {
		t.Fatalf("Expected 2 records, got %v", stats)
	}

	st := stats[0]
	if st.ID != 42 || st.Title != "Example" {
		t.Errorf("Expected page 42 %q, got %v %q", "Example", st.ID, st.Title)
	}
	if st.Revisions != 2 {
		t.Errorf("Expected 2 revisions, got %v", st.Revisions)
	}
	if st.Bytes != 350 {
		t.Errorf("Expected 350 bytes, got %v", st.Bytes)
	}
	if st.MaxRevBytes != 250 {
		t.Errorf("Expected max rev length 250, got %v", st.MaxRevBytes)
	}
	if st.Pages != 1 {
		t.Errorf("Expected 1 page in record, got %v", st.Pages)
	}

	if stats[1].Title != "Anarchism" || stats[1].Revisions != 1 {
		t.Errorf("Unexpected second record: %+v", stats[1])
	}
}

func TestAllNamespaces(t *testing.T) {
	stats := collect(t, testDump, Config{AllNamespaces: true})
	if len(stats) != 3 {
		t.Fatalf("Expected 3 records, got %v", stats)
	}
	st := stats[1]
	if st.ID != 43 || st.Title != "Talk:Example" {
		t.Errorf("Expected page 43 %q, got %v %q",
			"Talk:Example", st.ID, st.Title)
	}
	if st.Revisions != 1 || st.Bytes != 75 {
		t.Errorf("Expected 1 revision of 75 bytes, got %+v", st)
	}
}

func TestCutoffIsExclusive(t *testing.T) {
	// The Example page has exactly 2 revisions; a cutoff of 2 must
	// drop it, a cutoff of 1 must keep it.
	stats := collect(t, testDump, Config{Cutoff: 2})
	if len(stats) != 0 {
		t.Fatalf("Expected no records at cutoff 2, got %v", stats)
	}

	stats = collect(t, testDump, Config{Cutoff: 1})
	if len(stats) != 1 || stats[0].Title != "Example" {
		t.Fatalf("Expected only the Example page at cutoff 1, got %v", stats)
	}
}

func TestBatching(t *testing.T) {
	stats := collect(t, testDump, Config{AllNamespaces: true, BatchSize: 3})
	if len(stats) != 1 {
		t.Fatalf("Expected 1 batched record, got %v", stats)
	}
	st := stats[0]
	if st.Pages != 3 {
		t.Errorf("Expected 3 pages in the batch, got %v", st.Pages)
	}
	if st.Revisions != 4 {
		t.Errorf("Expected 4 revisions in the batch, got %v", st.Revisions)
	}
	if st.Bytes != 100+250+75+400 {
		t.Errorf("Expected %v bytes, got %v", 100+250+75+400, st.Bytes)
	}
	if st.MaxRevBytes != 400 {
		t.Errorf("Expected max rev length 400, got %v", st.MaxRevBytes)
	}
	// The last page id and title win.
	if st.ID != 12 || st.Title != "Anarchism" {
		t.Errorf("Expected page 12 %q, got %v %q",
			"Anarchism", st.ID, st.Title)
	}
}

func TestPartialBatchDropped(t *testing.T) {
	// Three pages don't fill a window of four, so nothing comes out.
	stats := collect(t, testDump, Config{AllNamespaces: true, BatchSize: 4})
	if len(stats) != 0 {
		t.Fatalf("Expected no records for a partial batch, got %v", stats)
	}
}

func TestBatchNamespaceGating(t *testing.T) {
	// Without "all", the talk page contributes nothing to its batch.
	stats := collect(t, testDump, Config{BatchSize: 3})
	if len(stats) != 1 {
		t.Fatalf("Expected 1 batched record, got %v", stats)
	}
	if stats[0].Revisions != 3 {
		t.Errorf("Expected 3 revisions (talk page excluded), got %v",
			stats[0].Revisions)
	}
}

func TestTruncatedPageDropped(t *testing.T) {
	cut := strings.LastIndex(testDump, "</page>")
	stats := collect(t, testDump[:cut], Config{})
	if len(stats) != 1 {
		t.Fatalf("Expected only the complete page, got %v", stats)
	}
	if stats[0].Title != "Example" {
		t.Errorf("Expected the Example page, got %+v", stats[0])
	}
}

func TestRevisionBeforeNamespaceIgnored(t *testing.T) {
	input := `<page>
  <title>Odd</title>
  <revision>
    <text bytes="99" id="1" />
  </revision>
  <ns>0</ns>
  <id>5</id>
  <revision>
    <text bytes="11" id="2" />
  </revision>
</page>
`
	// The namespace line gates everything after it; the earlier
	// revision never counts. It also leaves the title state behind,
	// so this <ns> only matches because it follows <title>... here
	// the stray revision broke that chain.
	stats := collect(t, input, Config{AllNamespaces: true})
	if len(stats) != 0 {
		t.Fatalf("Expected no records, got %v", stats)
	}
}

func TestDeepIndentation(t *testing.T) {
	indented := strings.ReplaceAll(testDump, "  ", "\t\t  ")
	stats := collect(t, indented, Config{})
	if len(stats) != 2 {
		t.Fatalf("Expected 2 records from indented dump, got %v", stats)
	}
}

func TestIdempotence(t *testing.T) {
	cfg := Config{AllNamespaces: true, Bytes: true, MaxRevLen: true, Title: true}
	first := collect(t, testDump, cfg)
	second := collect(t, testDump, cfg)
	if len(first) != len(second) {
		t.Fatalf("Record counts differ: %v vs %v", len(first), len(second))
	}
	for i := range first {
		if *first[i] != *second[i] {
			t.Errorf("Record %v differs: %+v vs %+v",
				i, first[i], second[i])
		}
	}
}
