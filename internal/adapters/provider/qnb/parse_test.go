package qnb

import "testing"

func TestParseSemicolonPairs(t *testing.T) {
	got := parseSemicolonPairs("ProcReturnCode=00;;AuthCode=123456;;HostRefNum=abc")
	if got["ProcReturnCode"] != "00" || got["AuthCode"] != "123456" || got["HostRefNum"] != "abc" {
		t.Fatalf("unexpected parse: %+v", got)
	}
}

func TestParseSemicolonPairsIgnoresMalformedSegments(t *testing.T) {
	got := parseSemicolonPairs("ProcReturnCode=00;;garbage;;AuthCode=1")
	if len(got) != 2 {
		t.Fatalf("expected 2 fields, got %+v", got)
	}
}
