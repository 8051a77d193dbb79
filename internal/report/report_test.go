package report

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestMessageEmpty(t *testing.T) {
	if got := Message(nil); got != "No unreachable paths found." {
		t.Errorf("Message(nil) = %q", got)
	}
}

func TestMessageSingle(t *testing.T) {
	if got := Message([]int{7}); got != "Unreachable path found at line 7." {
		t.Errorf("Message([7]) = %q", got)
	}
}

func TestMessageMultiple(t *testing.T) {
	got := Message([]int{3, 9, 12})
	want := "Unreachable paths found at lines 3, 9, 12."
	if got != want {
		t.Errorf("Message([3,9,12]) = %q, want %q", got, want)
	}
}

func TestJSONShape(t *testing.T) {
	doc, err := JSON("sample.txt", []int{4, 10})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	snaps.MatchSnapshot(t, "analysis_json", doc)
}

func TestQueryMatchesField(t *testing.T) {
	doc, err := JSON("sample.txt", []int{4, 10})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	got, err := Query(doc, "file")
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if got != "sample.txt" {
		t.Errorf("Query(file) = %q, want %q", got, "sample.txt")
	}
}

func TestQueryOnMissingPathErrors(t *testing.T) {
	doc, _ := JSON("sample.txt", nil)
	if _, err := Query(doc, "nonexistent.path"); err == nil {
		t.Error("Query() on a missing path returned no error")
	}
}

func TestBatchShape(t *testing.T) {
	doc, err := Batch([]string{"a.txt", "b.txt"}, [][]int{{1}, nil})
	if err != nil {
		t.Fatalf("Batch() error: %v", err)
	}
	snaps.MatchSnapshot(t, "batch_json", doc)
}
