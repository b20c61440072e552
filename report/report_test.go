package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zomeworks/zome"
	"github.com/zomeworks/zome/report"
)

func testStructure(t *testing.T) *zome.Structure {
	t.Helper()
	p := zome.NewParams(7, 5, 35)
	p.CutActive = true
	p.CutLevel = 2
	s, err := zome.Regenerate(p, nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestWriteSummary(t *testing.T) {
	s := testStructure(t)
	var buf bytes.Buffer
	if err := report.WriteSummary(&buf, s); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"N=7", "node baselines", "beams", "connectors"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "warnings") {
		t.Errorf("unexpected warnings section:\n%s", out)
	}
}

func TestSaveNodeDiagrams(t *testing.T) {
	s := testStructure(t)
	dir := t.TempDir()
	if err := report.SaveNodeDiagrams(dir, s); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(s.RepresentativeNodes()) {
		t.Fatalf("%d diagrams, want %d", len(entries), len(s.RepresentativeNodes()))
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".png" {
			t.Errorf("unexpected file %s", e.Name())
		}
	}
}
