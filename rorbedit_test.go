package rorbedit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const catchmentFixture = `Demo catchment
C #NODES
C     1
C     1   351.00   282.00     1.00  1  0  0 A        1.230  0.00  0.00   0   0  0
C
C #REACHES
C     0
C END RORB_GE
 0
`

const stormFixture = `Demo storm
DESIGN
C time_inc, duration, burst_count, pluvio_count, flag
1.0, 6, 1, 1, 1, -99
0, 6, -99
Pluvio_1
0.0,1.0,-99
C Sub-area rainfall for Burst 1
10.0,20.0,-99
C Pluviograph references for Burst 1
1,1,-99
C Hydrograph data
0,6,-99
Station_1
1.0,2.0,-99
`

func TestOpenCatchment(t *testing.T) {
	if _, err := OpenCatchment("no-such-file.catg"); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeFixture(t, "demo.catg", catchmentFixture)
	doc, err := OpenCatchment(path)
	if err != nil {
		t.Fatalf("OpenCatchment: %v", err)
	}
	if len(doc.Nodes) != 1 || doc.Nodes[0].Name != "A" {
		t.Errorf("unexpected nodes: %+v", doc.Nodes)
	}
	if doc.Filepath != path {
		t.Errorf("got filepath %q", doc.Filepath)
	}
}

func TestOpenStorm(t *testing.T) {
	if _, err := OpenStorm("no-such-file.stm"); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeFixture(t, "demo.stm", stormFixture)
	doc, err := OpenStorm(path)
	if err != nil {
		t.Fatalf("OpenStorm: %v", err)
	}
	if doc.BurstCount != 1 || doc.PluvioCount != 1 {
		t.Errorf("got %d bursts, %d pluviographs", doc.BurstCount, doc.PluvioCount)
	}
}

func TestMust(t *testing.T) {
	if got := Must("value", nil); got != "value" {
		t.Errorf("got %q", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Must(0, os.ErrNotExist)
}

func TestOpenCatchmentNotACatchment(t *testing.T) {
	path := writeFixture(t, "odd.catg", "just\nsome\ntext\n")
	_, err := OpenCatchment(path)
	if err == nil {
		t.Fatal("expected format error")
	}
	if !strings.Contains(err.Error(), "C #NODES") {
		t.Errorf("got %v", err)
	}
}
