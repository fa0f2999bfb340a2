package record

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	"pixelciv/internal/sims/pixelciv"
)

func sampleStats(total int) pixelciv.Stats {
	s := pixelciv.Stats{}
	s[pixelciv.GroupRed] = pixelciv.PopulationStats{Total: total, Diseased: 1, SumStrength: total * 50, SumAge: total * 10}
	s[pixelciv.GroupBlue] = pixelciv.PopulationStats{Total: total * 2, SumStrength: total * 120, SumAge: total * 30}
	return s
}

func TestStatsDBSnapshots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")
	db, err := OpenStatsDB(path)
	if err != nil {
		t.Fatalf("OpenStatsDB: %v", err)
	}
	defer db.Close()

	if err := db.WriteSnapshot(1, sampleStats(10)); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	if err := db.WriteSnapshot(2, sampleStats(7)); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	n, err := db.SnapshotCount()
	if err != nil {
		t.Fatalf("SnapshotCount: %v", err)
	}
	if n != 2*pixelciv.NumGroups {
		t.Fatalf("row count %d, expected one row per faction per tick (%d)", n, 2*pixelciv.NumGroups)
	}

	total, err := db.TotalAt(2, pixelciv.GroupBlue)
	if err != nil {
		t.Fatalf("TotalAt: %v", err)
	}
	if total != 14 {
		t.Fatalf("blue total at tick 2 = %d, expected 14", total)
	}
}

func TestStatsDBOverwritesSameTick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")
	db, err := OpenStatsDB(path)
	if err != nil {
		t.Fatalf("OpenStatsDB: %v", err)
	}
	defer db.Close()

	if err := db.WriteSnapshot(5, sampleStats(3)); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	if err := db.WriteSnapshot(5, sampleStats(9)); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	n, err := db.SnapshotCount()
	if err != nil {
		t.Fatalf("SnapshotCount: %v", err)
	}
	if n != pixelciv.NumGroups {
		t.Fatalf("row count %d after rewriting one tick, expected %d", n, pixelciv.NumGroups)
	}
	total, err := db.TotalAt(5, pixelciv.GroupRed)
	if err != nil {
		t.Fatalf("TotalAt: %v", err)
	}
	if total != 9 {
		t.Fatalf("red total %d, replacement should win", total)
	}
}

func TestTickLogRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticks.jsonl.zst")
	log, err := NewTickLog(path)
	if err != nil {
		t.Fatalf("NewTickLog: %v", err)
	}
	for tick := uint64(1); tick <= 3; tick++ {
		if err := log.Write(tick, sampleStats(int(tick))); err != nil {
			t.Fatalf("Write tick %d: %v", tick, err)
		}
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd reader: %v", err)
	}
	defer dec.Close()

	var samples []TickSample
	sc := bufio.NewScanner(dec)
	for sc.Scan() {
		var s TickSample
		if err := json.Unmarshal(sc.Bytes(), &s); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		samples = append(samples, s)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(samples) != 3 {
		t.Fatalf("read %d samples, expected 3", len(samples))
	}
	for i, s := range samples {
		if s.Tick != uint64(i+1) {
			t.Fatalf("sample %d has tick %d", i, s.Tick)
		}
		if s.Stats["Red"].Total != i+1 {
			t.Fatalf("sample %d red total %d, expected %d", i, s.Stats["Red"].Total, i+1)
		}
		if s.Stats["Blue"].Total != 2*(i+1) {
			t.Fatalf("sample %d blue total %d, expected %d", i, s.Stats["Blue"].Total, 2*(i+1))
		}
	}
}
