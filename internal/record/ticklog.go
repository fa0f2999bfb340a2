package record

import (
	"bufio"
	"encoding/json"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"

	"pixelciv/internal/sims/pixelciv"
)

// TickSample is one line of the tick log.
type TickSample struct {
	Tick  uint64                              `json:"tick"`
	Stats map[string]pixelciv.PopulationStats `json:"stats"`
}

// TickLog appends zstd-compressed JSONL tick samples to a single file.
type TickLog struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// NewTickLog creates (or truncates) a tick log at path.
func NewTickLog(path string) (*TickLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &TickLog{f: f, enc: enc, w: bufio.NewWriter(enc)}, nil
}

// Write appends one sample.
func (l *TickLog) Write(tick uint64, stats pixelciv.Stats) error {
	sample := TickSample{Tick: tick, Stats: make(map[string]pixelciv.PopulationStats, pixelciv.NumGroups)}
	for g := pixelciv.GroupRed; g <= pixelciv.GroupBlue; g++ {
		sample.Stats[g.String()] = stats[g]
	}
	raw, err := json.Marshal(sample)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.w.Write(raw); err != nil {
		return err
	}
	return l.w.WriteByte('\n')
}

// Close flushes and closes the log.
func (l *TickLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.w.Flush(); err != nil {
		return err
	}
	if err := l.enc.Close(); err != nil {
		return err
	}
	return l.f.Close()
}
