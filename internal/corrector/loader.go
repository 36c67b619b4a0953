package corrector

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/edsrzf/mmap-go"
	"go.uber.org/zap"
)

const maxLineSize = 1 << 20

// LoadStats summarises one dictionary file.
type LoadStats struct {
	Path    string
	Phrases int
	Skipped int
}

// LoadFile maps a dictionary file read-only and inserts its entries into
// ts. Each line holds language, phrase and score separated by tabs.
func LoadFile(ts *Tries, path string, log *zap.SugaredLogger) (LoadStats, error) {
	stats := LoadStats{Path: path}
	f, err := os.Open(path)
	if err != nil {
		return stats, errors.Wrapf(err, "open dictionary %s", path)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return stats, errors.Wrapf(err, "stat dictionary %s", path)
	}
	// mmap rejects empty files
	if fi.Size() == 0 {
		return stats, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return stats, errors.Wrapf(err, "mmap dictionary %s", path)
	}
	defer m.Unmap()

	stats.Phrases, stats.Skipped, err = Load(ts, bytes.NewReader(m), log)
	if err != nil {
		return stats, errors.Wrapf(err, "read dictionary %s", path)
	}
	return stats, nil
}

// Load reads tab separated dictionary lines from r. Blank lines are ignored;
// malformed ones are logged and skipped.
func Load(ts *Tries, r io.Reader, log *zap.SugaredLogger) (inserted, skipped int, err error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for s.Scan() {
		lineNo++
		line := strings.TrimRight(s.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		language, phrase, score, err := parseLine(line)
		if err != nil {
			log.Warnw("skipping dictionary line", "line", lineNo, "error", err)
			skipped++
			continue
		}
		if !ts.Insert(language, phrase, score) {
			skipped++
			continue
		}
		inserted++
	}
	return inserted, skipped, s.Err()
}

func parseLine(line string) (language, phrase string, score float64, err error) {
	parts := strings.Split(line, "\t")
	if len(parts) != 3 {
		return "", "", 0, errors.Newf("expected 3 tab separated fields, got %d", len(parts))
	}
	score, err = strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return "", "", 0, errors.Wrap(err, "parse score")
	}
	return parts[0], parts[1], score, nil
}
