package properties

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/billie-coop/propedit/internal/value"
	"github.com/billie-coop/propedit/internal/workset"
)

// Header is written as the first line of every saved file.
const Header = "#Minecraft server properties"

// Parse reads key=value lines. Blank lines, comments and lines without '='
// are skipped. Key and value are trimmed and the value is typed with
// value.Parse. A key that appears twice keeps its first position and its
// last value.
func Parse(r io.Reader) ([]workset.Entry, error) {
	var entries []workset.Entry
	index := make(map[string]int)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, raw, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		v := value.Parse(strings.TrimSpace(raw))
		if i, dup := index[key]; dup {
			entries[i].Value = v
			continue
		}
		index[key] = len(entries)
		entries = append(entries, workset.Entry{Key: key, Value: v})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read properties: %w", err)
	}
	return entries, nil
}

// Format writes entries as key=value lines in order, after Header.
func Format(w io.Writer, entries []workset.Entry) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, Header); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s=%s\n", e.Key, e.Value.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
