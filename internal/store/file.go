package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

const (
	// Separator delimits the fields of a record. It is not escaped inside
	// descriptions.
	Separator = "|"

	// fieldCount is the number of fields in a valid record.
	fieldCount = 3
)

// Encode writes one "id|description|completed" line per task.
func Encode(w io.Writer, tasks []Task) error {
	bw := bufio.NewWriter(w)
	for _, t := range tasks {
		if _, err := fmt.Fprintf(bw, "%d%s%s%s%t\n", t.ID, Separator, t.Description, Separator, t.Completed); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads records line by line. Lines may be of any length and may end
// in "\n" or "\r\n"; a final line without a newline is still read.
// Lines that do not split into exactly three fields are skipped. An ID that
// is not a non-negative integer becomes 0 and a completed field other than
// "true" becomes false.
// On a read error the tasks decoded so far are returned with the error.
func Decode(r io.Reader) ([]Task, error) {
	var tasks []Task

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if t, ok := parseRecord(line); ok {
				tasks = append(tasks, t)
			}
		}
		if errors.Is(err, io.EOF) {
			return tasks, nil
		}
		if err != nil {
			return tasks, err
		}
	}
}

// parseRecord parses a single line. ok is false for malformed lines.
func parseRecord(line string) (Task, bool) {
	parts := strings.Split(line, Separator)
	if len(parts) != fieldCount {
		return Task{}, false
	}

	// A single leading '+' is accepted, as for task ID arguments.
	id, err := strconv.ParseUint(strings.TrimPrefix(parts[0], "+"), 10, 0)
	if err != nil || id > uint64(maxInt) {
		id = 0
	}

	return Task{
		ID:          int(id),
		Description: parts[1],
		Completed:   parts[2] == "true",
	}, true
}

const maxInt = int(^uint(0) >> 1)

// Save truncates the file at path and writes all tasks to it.
func Save(path string, s *Store) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := Encode(f, s.List()); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Load reads the store from path.
// A missing file yields an empty store and no error. On any other error the
// returned store holds whatever was decoded before the failure.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return New(), fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	tasks, err := Decode(f)
	if err != nil {
		return FromTasks(tasks), fmt.Errorf("read %s: %w", path, err)
	}
	return FromTasks(tasks), nil
}
