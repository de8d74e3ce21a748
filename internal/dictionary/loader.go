package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

const (
	fieldSeparator = ";"
	maxLineBytes   = 1 << 20
)

var (
	// ErrFileNotFound is returned when the dictionary file does not exist.
	ErrFileNotFound = errors.New("dictionary file not found")
	// ErrFileUnreadable is returned when the dictionary file cannot be read.
	ErrFileUnreadable = errors.New("dictionary file unreadable")
	// ErrEmptyFile is returned when the file has no header line.
	ErrEmptyFile = errors.New("dictionary file is empty")
)

// Load reads a dictionary from the provided file path.
func Load(path string) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrFileUnreadable, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only dictionary.
			_ = cerr
		}
	}()

	dict, err := Parse(file)
	if err != nil {
		return nil, err
	}
	dict.Path = path
	return dict, nil
}

// Parse reads a dictionary from r. The first line is the header; the rest is
// a sequence of name, category, definition and separator lines. A record cut
// short before its definition line is dropped and parsing stops.
func Parse(r io.Reader) (*Dictionary, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFileUnreadable, err)
		}
		return nil, ErrEmptyFile
	}
	dict := &Dictionary{Header: scanner.Text()}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		entry := Entry{Name: beforeSeparator(line)}

		if !scanner.Scan() {
			break
		}
		entry.Category = ParseCategory(beforeSeparator(scanner.Text()))

		if !scanner.Scan() {
			break
		}
		entry.Definition = scanner.Text()

		// Separator line; its content is ignored.
		scanner.Scan()

		dict.Entries = append(dict.Entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileUnreadable, err)
	}
	return dict, nil
}

func beforeSeparator(line string) string {
	if idx := strings.Index(line, fieldSeparator); idx >= 0 {
		return line[:idx]
	}
	return line
}
