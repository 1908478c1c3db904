package data

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/juju/errors"
)

// Format identifies the on-disk text layout of a training file.
type Format string

const (
	// LibSVM lines look like "label feature:value ...".
	LibSVM Format = "libsvm"
	// LibFFM lines look like "label field:feature:value ...".
	LibFFM Format = "libffm"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case LibSVM:
		return LibSVM, nil
	case LibFFM:
		return LibFFM, nil
	}
	return "", errors.NotValidf("data format %q", name)
}

// Read parses an entire stream into a Matrix. Blank lines and lines
// starting with '#' are skipped. Labels are kept exactly as written; see
// Matrix.BinarizeLabels for the {0,1} -> {-1,+1} conversion classification
// losses expect.
func Read(r io.Reader, format Format) (*Matrix, error) {
	m := NewMatrix(0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		row, label, err := parseLine(line, format)
		if err != nil {
			return nil, errors.Annotatef(err, "line %d", lineno)
		}
		m.AddRow(row, label)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Trace(err)
	}
	return m, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string, format Format) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()

	m, err := Read(f, format)
	if err != nil {
		return nil, errors.Annotatef(err, "reading %s", path)
	}
	return m, nil
}

func parseLine(line string, format Format) (SparseRow, float64, error) {
	fields := strings.Fields(line)
	label, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, 0, errors.Annotate(err, "parsing label")
	}

	row := make(SparseRow, 0, len(fields)-1)
	for _, tok := range fields[1:] {
		node, err := parseNode(tok, format)
		if err != nil {
			return nil, 0, err
		}
		row = append(row, node)
	}
	return row, label, nil
}

func parseNode(tok string, format Format) (Node, error) {
	parts := strings.Split(tok, ":")
	want := 2
	if format == LibFFM {
		want = 3
	}
	if len(parts) != want {
		return Node{}, errors.Errorf("malformed entry %q for %s format", tok, format)
	}

	var node Node
	idx := 0
	if format == LibFFM {
		field, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return Node{}, errors.Annotatef(err, "parsing field of %q", tok)
		}
		node.Field = uint32(field)
		idx = 1
	}
	feature, err := strconv.ParseUint(parts[idx], 10, 32)
	if err != nil {
		return Node{}, errors.Annotatef(err, "parsing feature of %q", tok)
	}
	value, err := strconv.ParseFloat(parts[idx+1], 64)
	if err != nil {
		return Node{}, errors.Annotatef(err, "parsing value of %q", tok)
	}
	node.Feature = uint32(feature)
	node.Value = value
	return node, nil
}
