package bbox

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/phoscity/svg2cetz/pkg/errors"
)

// DefaultBinary is the Inkscape executable looked up on PATH when no
// explicit path is configured.
const DefaultBinary = "inkscape"

// Inkscape queries bounding boxes by shelling out to the Inkscape CLI.
// One invocation resolves the whole id list: Inkscape prints one
// comma-separated line per query dimension, with one value per id.
type Inkscape struct {
	// Binary is the executable to run; DefaultBinary when empty.
	Binary string
}

// Query writes the document to a temporary file and runs
//
//	inkscape file.svg --query-id=a,b,c --query-x --query-y --query-width --query-height
//
// The reported values are in user units.
func (q *Inkscape) Query(ctx context.Context, doc []byte, ids []string) (map[string]Box, error) {
	if len(ids) == 0 {
		return map[string]Box{}, nil
	}

	binary := q.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	if _, err := exec.LookPath(binary); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBoundingBox, err,
			"inkscape executable not found; install Inkscape or configure its path")
	}

	dir, err := os.MkdirTemp("", "svg2cetz-*")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBoundingBox, err, "creating temporary directory")
	}
	defer os.RemoveAll(dir)

	// Inkscape decides the parser by extension, so the suffix matters.
	file := filepath.Join(dir, "query.svg")
	if err := os.WriteFile(file, doc, 0o600); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBoundingBox, err, "writing temporary svg")
	}

	cmd := exec.CommandContext(ctx, binary, file,
		"--query-id="+strings.Join(ids, ","),
		"--query-x", "--query-y", "--query-width", "--query-height")

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBoundingBox, err,
			"inkscape query failed: %s", strings.TrimSpace(errBuf.String()))
	}
	return parseQueryOutput(out.String(), ids)
}

// parseQueryOutput reads the four comma-separated value lines Inkscape
// prints for --query-x, --query-y, --query-width and --query-height.
func parseQueryOutput(output string, ids []string) (map[string]Box, error) {
	var rows [][]float64
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		vals := make([]float64, 0, len(fields))
		numeric := true
		for _, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				// Inkscape mixes warnings into stdout on some platforms.
				numeric = false
				break
			}
			vals = append(vals, v)
		}
		if numeric {
			rows = append(rows, vals)
		}
	}

	if len(rows) < 4 {
		return nil, errors.New(errors.ErrCodeBoundingBox,
			"unexpected inkscape query output: %d value lines, want 4", len(rows))
	}
	rows = rows[len(rows)-4:]
	for _, row := range rows {
		if len(row) != len(ids) {
			return nil, errors.New(errors.ErrCodeBoundingBox,
				"inkscape reported %d values for %d ids", len(row), len(ids))
		}
	}

	boxes := make(map[string]Box, len(ids))
	for i, id := range ids {
		boxes[id] = FromXYWH(rows[0][i], rows[1][i], rows[2][i], rows[3][i])
	}
	return boxes, nil
}
