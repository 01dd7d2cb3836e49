package cluster

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/dupekeep/pkg/errors"
	"github.com/arthur-debert/dupekeep/pkg/logging"
)

// headerPattern matches a block header such as "1024 bytes each:". The
// detector prints "byte each:" for a size of 1.
var headerPattern = regexp.MustCompile(`^(\S+) bytes? each:$`)

// Parse splits detector output into clusters.
//
// Blocks are separated by blank lines and start with a size header. Blocks
// smaller than minSize, and blocks with fewer than two distinct paths, are
// dropped. A header without the size marker, or with a size that is not an
// integer, fails the whole parse with ErrMalformedInput.
func Parse(raw string, minSize int64) ([]Cluster, error) {
	logger := logging.GetLogger("cluster.parse")

	blocks := splitBlocks(raw)
	clusters := make([]Cluster, 0, len(blocks))
	for n, block := range blocks {
		size, err := parseHeader(block[0])
		if err != nil {
			return nil, err.WithDetail("block", n+1)
		}
		if size < minSize {
			logger.Trace().Int64("size", size).Int64("minSize", minSize).Msg("Dropping block below threshold")
			continue
		}
		c, ok := New(size, block[1:])
		if !ok {
			logger.Trace().Int("block", n+1).Msg("Dropping block with fewer than two distinct paths")
			continue
		}
		clusters = append(clusters, c)
	}

	Sort(clusters)
	logger.Debug().Int("blocks", len(blocks)).Int("clusters", len(clusters)).Msg("Parsed duplicate clusters")
	return clusters, nil
}

func parseHeader(line string) (int64, *errors.DupekeepError) {
	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, errors.Newf(errors.ErrMalformedInput,
			"block header %q has no size marker", line).WithDetail("line", line)
	}
	size, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrMalformedInput,
			"block header %q has a non-integer size", line).WithDetail("line", line)
	}
	return size, nil
}

// splitBlocks returns the non-empty line groups of raw. Each group has at
// least one line.
func splitBlocks(raw string) [][]string {
	var (
		blocks  [][]string
		current []string
	)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}
