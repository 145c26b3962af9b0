package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/halebuild/takeoff-engine/internal/domain"
)

// FileInfo is the plan context encoded in a spreadsheet filename
type FileInfo struct {
	PlanName      string
	ElevationName string
	Foundation    string
	OptionName    string
}

// ParseFilename extracts plan, elevation, foundation and option name from a
// filename following the PlanName_Elevation_Foundation_OptionName grammar.
// Spaces are normalized to underscores before splitting, and everything after
// the third separator is rejoined with spaces so multi-word option names like
// "Base Home" survive either delimiter.
func ParseFilename(name string) (*FileInfo, error) {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSpace(base)

	normalized := strings.ReplaceAll(base, " ", "_")
	var parts []string
	for _, p := range strings.Split(normalized, "_") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	if len(parts) < 4 {
		return nil, fmt.Errorf("%w: %q", domain.ErrFilenameFormat, name)
	}

	return &FileInfo{
		PlanName:      parts[0],
		ElevationName: parts[1],
		Foundation:    parts[2],
		OptionName:    strings.Join(parts[3:], " "),
	}, nil
}
