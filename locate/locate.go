// Package locate finds the .tf source declaration behind a plan
// address, so violation reports can point at a file and line.
package locate

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tagvet/tagvet/types"
)

// Scanner looks resource addresses up in the *.tf files of one
// directory. Files are read once, on first lookup.
type Scanner struct {
	dir    string
	logger zerolog.Logger
	loaded bool
	files  []tfFile
}

type tfFile struct {
	name    string
	content string
}

// NewScanner builds a Scanner over dir's *.tf files
func NewScanner(dir string, logger zerolog.Logger) *Scanner {
	return &Scanner{
		dir:    dir,
		logger: logger.With().Str("component", "locate").Logger(),
	}
}

// Locate finds the resource block declaring the given address. A miss
// is not an error, the report is simply less precise.
func (s *Scanner) Locate(address string) (types.SourceLocation, bool) {
	resourceType, name, ok := splitAddress(address)
	if !ok {
		return types.SourceLocation{}, false
	}
	s.load()

	pattern, err := regexp.Compile(
		`resource\s+"` + regexp.QuoteMeta(resourceType) + `"\s+"` + regexp.QuoteMeta(name) + `"`)
	if err != nil {
		return types.SourceLocation{}, false
	}

	for _, f := range s.files {
		match := pattern.FindStringIndex(f.content)
		if match == nil {
			continue
		}
		line := strings.Count(f.content[:match[0]], "\n") + 1
		return types.SourceLocation{File: f.name, Line: line}, true
	}
	return types.SourceLocation{}, false
}

func (s *Scanner) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	paths, err := filepath.Glob(filepath.Join(s.dir, "*.tf"))
	if err != nil {
		s.logger.Debug().Err(err).Str("dir", s.dir).Msg("source scan unavailable")
		return
	}
	for _, path := range paths {
		content, err := os.ReadFile(path) // #nosec G304 -- scanning the user's own module dir
		if err != nil {
			s.logger.Debug().Err(err).Str("file", path).Msg("skipping unreadable source file")
			continue
		}
		s.files = append(s.files, tfFile{name: filepath.Base(path), content: string(content)})
	}
}

// splitAddress breaks "aws_s3_bucket.data[0]" into type and name.
// Module-qualified addresses and data sources live outside the scanned
// blocks, so they are not resolved.
func splitAddress(address string) (resourceType, name string, ok bool) {
	resourceType, name, found := strings.Cut(address, ".")
	if !found || resourceType == "" || name == "" {
		return "", "", false
	}
	if resourceType == "module" || resourceType == "data" {
		return "", "", false
	}
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return resourceType, name, true
}
