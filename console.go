package docsjson

import (
	"bufio"
	"fmt"
	"strings"
)

// DefaultMaxLines is the number of console lines read while waiting for the
// preview banner before giving up.
const DefaultMaxLines = 100

// Announcement is what a single console line revealed about the preview.
// The zero value means the line announced nothing.
type Announcement struct {
	Package *PackageRef
	Bind    string
}

// LineParser recognises preview announcements in console output.
// Implementations are expected to be format-specific; the discovery loop
// only cares about the announcements they return.
type LineParser interface {
	ParseLine(line string) (Announcement, error)
}

// Ensure ConsoleParser implements LineParser at compile time.
var _ LineParser = ConsoleParser{}

// ConsoleParser parses the plain-text banner printed by elm-doc-preview:
//
//	Previewing author/package 1.0.0 from /path/to/package
//	Browse <http://localhost:8000> to explore your docs
type ConsoleParser struct{}

// ParseLine implements LineParser.
func (ConsoleParser) ParseLine(line string) (Announcement, error) {
	switch {
	case strings.HasPrefix(line, "Previewing"):
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return Announcement{}, Errorf(EINVALID, "malformed preview line %q", line)
		}
		return Announcement{Package: &PackageRef{Name: fields[1], Version: fields[2]}}, nil

	case strings.HasPrefix(line, "Browse"):
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return Announcement{}, Errorf(EINVALID, "malformed browse line %q", line)
		}
		addr := fields[1]
		for _, f := range fields[1:] {
			if strings.HasPrefix(f, "<") && strings.HasSuffix(f, ">") {
				addr = f
				break
			}
		}
		return Announcement{Bind: StripBrackets(addr)}, nil
	}
	return Announcement{}, nil
}

// StripBrackets removes enclosing angle brackets from an address.
// Addresses without brackets are returned unchanged.
func StripBrackets(addr string) string {
	return strings.TrimRight(strings.TrimLeft(addr, "<"), ">")
}

// ScanPreview reads console lines until parser has announced both a package
// and a bind address. It returns EINCOMPLETE if maxLines lines are read or
// the output ends first; maxLines <= 0 means DefaultMaxLines. Every line read
// is passed to echo when echo is non-nil.
func ScanPreview(sc *bufio.Scanner, parser LineParser, maxLines int, echo func(line string)) (*Preview, error) {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	var pkg *PackageRef
	var bind string
	for n := 0; n < maxLines; n++ {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("reading preview output: %w", err)
			}
			return nil, incomplete(pkg, bind, "output ended")
		}

		line := sc.Text()
		if echo != nil {
			echo(line)
		}

		a, err := parser.ParseLine(line)
		if err != nil {
			return nil, err
		}
		if a.Package != nil {
			pkg = a.Package
		}
		if a.Bind != "" {
			bind = a.Bind
		}

		if pkg != nil && bind != "" {
			return &Preview{Package: *pkg, Bind: bind}, nil
		}
	}

	return nil, incomplete(pkg, bind, fmt.Sprintf("%d lines", maxLines))
}

func incomplete(pkg *PackageRef, bind, reason string) error {
	var missing []string
	if pkg == nil {
		missing = append(missing, "package reference")
	}
	if bind == "" {
		missing = append(missing, "bind address")
	}
	return Errorf(EINCOMPLETE, "preview banner incomplete after %s: missing %s", reason, strings.Join(missing, " and "))
}
