package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"sarf/internal/lexicon"
	"sarf/internal/scheme"
)

// ParseRoots reads one root token per line. Blank lines are dropped; tokens
// are returned as written so the store can report the invalid ones.
func ParseRoots(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read roots: %w", err)
	}
	return out, nil
}

// ParseSchemes reads "name[,category]" lines. A line without a comma gets
// scheme.DefaultCategory; everything after the first comma is the category.
func ParseSchemes(r io.Reader) ([]scheme.Scheme, error) {
	var out []scheme.Scheme
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if line == "" {
			continue
		}
		name, category, found := strings.Cut(line, ",")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !found {
			category = scheme.DefaultCategory
		}
		out = append(out, scheme.Scheme{Name: name, Category: strings.TrimSpace(category)})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read schemes: %w", err)
	}
	return out, nil
}

func WriteRoots(w io.Writer, roots []string) error {
	bw := bufio.NewWriter(w)
	for _, r := range roots {
		if _, err := bw.WriteString(r + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteSchemes writes one "name,category" line per scheme. A scheme that
// would not read back as itself is refused before anything is written.
func WriteSchemes(w io.Writer, schemes []scheme.Scheme) error {
	for _, s := range schemes {
		if strings.ContainsAny(s.Name, ",\r\n") || strings.ContainsAny(s.Category, "\r\n") {
			return fmt.Errorf("write scheme %q: %w", s.Name, lexicon.ErrInvalidScheme)
		}
	}
	bw := bufio.NewWriter(w)
	for _, s := range schemes {
		if _, err := fmt.Fprintf(bw, "%s,%s\n", s.Name, s.Category); err != nil {
			return err
		}
	}
	return bw.Flush()
}
