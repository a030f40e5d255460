package botdata

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotStorable is wrapped by CheckStorable when a list entry would not
// survive being joined and parsed back.
var ErrNotStorable = errors.New("list entry cannot be stored")

const (
	libraryPathSeparator = ";"
	emoticonKeySeparator = ","
)

// LibraryPath is one entry of a bot's library search path. Dir is true when
// the stored entry ended with a path separator.
type LibraryPath struct {
	Path string
	Dir  bool
}

func (p LibraryPath) String() string {
	if p.Dir && !hasTrailingSeparator(p.Path) {
		return p.Path + string(os.PathSeparator)
	}
	return p.Path
}

// ParseLibraryPaths splits a semicolon-delimited path list. Entries are
// trimmed, empty entries are dropped, and the trailing separator is kept.
func ParseLibraryPaths(s string) []LibraryPath {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, libraryPathSeparator)
	paths := make([]LibraryPath, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		paths = append(paths, LibraryPath{Path: part, Dir: hasTrailingSeparator(part)})
	}
	if len(paths) == 0 {
		return nil
	}
	return paths
}

// JoinLibraryPaths is the inverse of ParseLibraryPaths.
func JoinLibraryPaths(paths []LibraryPath) string {
	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		if p.Path == "" {
			continue
		}
		parts = append(parts, p.String())
	}
	return strings.Join(parts, libraryPathSeparator)
}

// ParseEmoticonKeys splits a comma-delimited trigger list such as
// "!start, !j, !r". Tokens are trimmed and empty tokens dropped.
func ParseEmoticonKeys(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, emoticonKeySeparator)
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		keys = append(keys, part)
	}
	if len(keys) == 0 {
		return nil
	}
	return keys
}

// JoinEmoticonKeys joins trigger tokens the way they are stored.
func JoinEmoticonKeys(keys []string) string {
	return strings.Join(keys, emoticonKeySeparator+" ")
}

// CheckLibraryPaths reports the first entry that JoinLibraryPaths followed
// by ParseLibraryPaths would not give back unchanged.
func CheckLibraryPaths(paths []LibraryPath) error {
	for i, p := range paths {
		switch {
		case strings.TrimSpace(p.Path) == "":
			return fmt.Errorf("%w: library path %d is empty", ErrNotStorable, i)
		case p.Path != strings.TrimSpace(p.Path):
			return fmt.Errorf("%w: library path %q has surrounding white space", ErrNotStorable, p.Path)
		case strings.Contains(p.Path, libraryPathSeparator):
			return fmt.Errorf("%w: library path %q contains %q", ErrNotStorable, p.Path, libraryPathSeparator)
		case !p.Dir && hasTrailingSeparator(p.Path):
			return fmt.Errorf("%w: library path %q ends with a separator but is not a directory", ErrNotStorable, p.Path)
		}
	}
	return nil
}

// CheckEmoticonKeys is the CheckLibraryPaths counterpart for trigger tokens.
func CheckEmoticonKeys(keys []string) error {
	for i, k := range keys {
		switch {
		case strings.TrimSpace(k) == "":
			return fmt.Errorf("%w: trigger token %d is empty", ErrNotStorable, i)
		case k != strings.TrimSpace(k):
			return fmt.Errorf("%w: trigger token %q has surrounding white space", ErrNotStorable, k)
		case strings.Contains(k, emoticonKeySeparator):
			return fmt.Errorf("%w: trigger token %q contains %q", ErrNotStorable, k, emoticonKeySeparator)
		}
	}
	return nil
}

// CheckStorable reports whether the list fields of b can be stored in their
// delimited form without loss. It does not look at any other field.
func CheckStorable(b *BotConfig) error {
	if err := CheckLibraryPaths(b.libraryPaths); err != nil {
		return err
	}
	return CheckEmoticonKeys(b.emoticonKeys)
}

// Both separators mark a directory, whatever the host platform.
func hasTrailingSeparator(p string) bool {
	return strings.HasSuffix(p, "/") || strings.HasSuffix(p, `\`) ||
		strings.HasSuffix(p, string(os.PathSeparator))
}
