package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Source is a discovered markdown file.
type Source struct {
	// Path is the absolute file path.
	Path string

	// Root is the absolute directory argument the file was found under.
	// Empty when the file was named directly.
	Root string
}

// Discover finds markdown files matching opts. Sources are sorted by path and
// a file reachable from several arguments is listed once, under the first.
func Discover(ctx context.Context, opts Options) ([]Source, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m := matcher{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		exclude:    opts.ExcludeGlobs,
		follow:     opts.FollowSymlinks,
	}

	seen := make(map[string]struct{})
	var sources []Source
	add := func(src Source) {
		if _, ok := seen[src.Path]; ok {
			return
		}
		seen[src.Path] = struct{}{}
		sources = append(sources, src)
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := input
		if !filepath.IsAbs(input) {
			absPath = filepath.Join(workDir, input)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if m.matches(absPath) {
				add(Source{Path: absPath})
			}
			continue
		}

		files, err := m.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(Source{Path: f, Root: absPath})
		}
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	return sources, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// matcher holds the resolved discovery criteria.
type matcher struct {
	workDir    string
	extensions []string
	exclude    []string
	follow     bool
}

// walk recursively collects matching files under root. Hidden entries are
// skipped.
func (m matcher) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(file string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if file != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if m.excluded(file) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(file)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped
			}
			if target.IsDir() {
				if !m.follow {
					return nil
				}
				realPath, err := filepath.EvalSymlinks(file)
				if err != nil {
					return nil //nolint:nilerr // Unresolvable symlinks are skipped
				}
				sub, err := m.walk(ctx, realPath)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if m.matches(file) {
			files = append(files, file)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// matches reports whether a file has a markdown extension and is not excluded.
func (m matcher) matches(file string) bool {
	ext := strings.ToLower(filepath.Ext(file))
	for _, e := range m.extensions {
		if strings.ToLower(e) == ext {
			return !m.excluded(file)
		}
	}
	return false
}

// excluded reports whether path matches any exclude glob.
func (m matcher) excluded(file string) bool {
	rel, err := filepath.Rel(m.workDir, file)
	if err != nil {
		rel = file
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range m.exclude {
		if matchGlob(rel, filepath.ToSlash(pattern)) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-separated path against a glob. A pattern without
// a slash also matches the base name; "**" matches any number of segments.
func matchGlob(name, pattern string) bool {
	if !strings.Contains(pattern, "**") {
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			ok, _ := path.Match(pattern, path.Base(name))
			return ok
		}
		return false
	}
	return matchSegments(strings.Split(name, "/"), strings.Split(pattern, "/"))
}

// matchSegments matches path segments against pattern segments with "**"
// standing for zero or more segments.
func matchSegments(segments, pattern []string) bool {
	for len(pattern) > 0 {
		head := pattern[0]
		if head == "**" {
			rest := pattern[1:]
			if len(rest) == 0 {
				return true
			}
			for i := range len(segments) + 1 {
				if matchSegments(segments[i:], rest) {
					return true
				}
			}
			return false
		}

		if len(segments) == 0 {
			return false
		}
		if ok, _ := path.Match(head, segments[0]); !ok {
			return false
		}
		segments, pattern = segments[1:], pattern[1:]
	}
	return len(segments) == 0
}
