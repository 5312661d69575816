// Package collab defines the boundaries to the services around the parser:
// a text generator that writes marked-up markdown and a publisher that stores
// the parsed document. Local implementations back both with the file system.
package collab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdslice/pkg/docdiff"
	"github.com/yaklabco/mdslice/pkg/fsutil"
	"github.com/yaklabco/mdslice/pkg/parser"
	"github.com/yaklabco/mdslice/pkg/prompt"
	"github.com/yaklabco/mdslice/pkg/slice"
)

// ErrInvalidExternalID is returned for identifiers that cannot name a document.
var ErrInvalidExternalID = errors.New("invalid external id")

// Generator produces markdown from generation instructions.
type Generator interface {
	Generate(ctx context.Context, in prompt.Instructions) (string, error)
}

// Publisher stores a parsed document under an external identifier.
type Publisher interface {
	Publish(ctx context.Context, externalID string, doc *parser.Document) error
}

// FileGenerator returns pre-generated markdown read from Path.
// The instructions are not used.
type FileGenerator struct {
	Path string
}

// Generate reads the markdown file.
func (g FileGenerator) Generate(ctx context.Context, _ prompt.Instructions) (string, error) {
	content, _, err := fsutil.ReadFile(ctx, g.Path)
	if err != nil {
		return "", fmt.Errorf("generate from file: %w", err)
	}
	return string(content), nil
}

// DirPublisher writes each document as <Dir>/<externalID>.json.
// Slash-separated identifiers create nested directories.
type DirPublisher struct {
	// Dir is the output root.
	Dir string

	// Indent is the JSON indentation width; 0 writes compact JSON.
	Indent int

	// Offsets is the unit span offsets are written in. The zero value keeps
	// code points.
	Offsets slice.OffsetUnit
}

// Path returns the file a document with the given identifier is written to.
func (p DirPublisher) Path(externalID string) (string, error) {
	if err := ValidateExternalID(externalID); err != nil {
		return "", err
	}
	return filepath.Join(p.Dir, filepath.FromSlash(externalID)+".json"), nil
}

// Publish writes the document atomically. Unchanged files are not rewritten.
func (p DirPublisher) Publish(ctx context.Context, externalID string, doc *parser.Document) error {
	target, err := p.Path(externalID)
	if err != nil {
		return err
	}

	data, err := Encode(doc.WithOffsets(p.Offsets), p.Indent)
	if err != nil {
		return err
	}

	if _, err := fsutil.WriteAtomicIfChanged(ctx, target, data, 0); err != nil {
		return fmt.Errorf("publish %s: %w", externalID, err)
	}
	return nil
}

// Diff compares the published version of a document with doc without
// writing anything. It returns nil when publishing would not change the file.
func (p DirPublisher) Diff(ctx context.Context, externalID string, doc *parser.Document) (*docdiff.Diff, error) {
	target, err := p.Path(externalID)
	if err != nil {
		return nil, err
	}

	data, err := Encode(doc.WithOffsets(p.Offsets), p.Indent)
	if err != nil {
		return nil, err
	}

	current, _, err := fsutil.ReadFile(ctx, target)
	if err != nil && !errors.Is(err, fsutil.ErrNotFound) {
		return nil, fmt.Errorf("read published %s: %w", externalID, err)
	}

	return docdiff.Compare(externalID+".json", current, data), nil
}

// Encode renders a document as JSON followed by a newline.
func Encode(doc *parser.Document, indent int) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent > 0 {
		data, err = json.MarshalIndent(doc, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return append(data, '\n'), nil
}

// ValidateExternalID rejects identifiers that are empty, absolute, or that
// escape the publisher's root.
func ValidateExternalID(externalID string) error {
	switch {
	case strings.TrimSpace(externalID) == "":
		return fmt.Errorf("%w: empty", ErrInvalidExternalID)
	case strings.Contains(externalID, `\`):
		return fmt.Errorf("%w: %q contains a backslash", ErrInvalidExternalID, externalID)
	case path.IsAbs(externalID):
		return fmt.Errorf("%w: %q is absolute", ErrInvalidExternalID, externalID)
	}

	for _, part := range strings.Split(externalID, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("%w: %q has an empty or relative segment", ErrInvalidExternalID, externalID)
		}
	}
	return nil
}

// Convert runs one generation round trip: build instructions, generate
// markdown, parse it and publish the document.
func Convert(ctx context.Context, gen Generator, pub Publisher, in prompt.Instructions, externalID string) (*parser.Document, error) {
	markdown, err := gen.Generate(ctx, in)
	if err != nil {
		return nil, err
	}

	doc := parser.Parse(markdown)

	if err := pub.Publish(ctx, externalID, doc); err != nil {
		return doc, err
	}
	return doc, nil
}
