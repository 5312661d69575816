// Package langdetect guesses the language of code pasted into generated
// markdown. Advisory messages use it to name unlabelled code blocks.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no language can be determined.
const Unknown = "text"

// classifierCandidates limits the enry classifier to languages that show up
// in articles.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript", "PHP",
	"Ruby", "Java", "SQL", "JSON", "YAML", "HTML", "CSS",
}

// hint is a cheap, highly indicative pattern checked before the classifier.
type hint struct {
	lang  string
	match func(trimmed []byte) bool
}

//nolint:gochecknoglobals // Read-only lookup table.
var hints = []hint{
	{lang: "html", match: func(b []byte) bool {
		lower := bytes.ToLower(b)
		return bytes.HasPrefix(lower, []byte("<!doctype html")) ||
			bytes.HasPrefix(lower, []byte("<html")) ||
			bytes.Contains(lower, []byte("<body"))
	}},
	{lang: "php", match: func(b []byte) bool {
		return bytes.HasPrefix(b, []byte("<?php"))
	}},
	{lang: "json", match: func(b []byte) bool {
		return (bytes.HasPrefix(b, []byte("{")) || bytes.HasPrefix(b, []byte("["))) &&
			bytes.Contains(b, []byte(`"`))
	}},
	{lang: "go", match: func(b []byte) bool {
		return bytes.HasPrefix(b, []byte("package "))
	}},
	{lang: "python", match: func(b []byte) bool {
		s := string(b)
		return (strings.Contains(s, "def ") && strings.Contains(s, "):")) ||
			strings.Contains(s, "__name__")
	}},
	{lang: "sql", match: func(b []byte) bool {
		upper := strings.ToUpper(string(b))
		for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, keyword) {
				return true
			}
		}
		return false
	}},
	{lang: "javascript", match: func(b []byte) bool {
		s := string(b)
		return strings.Contains(s, "console.log") || strings.Contains(s, "=>")
	}},
	{lang: "yaml", match: looksLikeYAML},
}

// Detect returns a lower-case fence tag for content, or Unknown.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return Unknown
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fenceTag(lang)
	}
	if lang, safe := enry.GetLanguageByModeline(content); safe {
		return fenceTag(lang)
	}

	for _, h := range hints {
		if h.match(trimmed) {
			return h.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return fenceTag(lang)
	}
	return Unknown
}

// Label returns the language named in a code fence info string, falling
// back to Detect when the info string is empty.
func Label(info string, content []byte) string {
	if fields := strings.Fields(info); len(fields) > 0 {
		return strings.ToLower(fields[0])
	}
	return Detect(content)
}

// looksLikeYAML reports whether at least two lines read as "key: value" or
// "- item".
func looksLikeYAML(content []byte) bool {
	count := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		switch {
		case len(line) == 0, line[0] == '#':
			continue
		case bytes.HasPrefix(line, []byte("- ")):
			count++
		case bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({;") && line[0] != '"':
			count++
		}
	}
	return count >= 2
}

// fenceTag converts an enry language name to a fence tag.
func fenceTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
