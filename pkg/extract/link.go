package extract

import (
	"regexp"
	"strings"

	"github.com/yaklabco/mdslice/pkg/richtext"
	"github.com/yaklabco/mdslice/pkg/slice"
)

var (
	linkPattern   = regexp.MustCompile(`(^|[^!])\[([^\]]*)\]\(\s*([^\s)]*)(?:\s+"([^"]*)")?\s*\)`)
	imagePattern  = regexp.MustCompile(`!\[([^\]]*)\]\(\s*([^\s)]*)(?:\s+"([^"]*)")?\s*\)`)
	buttonPattern = regexp.MustCompile(`\[Button:\s*([^|\]]+)\|\s*([^\]]+)\]`)
)

func extractCallToAction(content string) slice.CallToAction {
	var fields slice.CallToAction

	if match := linkPattern.FindStringSubmatch(content); match != nil {
		fields.LinkText = strings.TrimSpace(richtext.Clean(match[2]))
		fields.URL = match[3]
		fields.Title = match[4]
	} else if match := buttonPattern.FindStringSubmatch(content); match != nil {
		fields.LinkText = strings.TrimSpace(match[1])
		fields.URL = strings.TrimSpace(match[2])
	}

	if fields.Title == "" {
		fields.Title = firstBold(content)
	}

	return fields
}

func extractImage(content string) slice.Image {
	var fields slice.Image

	if match := imagePattern.FindStringSubmatch(content); match != nil {
		fields.AltText = strings.TrimSpace(match[1])
		fields.URL = match[2]
		fields.Title = match[3]
	}

	return fields
}
