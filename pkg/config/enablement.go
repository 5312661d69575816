package config

import (
	"maps"
	"slices"

	"github.com/yaklabco/mdslice/pkg/slice"
)

// Enablement maps slice types to whether generation instructions may use
// them. It is consulted only when building instructions, never by the parser.
type Enablement map[slice.Type]bool

// DefaultEnablement returns the out-of-the-box enablement: the core and
// interactive slices are on, the advanced slices are off.
func DefaultEnablement() Enablement {
	return Enablement{
		slice.TypeTypography:   true,
		slice.TypeImage:        true,
		slice.TypeDivider:      true,
		slice.TypeNotification: true,
		slice.TypeAccordion:    true,
		slice.TypeProsCons:     true,
		slice.TypeChecklist:    false,
		slice.TypeTips:         false,
		slice.TypeTable:        false,
		slice.TypeDosDonts:     false,
		slice.TypeQuote:        false,
		slice.TypeCallToAction: false,
	}
}

// IsCore reports whether t is always available regardless of enablement.
func IsCore(t slice.Type) bool {
	switch t {
	case slice.TypeTypography, slice.TypeImage, slice.TypeDivider:
		return true
	default:
		return false
	}
}

// Enabled reports whether t may be used. Core types are always enabled;
// types missing from the map are disabled.
func (e Enablement) Enabled(t slice.Type) bool {
	return IsCore(t) || e[t]
}

// Types returns the enabled slice types in vocabulary order.
func (e Enablement) Types() []slice.Type {
	var enabled []slice.Type
	for _, t := range slice.Types() {
		if e.Enabled(t) {
			enabled = append(enabled, t)
		}
	}
	return enabled
}

// Unknown returns the sorted keys that are not part of the slice vocabulary.
func (e Enablement) Unknown() []slice.Type {
	var unknown []slice.Type
	for t := range e {
		if !t.IsValid() {
			unknown = append(unknown, t)
		}
	}
	slices.Sort(unknown)
	return unknown
}

// Clone returns a copy of the enablement map.
func (e Enablement) Clone() Enablement {
	if e == nil {
		return nil
	}
	return maps.Clone(e)
}
