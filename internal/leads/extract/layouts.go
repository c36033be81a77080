// Package extract locates the receptionist's collected data inside a webhook
// payload. The provider has moved that block between releases, so the search
// walks an ordered table of known layouts and the first one that yields data wins.
package extract

import (
	"fmt"
	"strings"

	"lead-webhook/internal/leads"
)

type normalizer func(raw interface{}) leads.Fields

// Layout is one known location of the collected data.
type Layout struct {
	Name      string
	path      []string
	normalize normalizer
}

func layout(dotted string) Layout {
	return Layout{
		Name:      dotted,
		path:      strings.Split(dotted, "."),
		normalize: normalizeCollection,
	}
}

// knownLayouts is in priority order. Each entry accepts a sequence of
// {data_collection_id, value} pairs, a mapping of {value} wrappers, or a flat mapping.
var knownLayouts = []Layout{
	layout("data.analysis.data_collection_results"),
	layout("data.analysis.data_collection"),
	layout("analysis.data_collection"),
	layout("data_collection"),
	layout("data.data_collection"),
	layout("analysis.collected_data"),
	layout("collected_data"),
	layout("call.analysis.data_collection"),
	layout("conversation.analysis.data_collection"),
}

// LayoutNames returns every known layout name in priority order.
func LayoutNames() []string {
	names := make([]string, len(knownLayouts))
	for i, l := range knownLayouts {
		names[i] = l.Name
	}
	return names
}

// Extractor searches payloads with a fixed subset of the known layouts. It is
// immutable and safe for concurrent use.
type Extractor struct {
	layouts []Layout
}

// NewExtractor enables the named layouts, keeping the built-in priority order.
// With no names every known layout is enabled.
func NewExtractor(names ...string) (*Extractor, error) {
	if len(names) == 0 {
		return &Extractor{layouts: knownLayouts}, nil
	}

	enabled := make(map[string]bool, len(names))
	for _, n := range names {
		enabled[strings.TrimSpace(n)] = true
	}

	var selected []Layout
	for _, l := range knownLayouts {
		if enabled[l.Name] {
			selected = append(selected, l)
			delete(enabled, l.Name)
		}
	}
	if len(enabled) > 0 {
		unknown := make([]string, 0, len(enabled))
		for n := range enabled {
			unknown = append(unknown, n)
		}
		return nil, fmt.Errorf("unknown payload layouts: %s", strings.Join(unknown, ", "))
	}

	return &Extractor{layouts: selected}, nil
}

// Default returns an extractor over every known layout.
func Default() *Extractor {
	return &Extractor{layouts: knownLayouts}
}

// Layouts returns the enabled layout names in search order.
func (e *Extractor) Layouts() []string {
	names := make([]string, len(e.layouts))
	for i, l := range e.layouts {
		names[i] = l.Name
	}
	return names
}

// Extract returns the collected data found in payload, or an empty mapping.
// It accepts any decoded JSON value and never fails.
func (e *Extractor) Extract(payload interface{}) leads.Fields {
	fields, _ := e.Locate(payload)
	return fields
}

// Locate is Extract plus the name of the layout that matched ("" when none did).
func (e *Extractor) Locate(payload interface{}) (leads.Fields, string) {
	for _, l := range e.layouts {
		raw, ok := lookup(payload, l.path)
		if !ok {
			continue
		}
		if fields := l.normalize(raw); len(fields) > 0 {
			return fields, l.Name
		}
	}
	return leads.Fields{}, ""
}

// lookup walks nested objects along path. Any non-object step ends the walk.
func lookup(payload interface{}, path []string) (interface{}, bool) {
	cur := payload
	for _, key := range path {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}
