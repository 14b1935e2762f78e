package service

import (
	"log"
	"regexp"
)

// genericLinkPattern is the implicit, non-overridable fallback. It is shared
// by Classify and any later re-validation so the generic bucket cannot
// diverge between the two.
var genericLinkPattern = regexp.MustCompile(`^(?:https?://|www\.)\S+`)

// GenericPattern returns the fallback pattern used for the generic bucket.
func GenericPattern() *regexp.Regexp {
	return genericLinkPattern
}

// Override is a caller-supplied service registration. For an existing name
// it is shallow-merged field by field into the default entry; for a new name
// it adds an entry. Overrides failing validation are dropped, not fatal.
type Override struct {
	Name          string
	Pattern       *regexp.Regexp
	EmbedTemplate string
	ExtractID     ExtractIDFunc
	PreviewMarkup string
	Height        int
	Width         int
}

// valid reports whether an override carries the minimum viable descriptor:
// a compiled, non-empty pattern, a non-empty embed template and non-empty
// markup. ExtractID is optional. The empty pattern compiles fine but matches
// every input, so it counts as missing.
func (o Override) valid() bool {
	return o.Name != "" && o.Pattern != nil && o.Pattern.String() != "" &&
		o.EmbedTemplate != "" && o.PreviewMarkup != ""
}

// Options configures a Registry build.
type Options struct {
	// AllowList, when non-empty, restricts the default table to the named
	// entries. Overrides are merged afterward regardless of the allow-list.
	AllowList []string

	// Overrides are applied in slice order; later entries with the same
	// name win per field.
	Overrides []Override

	// Debug enables logging of dropped overrides.
	Debug bool
}

// Registry holds the ordered service table plus a derived name-to-pattern
// view used for classification. Immutable after Build; configuration changes
// rebuild it wholesale.
type Registry struct {
	services []Service
	patterns map[string]*regexp.Regexp
}

// Build constructs a Registry from the built-in defaults filtered by the
// allow-list, then merged with the caller's overrides in their given order.
func Build(opts Options) *Registry {
	defaults := Defaults()

	var services []Service
	if len(opts.AllowList) > 0 {
		allowed := make(map[string]bool, len(opts.AllowList))
		for _, name := range opts.AllowList {
			allowed[name] = true
		}
		for _, svc := range defaults {
			if allowed[svc.Name] {
				services = append(services, svc)
			}
		}
	} else {
		services = append(services, defaults...)
	}

	index := make(map[string]int, len(services))
	for i, svc := range services {
		index[svc.Name] = i
	}

	for _, ov := range opts.Overrides {
		if !ov.valid() {
			if opts.Debug {
				log.Printf("dropping invalid service override %q", ov.Name)
			}
			continue
		}
		if i, ok := index[ov.Name]; ok {
			services[i] = merge(services[i], ov)
			continue
		}
		index[ov.Name] = len(services)
		services = append(services, Service{
			Name:          ov.Name,
			Pattern:       ov.Pattern,
			EmbedTemplate: ov.EmbedTemplate,
			ExtractID:     ov.ExtractID,
			PreviewMarkup: ov.PreviewMarkup,
			Height:        ov.Height,
			Width:         ov.Width,
		})
	}

	patterns := make(map[string]*regexp.Regexp, len(services))
	for i := range services {
		if services[i].ExtractID == nil {
			services[i].ExtractID = FirstCapture
		}
		patterns[services[i].Name] = services[i].Pattern
	}

	return &Registry{services: services, patterns: patterns}
}

// merge applies the set fields of an override onto an existing entry.
// A valid override always carries pattern, template and markup; sizing and
// extractor are taken only when present.
func merge(base Service, ov Override) Service {
	base.Pattern = ov.Pattern
	base.EmbedTemplate = ov.EmbedTemplate
	base.PreviewMarkup = ov.PreviewMarkup
	if ov.ExtractID != nil {
		base.ExtractID = ov.ExtractID
	}
	if ov.Height != 0 {
		base.Height = ov.Height
	}
	if ov.Width != 0 {
		base.Width = ov.Width
	}
	return base
}

// Classify tests the URL against every known service pattern in registry
// order, first match wins. URLs matching no service but looking like a web
// link classify as GenericLink; anything else returns the empty string.
// Classification never fails.
func (r *Registry) Classify(rawURL string) string {
	for _, svc := range r.services {
		if svc.Pattern.MatchString(rawURL) {
			return svc.Name
		}
	}
	if genericLinkPattern.MatchString(rawURL) {
		return GenericLink
	}
	return ""
}

// Get returns the service registered under name.
func (r *Registry) Get(name string) (Service, bool) {
	for _, svc := range r.services {
		if svc.Name == name {
			return svc, true
		}
	}
	return Service{}, false
}

// Names returns the service names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.services))
	for i, svc := range r.services {
		names[i] = svc.Name
	}
	return names
}

// Patterns returns the derived name-to-pattern view used for classification
// without the full descriptors.
func (r *Registry) Patterns() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(r.patterns))
	for name, p := range r.patterns {
		out[name] = p
	}
	return out
}
