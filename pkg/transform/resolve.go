package transform

import "strings"

// Resolver rewrites bare module specifiers into CDN ES-module URLs.
// The zero value leaves every specifier untouched.
type Resolver struct {
	// Enabled turns magic-import resolution on.
	Enabled bool
	// BaseURL is the CDN root prepended to non-absolute specifiers.
	BaseURL string
	// AutoNPM infers an npm/ registry segment for bare specifiers that
	// carry no explicit registry prefix.
	AutoNPM bool
}

// absoluteSchemes are specifier prefixes that are already full URLs and never
// get rewritten.
var absoluteSchemes = []string{"http://", "https://", "data:", "file://", "blob:"}

// registryPrefixes are explicit registry segments a specifier may start with.
var registryPrefixes = []string{"npm/", "gh/"}

// assetSuffixes mark specifiers that already name a script or wasm asset and
// therefore never get the +esm suffix.
var assetSuffixes = []string{".js", ".mjs", ".cjs", ".wasm", "+esm"}

// Resolve maps a module specifier to a loadable URL.
func (r Resolver) Resolve(spec string) string {
	for _, scheme := range absoluteSchemes {
		if strings.HasPrefix(spec, scheme) {
			return spec
		}
	}
	if !r.Enabled {
		return spec
	}

	base := r.BaseURL
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}

	resolved := base + spec
	if !r.hasRegistryPrefix(spec) && r.AutoNPM {
		resolved = base + "npm/" + spec
	}

	for _, suffix := range assetSuffixes {
		if strings.HasSuffix(spec, suffix) {
			return resolved
		}
	}
	if strings.HasSuffix(spec, "/") {
		return resolved + "+esm"
	}
	return resolved + "/+esm"
}

func (r Resolver) hasRegistryPrefix(spec string) bool {
	for _, prefix := range registryPrefixes {
		if strings.HasPrefix(spec, prefix) {
			return true
		}
	}
	return false
}
