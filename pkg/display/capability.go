package display

// Capability interfaces for values that know how to render themselves. Each
// one is optional and checked by presence; a failing capability drops that
// single representation without failing the call.

// MimeRenderer produces a complete bundle directly. A successful, non-empty
// result is returned verbatim and short-circuits every other capability.
type MimeRenderer interface {
	RenderMime() (Bundle, error)
}

// HTMLRenderer produces a text/html representation.
type HTMLRenderer interface {
	RenderHTML() (string, error)
}

// SVGRenderer produces an image/svg+xml representation.
type SVGRenderer interface {
	RenderSVG() (string, error)
}

// PNGRenderer produces a base64 image/png payload.
type PNGRenderer interface {
	RenderPNG() (string, error)
}

// JPEGRenderer produces a base64 image/jpeg payload.
type JPEGRenderer interface {
	RenderJPEG() (string, error)
}

// MarkdownRenderer produces a text/markdown representation.
type MarkdownRenderer interface {
	RenderMarkdown() (string, error)
}

// LaTeXRenderer produces a text/latex representation.
type LaTeXRenderer interface {
	RenderLaTeX() (string, error)
}

// TextInspector supplies the text/plain fallback accompanying custom
// representations.
type TextInspector interface {
	InspectText() string
}

// hasCapability reports whether v exposes at least one custom-serialization
// capability.
func hasCapability(v any) bool {
	switch v.(type) {
	case MimeRenderer, HTMLRenderer, SVGRenderer, PNGRenderer,
		JPEGRenderer, MarkdownRenderer, LaTeXRenderer:
		return true
	}
	return false
}

// renderCapabilities accumulates every representation the value can produce.
func renderCapabilities(v any) Bundle {
	if mr, ok := v.(MimeRenderer); ok {
		if bundle, err := mr.RenderMime(); err == nil && len(bundle) > 0 {
			return bundle
		}
	}

	bundle := Bundle{}
	if r, ok := v.(HTMLRenderer); ok {
		if out, err := r.RenderHTML(); err == nil {
			bundle[MimeHTML] = out
		}
	}
	if r, ok := v.(SVGRenderer); ok {
		if out, err := r.RenderSVG(); err == nil {
			bundle[MimeSVG] = out
		}
	}
	if r, ok := v.(PNGRenderer); ok {
		if out, err := r.RenderPNG(); err == nil {
			bundle[MimePNG] = out
		}
	}
	if r, ok := v.(JPEGRenderer); ok {
		if out, err := r.RenderJPEG(); err == nil {
			bundle[MimeJPEG] = out
		}
	}
	if r, ok := v.(MarkdownRenderer); ok {
		if out, err := r.RenderMarkdown(); err == nil {
			bundle[MimeMarkdown] = out
		}
	}
	if r, ok := v.(LaTeXRenderer); ok {
		if out, err := r.RenderLaTeX(); err == nil {
			bundle[MimeLaTeX] = out
		}
	}

	if ti, ok := v.(TextInspector); ok {
		bundle[MimeText] = ti.InspectText()
	} else {
		bundle[MimeText] = coerceString(v)
	}
	return bundle
}
