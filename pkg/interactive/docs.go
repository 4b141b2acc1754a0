package interactive

// builtinDocs documents well-known host identifiers that exist at execution
// time but are not bindings in the shared namespace, so inspection cannot
// evaluate them. Consulted only after evaluation fails.
var builtinDocs = map[string]string{
	"console":       "console: host logging object. Methods: log, info, warn, error, debug, table.",
	"globalThis":    "globalThis: the shared global namespace. Top-level declarations from earlier snippets are copied here.",
	"window":        "window: alias of the shared global namespace in browser-like hosts.",
	"document":      "document: host DOM document, when the execution environment provides one.",
	"Math":          "Math: built-in math object. Properties: PI, E; methods: abs, floor, ceil, round, min, max, random, sqrt, pow.",
	"JSON":          "JSON: built-in serialization object. Methods: parse(text), stringify(value, replacer, space).",
	"Promise":       "Promise: built-in asynchronous value constructor. Static methods: resolve, reject, all, race, allSettled.",
	"fetch":         "fetch(url, options): performs an HTTP request and resolves to a Response.",
	"setTimeout":    "setTimeout(fn, ms): schedules fn after ms milliseconds; returns a timer id.",
	"setInterval":   "setInterval(fn, ms): schedules fn every ms milliseconds; returns a timer id.",
	"clearTimeout":  "clearTimeout(id): cancels a timer created with setTimeout.",
	"clearInterval": "clearInterval(id): cancels a timer created with setInterval.",
	"Object":        "Object: built-in base constructor. Static methods: keys, values, entries, assign, freeze.",
	"Array":         "Array: built-in list constructor. Static methods: from, of, isArray.",
	"Map":           "Map: built-in keyed collection preserving insertion order.",
	"Set":           "Set: built-in collection of unique values preserving insertion order.",
	"Symbol":        "Symbol: built-in unique-name factory.",
	"BigInt":        "BigInt: built-in arbitrary-precision integer constructor.",
	"import":        "import(specifier): dynamic module load; resolves to the module namespace object.",
}
