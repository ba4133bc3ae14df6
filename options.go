package acornima

// ECMAVersion selects the reserved-word set and feature gating applied
// during parsing, per spec.md §6.
type ECMAVersion int

// Recognized versions; Latest tracks the newest feature set this parser
// implements (through the ES2023/ES2024-era features spec.md §1 names).
const (
	ES3    ECMAVersion = 3
	ES5    ECMAVersion = 5
	ES2015 ECMAVersion = 6
	ES2016 ECMAVersion = 7
	ES2017 ECMAVersion = 8
	ES2018 ECMAVersion = 9
	ES2019 ECMAVersion = 10
	ES2020 ECMAVersion = 11
	ES2021 ECMAVersion = 12
	ES2022 ECMAVersion = 13
	ES2023 ECMAVersion = 14
	Latest ECMAVersion = ES2023
)

// SourceType selects between a classic script and a module, per spec.md §6.
type SourceType int

const (
	ScriptSource SourceType = iota
	ModuleSource
)

// AllowReserved controls reserved-word relaxation in script mode, per
// spec.md §6 (`allowReserved` ∈ {true, false, "never"}).
type AllowReserved int

const (
	AllowReservedDefault AllowReserved = iota // true: relaxed in script mode
	AllowReservedFalse
	AllowReservedNever
)

// Comment records one skipped comment's range and kind, the optional
// collection surface described in SPEC_FULL.md §6 (grounded on acorn's
// onComment option, which DevSide-acorn/acorngo/src/options.go also carries).
type Comment struct {
	Block bool // true for /* ... */, false for // ...
	Text  string
	Range Range
	Loc   SourceLocation
}

// Options enumerates every parser knob named in spec.md §6. The flat
// struct-of-fields shape (rather than functional options) matches the
// option structs used throughout tdewolff/parse (html/css Token options)
// and DevSide-acorn/acorngo/src/options.go's RawOptions.
type Options struct {
	ECMAVersion ECMAVersion
	SourceType  SourceType

	AllowReserved AllowReserved

	AllowReturnOutsideFunction bool
	AllowAwaitOutsideFunction  bool
	AllowImportExportEverywhere bool
	AllowHashBang              bool

	Tolerant bool

	PreserveParens bool

	CheckPrivateFields bool

	// Comments, if non-nil, receives every skipped comment in source order.
	Comments *[]Comment

	// Filename is copied into Program.Filename, per spec.md §6's
	// `filename?` parameter. *Error values do not carry it.
	Filename string
}

// DefaultOptions returns the sloppy-script, ES-latest default configuration.
func DefaultOptions() Options {
	return Options{
		ECMAVersion:   Latest,
		SourceType:    ScriptSource,
		AllowReserved: AllowReservedDefault,
	}
}
