package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Label identifies a configured target within the workspace, in canonical
// "//package:name" form. Labels are value objects backed by interned strings,
// so they are cheap to copy and usable as map keys. Two labels are equal iff
// their canonical string forms are equal.
type Label struct {
	pkg  InternedString
	name InternedString
}

// ParseLabel parses a label string into a Label.
//
// Accepted forms:
//
//	//path/to/pkg:name
//	//path/to/pkg          (shorthand for //path/to/pkg:pkg)
func ParseLabel(s string) (Label, error) {
	rest, ok := strings.CutPrefix(s, "//")
	if !ok {
		return Label{}, zerr.With(ErrLabelSyntax, "label", s)
	}

	pkg, name, found := strings.Cut(rest, ":")
	if !found {
		// Shorthand: the target name defaults to the last package segment.
		if idx := strings.LastIndexByte(pkg, '/'); idx >= 0 {
			name = pkg[idx+1:]
		} else {
			name = pkg
		}
	}

	if pkg == "" || name == "" || strings.Contains(name, ":") || strings.Contains(name, "/") {
		return Label{}, zerr.With(ErrLabelSyntax, "label", s)
	}

	return Label{
		pkg:  NewInternedString(pkg),
		name: NewInternedString(name),
	}, nil
}

// Package returns the package path of the label, without the leading "//".
func (l Label) Package() string {
	return l.pkg.String()
}

// Name returns the target name of the label.
func (l Label) Name() string {
	return l.name.String()
}

// String returns the canonical "//package:name" form.
func (l Label) String() string {
	return "//" + l.pkg.String() + ":" + l.name.String()
}

// IsZero reports whether the label is the zero value.
func (l Label) IsZero() bool {
	return l == Label{}
}
