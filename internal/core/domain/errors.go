package domain

import "go.trai.ch/zerr"

var (
	// ErrTargetAlreadyExists is returned when attempting to add a target with a label that already exists.
	ErrTargetAlreadyExists = zerr.New("target already exists")

	// ErrMissingDependency is returned when a target references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the target dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrLabelSyntax is returned when a label string is not in canonical "//package:name" form.
	ErrLabelSyntax = zerr.New("invalid label syntax")

	// ErrMissingMnemonic is returned when an action is declared without a mnemonic.
	ErrMissingMnemonic = zerr.New("action has no mnemonic")

	// ErrNoTargetsDefined is returned when the workspace configuration declares no targets.
	ErrNoTargetsDefined = zerr.New("no targets defined")
)
