package fathom

import "errors"

// Error kinds surfaced to callers (spec §7). Each is a package-level
// sentinel so callers can test with errors.Is; call sites that have an
// offending rule or key wrap them with fmt.Errorf("...: %w", ...) to
// attach it.
var (
	// ErrCycle is returned when the planner detects a cyclic prerequisite
	// graph.
	ErrCycle = errors.New("fathom: cyclic rule prerequisites")

	// ErrMissingOutKey is returned by Get(string) when no outward rule
	// produces the given key.
	ErrMissingOutKey = errors.New("fathom: no outward rule for key")

	// ErrBadGetArgument is returned when Get receives an argument that is
	// neither a string, an LHS, nor a dom.Element.
	ErrBadGetArgument = errors.New("fathom: Get argument must be a string key, an LHS, or a dom.Element")

	// ErrConserveScoreWithoutType is returned when an RHS requests
	// ConserveScore but its LHS has no guaranteed type.
	ErrConserveScoreWithoutType = errors.New("fathom: conserveScore requires a guaranteed LHS type")

	// ErrScoreWithoutInferableType is returned when an RHS supplies Score
	// and neither an explicit nor an inferable type is available.
	ErrScoreWithoutInferableType = errors.New("fathom: score fact has no inferable type")

	// ErrNoteWithoutInferableType is returned when an RHS supplies Note or
	// Type without an inferable type.
	ErrNoteWithoutInferableType = errors.New("fathom: note or type fact has no inferable type")

	// ErrUnderspecifiedEmission is returned at rule construction when the
	// builder cannot determine what type an RHS may emit.
	ErrUnderspecifiedEmission = errors.New("fathom: rule's RHS has underspecified emission")

	// ErrDomRuleMustAssignType is returned at rule construction when a
	// Dom(selector) LHS is paired with an RHS that emits no type.
	ErrDomRuleMustAssignType = errors.New("fathom: a Dom() rule's RHS must assign a type")

	// ErrNoteOverwrite is returned when a note for a given (fnode, type)
	// already set to a non-nil value is reassigned to any non-nil value,
	// including an equal one.
	ErrNoteOverwrite = errors.New("fathom: note already set for this type")

	// ErrUnsupportedAnd is returned when And(...) receives a non-simple
	// type argument.
	ErrUnsupportedAnd = errors.New("fathom: And() only supports simple type arguments")

	// ErrDoubleExecution indicates an internal invariant violation: the
	// planner scheduled an inward rule that had already run. It signals a
	// planner bug, not a user error.
	ErrDoubleExecution = errors.New("fathom: internal: inward rule scheduled twice")
)
