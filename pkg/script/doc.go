// Package script parses and runs line-oriented edit scripts against a
// layout session.
//
// # Syntax
//
// One statement per line; '#' starts a comment:
//
//	resize ID WxH
//	insert ID into PARENT [at N] (size WxH | axis AXIS)
//	remove ID
//	move ID to PARENT [at N]
//	axis ID AXIS
//	spacing ID N
//	padding ID LEFT TOP RIGHT BOTTOM
//	offset X Y
//	recompute
//
// Each recompute statement runs one layout generation. A script whose last
// statement is not recompute ends with an implicit one, so every script
// produces at least one generation.
package script
