/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"fmt"
	"strings"
)

// DiagKind classifies a non-fatal data problem encountered while loading
// tables or resolving games.
type DiagKind int

const (
	DiagMalformedRecord DiagKind = iota
	DiagUnknownPlayer
	DiagUnknownOpponent
	DiagInvalidOutcomeToken
	DiagOutputWriteFailure
)

func (k DiagKind) String() string {
	switch k {
	case DiagMalformedRecord:
		return "malformed record"
	case DiagUnknownPlayer:
		return "unknown player"
	case DiagUnknownOpponent:
		return "unknown opponent"
	case DiagInvalidOutcomeToken:
		return "invalid outcome token"
	case DiagOutputWriteFailure:
		return "output write failure"
	default:
		return "?"
	}
}

// Diagnostic records a single skipped row or game so a tournament director
// can audit which results were not scored. Diagnostics are collected rather
// than swallowed; the commands also log them as they occur.
type Diagnostic struct {
	Kind   DiagKind
	Round  string // empty for load-time diagnostics
	Player PlayerID
	Detail string
}

func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(d.Kind.String())
	if d.Round != "" {
		fmt.Fprintf(&sb, " in %v", d.Round)
	}
	if d.Player != "" {
		fmt.Fprintf(&sb, " (player %v)", d.Player)
	}
	if d.Detail != "" {
		fmt.Fprintf(&sb, ": %v", d.Detail)
	}
	return sb.String()
}
