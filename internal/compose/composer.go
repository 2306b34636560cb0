// Package compose turns a server status into the ordered embed fields shown
// in Discord, honoring per-field visibility and the embed field limit.
package compose

import (
	"context"
	"fmt"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/logger"
)

// Composition is the outcome of one render
type Composition struct {
	Fields []domain.DisplayField
	// Candidates is the number of visible fields before the slot policy ran
	Candidates int
	// NextCursor is the rotation cursor to persist for the next render
	NextCursor    int
	CursorChanged bool
	// Overflow is set when the candidates did not fit and rotation is off
	Overflow bool
}

// RenderHook observes every composition after the slot policy ran
type RenderHook func(ctx context.Context, status domain.ServerStatus, c Composition)

// Compose builds the visible candidate fields of the status in canonical
// order and applies the slot policy. Hooks run after the policy, in order.
func Compose(ctx context.Context, status domain.ServerStatus, settings domain.DisplaySettings, hooks ...RenderHook) Composition {
	candidates := Candidates(ctx, status, settings)
	c := applySlots(ctx, candidates, settings)

	for _, hook := range hooks {
		hook(ctx, status, c)
	}
	return c
}

// Candidates returns every present and visible field in canonical order.
// Duplicate IDs are dropped; the first occurrence wins.
func Candidates(ctx context.Context, status domain.ServerStatus, settings domain.DisplaySettings) []domain.DisplayField {
	bc := buildContext{ctx: ctx, status: status, settings: settings}
	seen := make(map[string]struct{})
	out := make([]domain.DisplayField, 0, len(CanonicalFields))

	add := func(f domain.DisplayField) {
		if _, dup := seen[f.ID]; dup {
			return
		}
		seen[f.ID] = struct{}{}
		f.Label = truncate(f.Label, domain.MaxFieldNameLength)
		f.Value = truncate(f.Value, domain.MaxFieldValueLength)
		out = append(out, f)
	}

	for _, e := range CanonicalFields {
		switch {
		case e.Field != nil:
			if !settings.Visible(e.Field.ID) {
				continue
			}
			value, ok := e.Field.Build(bc)
			if !ok {
				continue
			}
			add(domain.DisplayField{ID: e.Field.ID, Label: e.Field.Label, Value: value, Inline: e.Field.Inline})
		case e.Group != nil:
			if !settings.Visible(e.Group.ID) {
				continue
			}
			for _, f := range e.Group.Expand(bc) {
				if settings.Visible(f.ID) {
					add(f)
				}
			}
		}
	}
	return out
}

// applySlots enforces the embed field limit.
//
// A stored cursor at or past the end of a shrunken list restarts at 0.
// When every candidate fits, the cursor is left as it was.
func applySlots(ctx context.Context, candidates []domain.DisplayField, settings domain.DisplaySettings) Composition {
	n := len(candidates)
	c := Composition{Candidates: n, NextCursor: settings.RotationCursor}

	if n <= domain.MaxEmbedFields {
		c.Fields = candidates
		return c
	}

	if !settings.Rotation {
		logger.FromContext(ctx).Warn(LogMsgOverflow, "candidates", n, "limit", domain.MaxEmbedFields)
		c.Overflow = true
		c.Fields = []domain.DisplayField{{
			ID:    FieldIDOverflow,
			Label: LabelOverflow,
			Value: fmt.Sprintf(ValueOverflowTemplate, n, domain.MaxEmbedFields),
		}}
		return c
	}

	start, end, next := Window(settings.RotationCursor, n, domain.MaxEmbedFields)
	c.Fields = candidates[start:end]
	c.NextCursor = next
	c.CursorChanged = next != settings.RotationCursor
	logger.FromContext(ctx).Debug(LogMsgRotated, "start", start, "end", end, "next", next, "candidates", n)
	return c
}

// Window computes the rotation window [start, end) over n candidates and the
// cursor for the following render, which wraps to 0 once the end is reached.
func Window(cursor, n, size int) (start, end, next int) {
	if n <= 0 || size <= 0 {
		return 0, 0, 0
	}
	if cursor < 0 || cursor >= n {
		cursor = 0
	}
	start = cursor
	end = min(start+size, n)
	next = end
	if next >= n {
		next = 0
	}
	return start, end, next
}
