// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package report renders an order book's state as text for fixcat's
// --orders output: one line per order, one column per requested field,
// with the staged value appended in parentheses ("20000 (40000)") on any
// column a cancel/cancel-replace request has staged a divergent value for.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/crocofix/gocrocofix/dictionary"
	"github.com/crocofix/gocrocofix/order"
	"github.com/crocofix/gocrocofix/orderbook"
)

// DefaultColumns are the report columns used when the caller requests none,
// grounded in the Rust fixcat binary's order_report.rs DEFAULT_FIELDS list:
// SenderCompID, TargetCompID, ClOrdID, OrigClOrdID, Symbol, OrdStatus,
// OrdType, TimeInForce, Side, OrderQty, Price, CumQty, AvgPx.
var DefaultColumns = []uint32{49, 56, 11, 41, 55, 39, 40, 59, 54, 38, 44, 14, 6}

// ParseColumns resolves a comma-separated list of field names or tag
// numbers (as from fixcat's --fields flag) against fields, returning the
// tags in the order given. An empty specs returns DefaultColumns. Mirrors
// the Rust CLI's validate_field: trim, try as a bare integer tag first,
// fall back to a name lookup.
func ParseColumns(fields *dictionary.Fields, specs []string) ([]uint32, error) {
	if len(specs) == 0 {
		return DefaultColumns, nil
	}

	columns := make([]uint32, 0, len(specs))
	for _, spec := range specs {
		trimmed := strings.TrimSpace(spec)
		if trimmed == "" {
			continue
		}
		if tag, err := strconv.ParseUint(trimmed, 10, 32); err == nil {
			if fields != nil && !fields.IsTagValid(uint32(tag)) {
				return nil, fmt.Errorf("report: unknown field tag %q", trimmed)
			}
			columns = append(columns, uint32(tag))
			continue
		}
		if fields == nil {
			return nil, fmt.Errorf("report: unknown field name %q", trimmed)
		}
		descriptor := fields.FieldWithName(trimmed)
		if descriptor == nil {
			return nil, fmt.Errorf("report: unknown field name %q", trimmed)
		}
		columns = append(columns, descriptor.Tag)
	}
	return columns, nil
}

// Renderer renders order book state as text, resolving field and
// enumerated value names against a single dictionary.
type Renderer struct {
	fields *dictionary.Fields
}

// New returns a Renderer that resolves names against fields. A nil fields
// falls back to printing raw tag numbers and values.
func New(fields *dictionary.Fields) *Renderer {
	return &Renderer{fields: fields}
}

// Render renders one line per order currently in book, restricted to
// columns (see ParseColumns / DefaultColumns).
func (r *Renderer) Render(book *orderbook.OrderBook, columns []uint32) string {
	var b strings.Builder
	fmt.Fprintf(&b, "order book: %d order(s)\n", book.Len())
	for _, o := range book.Orders() {
		fmt.Fprintf(&b, "  %s\n", r.renderOrder(o, columns))
	}
	return b.String()
}

func (r *Renderer) renderOrder(o *order.Order, columns []uint32) string {
	parts := make([]string, 0, len(columns))
	for _, tag := range columns {
		f, ok := o.Fields().TryGet(tag)
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", r.columnName(tag), r.renderValue(o, f.Tag, f.Value)))
	}
	return fmt.Sprintf("%s: %s", o.Key(), strings.Join(parts, "|"))
}

func (r *Renderer) columnName(tag uint32) string {
	if r.fields == nil {
		return fmt.Sprintf("%d", tag)
	}
	if name := r.fields.NameOfField(tag); name != "" {
		return name
	}
	return fmt.Sprintf("%d", tag)
}

// renderValue resolves value's enumerated label (falling back to the raw
// value) and, when the order has a divergent pending value staged for tag,
// appends that pending value (resolved the same way) in parentheses.
func (r *Renderer) renderValue(o *order.Order, tag uint32, value string) string {
	text := value
	if r.fields != nil {
		if resolved := r.fields.NameOfValue(tag, value); resolved != "" {
			text = resolved
		}
	}

	pending, isPending := o.PendingValue(tag)
	if !isPending {
		return text
	}
	pendingText := pending
	if r.fields != nil {
		if resolved := r.fields.NameOfValue(tag, pending); resolved != "" {
			pendingText = resolved
		}
	}
	return fmt.Sprintf("%s (%s)", text, pendingText)
}
