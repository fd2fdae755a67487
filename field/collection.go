// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package field

import "github.com/crocofix/gocrocofix/internal/fixerr"

// SetOperation controls how Collection.Set resolves a tag that may already
// be present.
type SetOperation int

const (
	// ReplaceFirst replaces the first occurrence of a field with this tag.
	// If there is no field with this tag, nothing happens.
	ReplaceFirst SetOperation = iota
	// ReplaceFirstOrAppend replaces the first occurrence of a field with
	// this tag, or appends a new field if none exists.
	ReplaceFirstOrAppend
	// Append always appends a new field, regardless of duplicates.
	Append
)

// RemoveOperation controls how Collection.Remove resolves duplicates.
type RemoveOperation int

const (
	// RemoveFirst removes the first occurrence of a field with this tag.
	RemoveFirst RemoveOperation = iota
	// RemoveAll removes every occurrence of a field with this tag.
	RemoveAll
)

// Collection is an ordered, duplicate-permitting sequence of Fields.
// Repeating groups in the protocol rely on the same tag appearing more than
// once, so insertion order is preserved and observable.
type Collection struct {
	fields []Field
}

// Clear empties the collection.
func (c *Collection) Clear() {
	c.fields = c.fields[:0]
}

// IsEmpty reports whether the collection has no fields.
func (c *Collection) IsEmpty() bool {
	return len(c.fields) == 0
}

// Len returns the number of fields, including duplicates.
func (c *Collection) Len() int {
	return len(c.fields)
}

// Push appends a field unconditionally.
func (c *Collection) Push(f Field) {
	c.fields = append(c.fields, f)
}

// At returns the field at the given position. Panics if index is out of
// range, mirroring a direct slice index.
func (c *Collection) At(index int) Field {
	return c.fields[index]
}

// Get returns the first field with the given tag, or
// MessageDoesNotContainFieldWithTag if none exists.
func (c *Collection) Get(tag uint32) (Field, error) {
	if f, ok := c.TryGet(tag); ok {
		return f, nil
	}
	return Field{}, fixerr.MessageDoesNotContainFieldWithTag(tag)
}

// TryGet returns the first field with the given tag and true, or the zero
// Field and false if none exists.
func (c *Collection) TryGet(tag uint32) (Field, bool) {
	for _, f := range c.fields {
		if f.Tag == tag {
			return f, true
		}
	}
	return Field{}, false
}

// Set applies operation to field. It returns true if one or more fields
// were added or updated, false if nothing changed (only possible with
// ReplaceFirst against a missing tag).
func (c *Collection) Set(f Field, operation SetOperation) bool {
	if operation == Append {
		c.fields = append(c.fields, f)
		return true
	}

	for i := range c.fields {
		if c.fields[i].Tag == f.Tag {
			c.fields[i].Value = f.Value
			return true
		}
	}

	if operation == ReplaceFirstOrAppend {
		c.fields = append(c.fields, f)
		return true
	}
	return false
}

// Remove applies operation for the given tag. It returns true if one or
// more fields were removed, false if nothing matched.
func (c *Collection) Remove(tag uint32, operation RemoveOperation) bool {
	switch operation {
	case RemoveFirst:
		for i := range c.fields {
			if c.fields[i].Tag == tag {
				c.fields = append(c.fields[:i], c.fields[i+1:]...)
				return true
			}
		}
		return false
	case RemoveAll:
		kept := c.fields[:0:0]
		removed := false
		for _, f := range c.fields {
			if f.Tag == tag {
				removed = true
				continue
			}
			kept = append(kept, f)
		}
		c.fields = kept
		return removed
	default:
		return false
	}
}

// All returns the fields in insertion order. The returned slice shares
// storage with the collection and must not be mutated by the caller.
func (c *Collection) All() []Field {
	return c.fields
}

// Clone returns an independent copy of the collection: mutating the clone
// never affects the original, and vice versa.
func (c *Collection) Clone() Collection {
	return Collection{fields: append([]Field(nil), c.fields...)}
}
