// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package dictionary

// invalidField occupies position 0 in every version's field table; index
// access to a gap between defined tags returns the same zero value, while
// an index past the highest tag panics (see At).
var invalidField = FieldDescriptor{}

// Fields is a version's dense, tag-indexed catalog of field descriptors
// plus a name index, giving O(1) lookup in both directions.
type Fields struct {
	byTag  []FieldDescriptor
	byName map[string]uint32
}

// NewFields builds a Fields table from an unordered list of descriptors.
// Position 0 of the internal array is reserved for the invalid sentinel;
// descriptors are placed at their own Tag.
func NewFields(descriptors []FieldDescriptor) *Fields {
	maxTag := uint32(0)
	for _, d := range descriptors {
		if d.Tag > maxTag {
			maxTag = d.Tag
		}
	}

	f := &Fields{
		byTag:  make([]FieldDescriptor, maxTag+1),
		byName: make(map[string]uint32, len(descriptors)),
	}
	f.byTag[0] = invalidField

	for _, d := range descriptors {
		f.byTag[d.Tag] = d
		f.byName[d.Name] = d.Tag
	}
	return f
}

// At returns the descriptor for tag. Tag must be in range; an out-of-range
// tag is a programmer error and panics rather than failing silently.
func (f *Fields) At(tag uint32) *FieldDescriptor {
	return &f.byTag[tag]
}

// IsTagValid reports whether tag is a defined field in this version, not
// merely in range: gaps inside [0, maxTag] hold the zero-value descriptor
// and must report false too.
func (f *Fields) IsTagValid(tag uint32) bool {
	return tag != 0 && int(tag) < len(f.byTag) && f.byTag[tag].Tag != 0
}

// NameOfField returns the field's name, or "" if tag is unknown or 0. Unlike
// At, this never panics — it is the "soft" lookup spec.md describes.
func (f *Fields) NameOfField(tag uint32) string {
	if tag == 0 || int(tag) >= len(f.byTag) {
		return ""
	}
	return f.byTag[tag].Name
}

// NameOfValue returns the enumerated label for (tag, value), or "" if the
// tag is unknown or has no such enumerated member.
func (f *Fields) NameOfValue(tag uint32, value string) string {
	if tag == 0 || int(tag) >= len(f.byTag) {
		return ""
	}
	return f.byTag[tag].NameOfValue(value)
}

// FieldWithName returns the descriptor registered under name, or nil.
func (f *Fields) FieldWithName(name string) *FieldDescriptor {
	tag, ok := f.byName[name]
	if !ok {
		return nil
	}
	return &f.byTag[tag]
}
