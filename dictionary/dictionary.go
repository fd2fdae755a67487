// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package dictionary defines the shared, version-independent shapes of the
// FIX catalog: field descriptors, message descriptors and the two
// O(1)-lookup containers (Fields, Messages) built from them. Each protocol
// version (fix42, fix44, fix50sp2) embeds its own static data and builds one
// of these once, lazily, behind sync.Once.
package dictionary

import (
	"strings"

	"github.com/crocofix/gocrocofix/field"
)

// Pedigree records which protocol revision introduced, updated or
// deprecated a field or message.
type Pedigree struct {
	Added      string
	Updated    string
	Deprecated string
}

// Presence describes how a field may appear within a message.
type Presence int

const (
	Required Presence = iota
	Optional
	Forbidden
	Ignored
	Constant
)

// numericDataTypes mirrors spec.md's definition of IsNumeric: membership is
// case-insensitive.
var numericDataTypes = map[string]struct{}{
	"int": {}, "length": {}, "tagnum": {}, "seqnum": {}, "numingroup": {},
	"float": {}, "qty": {}, "price": {}, "priceoffset": {}, "amt": {}, "percentage": {},
}

// FieldDescriptor is the immutable catalog entry for one numeric tag within
// a protocol version.
type FieldDescriptor struct {
	Tag      uint32
	Name     string
	DataType string
	Synopsis string
	Pedigree Pedigree
	Values   []field.FieldValue
	IsData   bool
}

// IsValid reports whether this descriptor represents a real field. Tag 0 is
// the reserved sentinel returned for out-of-range lookups that the caller
// chooses not to treat as fatal (NameOfField, NameOfValue).
func (d *FieldDescriptor) IsValid() bool {
	return d.Tag != 0
}

// IsNumeric reports whether the field's data type is one of the numeric
// lexical categories, compared case-insensitively.
func (d *FieldDescriptor) IsNumeric() bool {
	_, ok := numericDataTypes[strings.ToLower(d.DataType)]
	return ok
}

// NameOfValue returns the enumerated label for value, or "" if the
// descriptor has no such enumerated member.
func (d *FieldDescriptor) NameOfValue(value string) string {
	for _, v := range d.Values {
		if v.Value == value {
			return v.Name
		}
	}
	return ""
}

// MessageField is one member field of a MessageDescriptor.
type MessageField struct {
	Field    *FieldDescriptor
	Presence Presence
	Depth    int
}

// MessageDescriptor is the immutable catalog entry for one message type
// within a protocol version.
type MessageDescriptor struct {
	Name     string
	MsgType  string
	Category string
	Synopsis string
	Pedigree Pedigree
	Fields   []MessageField
}
