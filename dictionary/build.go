// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package dictionary

import (
	"encoding/json"
	"fmt"

	"github.com/crocofix/gocrocofix/dictionary/data"
	"github.com/crocofix/gocrocofix/field"
)

type sourcePedigree struct {
	Added      string `json:"added"`
	Updated    string `json:"updated"`
	Deprecated string `json:"deprecated"`
}

func (p sourcePedigree) toPedigree() Pedigree {
	return Pedigree{Added: p.Added, Updated: p.Updated, Deprecated: p.Deprecated}
}

type sourceFieldValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type sourceField struct {
	Tag      uint32             `json:"tag"`
	Name     string             `json:"name"`
	Type     string             `json:"type"`
	Synopsis string             `json:"synopsis"`
	Pedigree sourcePedigree     `json:"pedigree"`
	IsData   bool               `json:"isData"`
	Values   []sourceFieldValue `json:"values"`
}

type sourceMessageField struct {
	Tag      uint32 `json:"tag"`
	Presence string `json:"presence"`
	Depth    int    `json:"depth"`
}

type sourceMessage struct {
	Name     string               `json:"name"`
	MsgType  string               `json:"msgType"`
	Category string               `json:"category"`
	Synopsis string               `json:"synopsis"`
	Pedigree sourcePedigree       `json:"pedigree"`
	Fields   []sourceMessageField `json:"fields"`
}

type sourceDocument struct {
	Version  string          `json:"version"`
	Fields   []sourceField   `json:"fields"`
	Messages []sourceMessage `json:"messages"`
}

var presenceByName = map[string]Presence{
	"Required":  Required,
	"Optional":  Optional,
	"Forbidden": Forbidden,
	"Ignored":   Ignored,
	"Constant":  Constant,
}

// Build validates raw against the orchestration schema, decodes it, and
// constructs a version's Fields and Messages tables plus its declared
// version name. Called once per version behind that version's sync.Once.
func Build(raw []byte) (name string, fields *Fields, messages *Messages, err error) {
	if err := data.Validate(raw); err != nil {
		return "", nil, nil, err
	}

	var doc sourceDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", nil, nil, fmt.Errorf("dictionary: decode orchestration document: %w", err)
	}

	descriptors := make([]FieldDescriptor, 0, len(doc.Fields))
	for _, sf := range doc.Fields {
		values := make([]field.FieldValue, 0, len(sf.Values))
		for _, sv := range sf.Values {
			values = append(values, field.FieldValue{Tag: sf.Tag, Name: sv.Name, Value: sv.Value})
		}
		descriptors = append(descriptors, FieldDescriptor{
			Tag:      sf.Tag,
			Name:     sf.Name,
			DataType: sf.Type,
			Synopsis: sf.Synopsis,
			Pedigree: sf.Pedigree.toPedigree(),
			Values:   values,
			IsData:   sf.IsData,
		})
	}
	builtFields := NewFields(descriptors)

	msgs := make([]MessageDescriptor, 0, len(doc.Messages))
	for _, sm := range doc.Messages {
		mfs := make([]MessageField, 0, len(sm.Fields))
		for _, smf := range sm.Fields {
			presence, ok := presenceByName[smf.Presence]
			if !ok {
				return "", nil, nil, fmt.Errorf("dictionary: message %s: unknown presence %q", sm.Name, smf.Presence)
			}
			mfs = append(mfs, MessageField{
				Field:    builtFields.At(smf.Tag),
				Presence: presence,
				Depth:    smf.Depth,
			})
		}
		msgs = append(msgs, MessageDescriptor{
			Name:     sm.Name,
			MsgType:  sm.MsgType,
			Category: sm.Category,
			Synopsis: sm.Synopsis,
			Pedigree: sm.Pedigree.toPedigree(),
			Fields:   mfs,
		})
	}
	builtMessages := NewMessages(msgs)

	return doc.Version, builtFields, builtMessages, nil
}
