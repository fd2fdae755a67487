// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package dictionary

// Messages is a version's catalog of message descriptors, keyed both by
// display position and by MsgType string.
type Messages struct {
	ordered  []MessageDescriptor
	byMsgType map[string]int
}

// NewMessages builds a Messages table preserving the given display order.
func NewMessages(descriptors []MessageDescriptor) *Messages {
	m := &Messages{
		ordered:  descriptors,
		byMsgType: make(map[string]int, len(descriptors)),
	}
	for i, d := range descriptors {
		m.byMsgType[d.MsgType] = i
	}
	return m
}

// At returns the message descriptor at display position i.
func (m *Messages) At(i int) *MessageDescriptor {
	return &m.ordered[i]
}

// Len returns the number of message descriptors.
func (m *Messages) Len() int {
	return len(m.ordered)
}

// WithMsgType returns the descriptor for msgType, or nil if unknown.
func (m *Messages) WithMsgType(msgType string) *MessageDescriptor {
	i, ok := m.byMsgType[msgType]
	if !ok {
		return nil
	}
	return &m.ordered[i]
}

// NameOfMessage returns the message's Name, or "" if msgType is unknown.
func (m *Messages) NameOfMessage(msgType string) string {
	d := m.WithMsgType(msgType)
	if d == nil {
		return ""
	}
	return d.Name
}

// Orchestration is the per-version facade spec.md names: a protocol
// version's name together with its Fields and Messages catalogs.
type Orchestration struct {
	name     string
	fields   *Fields
	messages *Messages
}

// NewOrchestration assembles a facade over an already-built Fields and
// Messages pair.
func NewOrchestration(name string, fields *Fields, messages *Messages) *Orchestration {
	return &Orchestration{name: name, fields: fields, messages: messages}
}

func (o *Orchestration) Name() string          { return o.name }
func (o *Orchestration) Fields() *Fields       { return o.fields }
func (o *Orchestration) Messages() *Messages   { return o.messages }
