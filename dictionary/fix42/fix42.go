// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fix42 exposes the FIX.4.2 dictionary: its field catalog, message
// catalog, and the well-known constants the order engine depends on. The
// underlying data is embedded JSON, validated against the dictionary/data
// schema and built once on first use.
package fix42

import (
	_ "embed"
	"sync"

	"github.com/crocofix/gocrocofix/dictionary"
	"github.com/crocofix/gocrocofix/field"
)

//go:embed data.json
var raw []byte

var (
	once          sync.Once
	orchestration *dictionary.Orchestration
	buildErr      error
)

// Dictionary returns the FIX.4.2 orchestration facade, building it from the
// embedded data on first call and caching it for the lifetime of the
// process.
func Dictionary() (*dictionary.Orchestration, error) {
	once.Do(func() {
		name, fields, messages, err := dictionary.Build(raw)
		if err != nil {
			buildErr = err
			return
		}
		orchestration = dictionary.NewOrchestration(name, fields, messages)
	})
	return orchestration, buildErr
}

// MustDictionary panics if the embedded data fails to build; intended for
// package-level constant initialization where a build failure can only be a
// programming error baked into the binary.
func MustDictionary() *dictionary.Orchestration {
	d, err := Dictionary()
	if err != nil {
		panic(err)
	}
	return d
}

// Well-known field tags the order engine and codec depend on directly.
const (
	BeginStringTag  uint32 = 8
	BodyLengthTag   uint32 = 9
	CheckSumTag     uint32 = 10
	ClOrdIDTag      uint32 = 11
	MsgSeqNumTag    uint32 = 34
	MsgTypeTag      uint32 = 35
	OrdStatusTag    uint32 = 39
	OrigClOrdIDTag  uint32 = 41
	SenderCompIDTag uint32 = 49
	TargetCompIDTag uint32 = 56
	ExecTypeTag     uint32 = 150
)

func enum(tag uint32, name, value string) field.FieldValue {
	return field.FieldValue{Tag: tag, Name: name, Value: value}
}

func OrdStatusNew() field.FieldValue            { return enum(OrdStatusTag, "New", "0") }
func OrdStatusPartiallyFilled() field.FieldValue { return enum(OrdStatusTag, "PartiallyFilled", "1") }
func OrdStatusFilled() field.FieldValue         { return enum(OrdStatusTag, "Filled", "2") }
func OrdStatusCanceled() field.FieldValue       { return enum(OrdStatusTag, "Canceled", "4") }
func OrdStatusReplaced() field.FieldValue       { return enum(OrdStatusTag, "Replaced", "5") }
func OrdStatusPendingCancel() field.FieldValue  { return enum(OrdStatusTag, "PendingCancel", "6") }
func OrdStatusPendingReplace() field.FieldValue { return enum(OrdStatusTag, "PendingReplace", "E") }

func MsgTypeNewOrderSingle() field.FieldValue           { return enum(MsgTypeTag, "NewOrderSingle", "D") }
func MsgTypeExecutionReport() field.FieldValue          { return enum(MsgTypeTag, "ExecutionReport", "8") }
func MsgTypeOrderCancelRequest() field.FieldValue       { return enum(MsgTypeTag, "OrderCancelRequest", "F") }
func MsgTypeOrderCancelReplaceRequest() field.FieldValue { return enum(MsgTypeTag, "OrderCancelReplaceRequest", "G") }
func MsgTypeOrderCancelReject() field.FieldValue        { return enum(MsgTypeTag, "OrderCancelReject", "9") }

func ExecTypeReplaced() field.FieldValue { return enum(ExecTypeTag, "Replaced", "5") }
