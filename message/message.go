// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package message implements the streaming FIX wire codec: a restartable
// decoder that tolerates fragmentation across buffer boundaries and handles
// embedded-binary data fields, and a symmetric encoder that re-derives
// BodyLength and CheckSum in place.
package message

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/crocofix/gocrocofix/dictionary"
	"github.com/crocofix/gocrocofix/field"
	"github.com/crocofix/gocrocofix/internal/fixerr"
)

const (
	valueSeparator byte = '='
	fieldSeparator byte = 0x01

	beginStringTag uint32 = 8
	bodyLengthTag  uint32 = 9
	checkSumTag    uint32 = 10
	msgTypeTag     uint32 = 35
	msgSeqNumTag   uint32 = 34
)

// Message is a FieldCollection plus the decoder-only bookkeeping spec.md's
// data model requires: a running checksum accumulator and a flag set once
// decoding observes the CheckSum field.
type Message struct {
	field.Collection

	dict *dictionary.Fields

	decodeChecksum      uint32
	decodeChecksumValid bool
}

// New constructs a Message parameterized by the dictionary that identifies
// data fields for it. The codec takes the dictionary as a dependency rather
// than hard-coding tag numbers, since the set of data fields differs across
// protocol versions.
func New(dict *dictionary.Fields) *Message {
	return &Message{dict: dict}
}

// ChecksumValid reports whether decoding has reached the CheckSum field.
// The codec never compares the accumulated value against the declared
// CheckSum itself; that comparison is left to a policy layer.
func (m *Message) ChecksumValid() bool {
	return m.decodeChecksumValid
}

// MsgType returns the message's MsgType (tag 35) value, or an error if the
// message does not carry one.
func (m *Message) MsgType() (string, error) {
	f, err := m.Get(msgTypeTag)
	if err != nil {
		return "", err
	}
	return f.Value, nil
}

// IsAdmin reports whether this message's MsgType is catalogued as an
// administrative message (session-level: Logon, Heartbeat and friends) in
// messages, as opposed to an application message. A message with no
// MsgType, or a MsgType messages does not catalogue, is never treated as
// administrative.
func (m *Message) IsAdmin(messages *dictionary.Messages) bool {
	msgType, err := m.MsgType()
	if err != nil || messages == nil {
		return false
	}
	descriptor := messages.WithMsgType(msgType)
	return descriptor != nil && descriptor.Category == "admin"
}

func (m *Message) String() string {
	parts := make([]string, 0, m.Len())
	for _, f := range m.All() {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, "|")
}

// DecodeResult reports how much of the supplied buffer was consumed and
// whether the Message is now complete (the CheckSum field was observed).
type DecodeResult struct {
	Consumed int
	Complete bool
}

// Decode parses tag/value records from buffer and appends them to the
// Message's field collection, starting where a previous call to Decode left
// off. It is restartable: a caller that sees Complete=false must retain
// buffer[Consumed:] and prepend it to the next chunk it reads.
//
// Decode does not itself track whether the Message is already complete;
// calling it again after Complete=true simply appends more fields.
func (m *Message) Decode(buffer []byte) (DecodeResult, error) {
	currentIndex := 0
	checksumIndex := 0
	complete := false

	for currentIndex < len(buffer) {
		equalsIndex := indexOf(buffer, currentIndex, valueSeparator)
		if equalsIndex < 0 {
			break
		}

		tag, err := parseTag(buffer[currentIndex:equalsIndex])
		if err != nil {
			return DecodeResult{}, err
		}

		isData := m.dict != nil && m.dict.IsTagValid(tag) && m.dict.At(tag).IsData

		var value string
		var nextIndex int

		if isData {
			length, ok, err := m.precedingDataLength()
			if err != nil {
				return DecodeResult{}, err
			}
			if !ok {
				return DecodeResult{}, fixerr.ErrDataFieldWithNoPrecedingSizeField
			}

			valueStart := equalsIndex + 1
			trailerIndex := valueStart + length
			if trailerIndex >= len(buffer) {
				break
			}
			if buffer[trailerIndex] != fieldSeparator {
				return DecodeResult{}, fixerr.ErrDataFieldWithNoTrailingSeparator
			}

			value = string(buffer[valueStart:trailerIndex])
			nextIndex = trailerIndex + 1
		} else {
			separatorIndex := indexOf(buffer, equalsIndex+1, fieldSeparator)
			if separatorIndex < 0 {
				break
			}
			valueStart := equalsIndex + 1
			value = string(buffer[valueStart:separatorIndex])
			nextIndex = separatorIndex + 1

			if !isValidUTF8(value) {
				return DecodeResult{}, fixerr.ErrInvalidUTF8
			}
		}

		m.Push(field.FromString(tag, value))
		currentIndex = nextIndex

		if tag == checkSumTag {
			complete = true
			break
		}
		checksumIndex = currentIndex
	}

	sum := uint32(0)
	for _, b := range buffer[:checksumIndex] {
		sum += uint32(b)
	}
	m.decodeChecksum += sum

	if complete {
		m.decodeChecksum %= 256
		m.decodeChecksumValid = true
	}

	return DecodeResult{Consumed: currentIndex, Complete: complete}, nil
}

// precedingDataLength returns the integer value of the field immediately
// preceding the current one (the data field's declared length).
func (m *Message) precedingDataLength() (length int, ok bool, err error) {
	if m.Len() == 0 {
		return 0, false, nil
	}
	previous := m.At(m.Len() - 1)
	n, convErr := strconv.Atoi(previous.Value)
	if convErr != nil || n < 0 {
		return 0, true, fixerr.ErrDataFieldWithNonNumericPreviousField
	}
	return n, true, nil
}

func indexOf(buffer []byte, from int, b byte) int {
	for i := from; i < len(buffer); i++ {
		if buffer[i] == b {
			return i
		}
	}
	return -1
}

func parseTag(raw []byte) (uint32, error) {
	if !isValidUTF8(string(raw)) {
		return 0, fixerr.ErrInvalidUTF8
	}
	n, err := strconv.ParseUint(string(raw), 10, 32)
	if err != nil {
		return 0, fixerr.ErrTagParseFailed
	}
	return uint32(n), nil
}

func isValidUTF8(s string) bool {
	return strings.ToValidUTF8(s, "�") == s
}

// EncodeOptions is a bitflag set controlling which framing fields Encode
// recomputes in place.
type EncodeOptions uint8

const (
	SetChecksum EncodeOptions = 1 << iota
	SetBodyLength
	SetBeginString
	SetMsgSeqNum

	Standard = SetChecksum | SetBodyLength | SetBeginString | SetMsgSeqNum
)

// Encode serializes the Message's fields into out in their collection
// order, overwriting BodyLength and CheckSum values as directed by options.
// BeginString and MsgSeqNum are never synthesized or removed: the options
// bits for them only gate whether a caller-supplied recomputation upstream
// is honored elsewhere, they never cause this method to add a missing
// field. Returns the number of bytes written, or 0 if out cannot hold the
// result.
func (m *Message) Encode(out []byte, options EncodeOptions) (int, error) {
	bodyLengthIndex := -1
	checksumIndex := -1
	for i, f := range m.All() {
		switch f.Tag {
		case bodyLengthTag:
			bodyLengthIndex = i
		case checkSumTag:
			checksumIndex = i
		}
	}

	rendered := make([]string, m.Len())
	for i, f := range m.All() {
		rendered[i] = f.String()
	}

	if options&SetBodyLength != 0 && bodyLengthIndex >= 0 {
		bodyLength := 0
		for i := bodyLengthIndex + 1; i < m.Len(); i++ {
			if m.At(i).Tag == checkSumTag {
				break
			}
			bodyLength += len(rendered[i]) + 1
		}
		rendered[bodyLengthIndex] = field.FromString(bodyLengthTag, strconv.Itoa(bodyLength)).String()
	}

	if options&SetChecksum != 0 && checksumIndex >= 0 {
		sum := 0
		for i := 0; i < checksumIndex; i++ {
			for _, b := range []byte(rendered[i]) {
				sum += int(b)
			}
			sum += int(fieldSeparator)
		}
		checksum := sum % 256
		formatted, err := FormatChecksum(checksum)
		if err != nil {
			return 0, err
		}
		rendered[checksumIndex] = field.FromString(checkSumTag, formatted).String()
	}

	var total int
	for _, r := range rendered {
		total += len(r) + 1
	}
	if total > len(out) {
		return 0, nil
	}

	offset := 0
	for _, r := range rendered {
		offset += copy(out[offset:], r)
		out[offset] = fieldSeparator
		offset++
	}
	return offset, nil
}

// FormatChecksum renders a checksum as exactly three zero-padded ASCII
// decimal digits. A value of 1000 or more cannot be represented and is a
// programmer error.
func FormatChecksum(checksum int) (string, error) {
	if checksum >= 1000 || checksum < 0 {
		return "", fmt.Errorf("message: checksum %d does not fit in three digits", checksum)
	}
	return fmt.Sprintf("%03d", checksum), nil
}
