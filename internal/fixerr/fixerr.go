// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fixerr collects the closed error taxonomy shared by the codec,
// dictionary, order and order book packages. Decode failures and order and
// order book failures are the sentinels below, optionally wrapped with the
// offending tag/key/type. Checksum formatting (message.FormatChecksum),
// dictionary building and report column parsing return plain fmt.Errorf
// errors instead.
package fixerr

import (
	"errors"
	"fmt"
)

var (
	ErrTagParseFailed                       = errors.New("tag parse failed")
	ErrInvalidUTF8                          = errors.New("invalid utf8")
	ErrDataFieldWithNoPrecedingSizeField    = errors.New("data field with no preceding size field")
	ErrDataFieldWithNonNumericPreviousField = errors.New("data field with non-numeric previous field")
	ErrDataFieldWithNoTrailingSeparator     = errors.New("data field with no trailing separator")
	ErrMessageDoesNotContainMsgType         = errors.New("message does not contain msgtype")
	ErrMessageDoesNotContainFieldWithTag    = errors.New("message does not contain field with tag")
	ErrUnsupportedMsgType                   = errors.New("unsupported msgtype")
	ErrUnknownOrder                         = errors.New("unknown order")
	ErrOrderIndexOutOfRange                 = errors.New("order index out of range")
	ErrOrderBookAlreadyContainsOrderWithKey = errors.New("order book already contains order with key")
	ErrOrderBookDoesNotContainOrderWithKey  = errors.New("order book does not contain order with key")
	ErrInvalidOrderBookFields               = errors.New("invalid order book fields")
	ErrIO                                   = errors.New("io error")
)

// TagError reports ErrMessageDoesNotContainFieldWithTag for a specific tag.
type TagError struct {
	Tag uint32
}

func (e *TagError) Error() string {
	return fmt.Sprintf("message does not contain field with tag %d", e.Tag)
}

func (e *TagError) Unwrap() error {
	return ErrMessageDoesNotContainFieldWithTag
}

func MessageDoesNotContainFieldWithTag(tag uint32) error {
	return &TagError{Tag: tag}
}

// MsgTypeError reports ErrUnsupportedMsgType for a specific MsgType value.
type MsgTypeError struct {
	MsgType string
}

func (e *MsgTypeError) Error() string {
	return fmt.Sprintf("unsupported msgtype %q", e.MsgType)
}

func (e *MsgTypeError) Unwrap() error {
	return ErrUnsupportedMsgType
}

func UnsupportedMsgType(msgType string) error {
	return &MsgTypeError{MsgType: msgType}
}

// KeyError reports one of the three key sentinels
// (ErrOrderBookAlreadyContainsOrderWithKey,
// ErrOrderBookDoesNotContainOrderWithKey, ErrUnknownOrder) for a specific key.
type KeyError struct {
	Key     string
	sentinel error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%s: %s", e.sentinel, e.Key)
}

func (e *KeyError) Unwrap() error {
	return e.sentinel
}

func OrderBookAlreadyContainsOrderWithKey(key string) error {
	return &KeyError{Key: key, sentinel: ErrOrderBookAlreadyContainsOrderWithKey}
}

func OrderBookDoesNotContainOrderWithKey(key string) error {
	return &KeyError{Key: key, sentinel: ErrOrderBookDoesNotContainOrderWithKey}
}

func UnknownOrder(key string) error {
	return &KeyError{Key: key, sentinel: ErrUnknownOrder}
}
