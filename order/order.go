// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package order implements the order state machine: a single resting order
// tracked across its New/Cancel/Replace lifecycle, including the tentative
// pending-fields staging area a cancel or cancel-replace request occupies
// while its broker reply is outstanding.
package order

import (
	"fmt"

	"github.com/crocofix/gocrocofix/dictionary/fix44"
	"github.com/crocofix/gocrocofix/field"
	"github.com/crocofix/gocrocofix/internal/fixerr"
	"github.com/crocofix/gocrocofix/message"
)

// Order is a committed view of an order's fields plus the messages that
// produced it, and a tentative pendingFields view occupied between sending
// a cancel/cancel-replace request and receiving its execution report.
type Order struct {
	messages []*message.Message
	fields   field.Collection
	pending  field.Collection

	key           string
	beginString   string
	senderCompID  string
	targetCompID  string
	clOrdID       field.Field
	origClOrdID   *field.Field
	prevOrdStatus *field.Field
	newClOrdID    *field.Field
}

// identityFields are copied into an order once from its originating
// message and never overwritten by subsequent updates: they define the
// order's identity, not its current state.
var identityFields = map[uint32]bool{
	fix44.BeginStringTag:  true,
	fix44.SenderCompIDTag: true,
	fix44.TargetCompIDTag: true,
	fix44.ClOrdIDTag:      true,
	fix44.OrigClOrdIDTag:  true,
}

// IsIdentityField reports whether tag is one of the fields that identifies
// an order rather than describes its state.
func IsIdentityField(tag uint32) bool {
	return identityFields[tag]
}

// New builds an Order from the message that opened it (ordinarily a
// NewOrderSingle).
func New(msg *message.Message) (*Order, error) {
	key, err := KeyForMessage(msg, false)
	if err != nil {
		return nil, err
	}

	beginString, err := msg.Get(fix44.BeginStringTag)
	if err != nil {
		return nil, err
	}
	senderCompID, err := msg.Get(fix44.SenderCompIDTag)
	if err != nil {
		return nil, err
	}
	targetCompID, err := msg.Get(fix44.TargetCompIDTag)
	if err != nil {
		return nil, err
	}
	clOrdID, err := msg.Get(fix44.ClOrdIDTag)
	if err != nil {
		return nil, err
	}

	o := &Order{
		key:          key,
		beginString:  beginString.Value,
		senderCompID: senderCompID.Value,
		targetCompID: targetCompID.Value,
		clOrdID:      clOrdID,
	}
	if origClOrdID, ok := msg.TryGet(fix44.OrigClOrdIDTag); ok {
		o.origClOrdID = &origClOrdID
	}
	for _, f := range msg.All() {
		o.fields.Push(f)
	}
	o.messages = append(o.messages, msg)
	return o, nil
}

func createKey(senderCompID, targetCompID, clOrdID string) string {
	return fmt.Sprintf("%s-%s-%s", senderCompID, targetCompID, clOrdID)
}

// KeyForMessage derives the order book key a message belongs under:
// SenderCompID-TargetCompID-OrigClOrdID when the message carries an
// OrigClOrdID, SenderCompID-TargetCompID-ClOrdID otherwise, for requests and
// reports alike. reverseCompIDs swaps Sender and Target, for messages coming
// back from the broker (execution reports, cancel rejects), whose
// Sender/Target are the broker's view.
func KeyForMessage(msg *message.Message, reverseCompIDs bool) (string, error) {
	senderCompID, err := msg.Get(fix44.SenderCompIDTag)
	if err != nil {
		return "", err
	}
	targetCompID, err := msg.Get(fix44.TargetCompIDTag)
	if err != nil {
		return "", err
	}

	var clOrdID string
	if f, ok := msg.TryGet(fix44.OrigClOrdIDTag); ok {
		clOrdID = f.Value
	} else {
		f, err := msg.Get(fix44.ClOrdIDTag)
		if err != nil {
			return "", err
		}
		clOrdID = f.Value
	}

	if reverseCompIDs {
		return createKey(targetCompID.Value, senderCompID.Value, clOrdID), nil
	}
	return createKey(senderCompID.Value, targetCompID.Value, clOrdID), nil
}

// Key returns the order book key this order is stored under.
func (o *Order) Key() string { return o.key }

// Messages returns every message this order has observed, in arrival order.
func (o *Order) Messages() []*message.Message { return o.messages }

// Fields returns the order's committed field view.
func (o *Order) Fields() *field.Collection { return &o.fields }

// Pending returns the order's tentative field view, populated while a
// cancel or cancel-replace request is outstanding.
func (o *Order) Pending() *field.Collection { return &o.pending }

// PendingValue reports the pending_fields value for tag if a cancel or
// cancel-replace request has staged a value that diverges from what is
// currently committed. isPending is false when there is no pending value,
// when the pending value is identical to the committed one, or when tag
// identifies the order rather than describes its state — identity fields
// never show as pending.
func (o *Order) PendingValue(tag uint32) (value string, isPending bool) {
	if IsIdentityField(tag) {
		return "", false
	}
	pending, ok := o.pending.TryGet(tag)
	if !ok {
		return "", false
	}
	if committed, ok := o.fields.TryGet(tag); ok && committed.Value == pending.Value {
		return "", false
	}
	return pending.Value, true
}

func (o *Order) updateFields(dst *field.Collection, src *field.Collection) {
	for _, f := range src.All() {
		if !IsIdentityField(f.Tag) {
			dst.Set(f, field.ReplaceFirstOrAppend)
		}
	}
}

// Update applies msg to the order. OrderCancelRequest and
// OrderCancelReplaceRequest stage their fields in Pending and set the
// committed OrdStatus to PendingCancel/PendingReplace, leaving every other
// committed field as it was; every other message type (principally
// execution reports) is applied directly to the committed fields.
func (o *Order) Update(msg *message.Message) error {
	o.messages = append(o.messages, msg)

	msgType, err := msg.MsgType()
	if err != nil {
		return fixerr.ErrMessageDoesNotContainMsgType
	}

	switch msgType {
	case fix44.MsgTypeOrderCancelReplaceRequest().Value:
		if prev, ok := o.fields.TryGet(fix44.OrdStatusTag); ok {
			o.prevOrdStatus = &prev
		}
		clOrdID, err := msg.Get(fix44.ClOrdIDTag)
		if err != nil {
			return err
		}
		o.newClOrdID = &clOrdID
		o.updateFields(&o.pending, &msg.Collection)
		o.fields.Set(field.FromFieldValue(fix44.OrdStatusPendingReplace()), field.ReplaceFirstOrAppend)
		return nil

	case fix44.MsgTypeOrderCancelRequest().Value:
		if prev, ok := o.fields.TryGet(fix44.OrdStatusTag); ok {
			o.prevOrdStatus = &prev
		}
		o.updateFields(&o.pending, &msg.Collection)
		o.fields.Set(field.FromFieldValue(fix44.OrdStatusPendingCancel()), field.ReplaceFirstOrAppend)
		return nil
	}

	o.updateFields(&o.fields, &msg.Collection)
	return nil
}

// Rollback discards the pending fields and restores the OrdStatus that was
// in effect before the pending cancel/replace was staged. Used when a
// broker rejects the request.
func (o *Order) Rollback() {
	o.pending.Clear()
	if o.prevOrdStatus != nil {
		o.fields.Set(*o.prevOrdStatus, field.ReplaceFirst)
		o.prevOrdStatus = nil
	}
}

// Commit folds the pending fields into the committed view and clears the
// staging area. Used when a broker accepts the request.
func (o *Order) Commit() {
	pending := o.pending
	o.updateFields(&o.fields, &pending)
	o.pending.Clear()
}

// Replace implements the cancel-replace "fork": it clones the order,
// applies executionReport (a Replaced execution report) to the clone and
// commits it, then rolls back the original to its pre-replace state and
// renames the clone's identity so it becomes the new resting order. The
// original order is left in the caller's book with OrdStatus=Replaced; the
// returned Order is the live replacement and must be inserted under its own
// key by the caller.
func (o *Order) Replace(executionReport *message.Message) (*Order, error) {
	replacement := o.clone()
	if err := replacement.Update(executionReport); err != nil {
		return nil, err
	}
	replacement.Commit()
	o.Rollback()

	if o.newClOrdID != nil {
		replacement.fields.Set(*o.newClOrdID, field.ReplaceFirstOrAppend)
		replacement.fields.Set(field.FromString(fix44.OrigClOrdIDTag, replacement.clOrdID.Value), field.ReplaceFirstOrAppend)
		origClOrdID := replacement.clOrdID
		replacement.origClOrdID = &origClOrdID
		replacement.clOrdID = *o.newClOrdID
	} else if clOrdID, ok := executionReport.TryGet(fix44.ClOrdIDTag); ok {
		replacement.fields.Set(clOrdID, field.ReplaceFirstOrAppend)
		replacement.fields.Set(field.FromString(fix44.OrigClOrdIDTag, replacement.clOrdID.Value), field.ReplaceFirstOrAppend)
		origClOrdID := replacement.clOrdID
		replacement.origClOrdID = &origClOrdID
		replacement.clOrdID = clOrdID
	}

	replacement.key = createKey(replacement.senderCompID, replacement.targetCompID, replacement.clOrdID.Value)
	replacement.fields.Set(field.FromFieldValue(fix44.OrdStatusNew()), field.ReplaceFirstOrAppend)
	o.fields.Set(field.FromFieldValue(fix44.OrdStatusReplaced()), field.ReplaceFirstOrAppend)

	o.messages = append(o.messages, executionReport)

	return replacement, nil
}

func (o *Order) clone() *Order {
	c := &Order{
		key:          o.key,
		beginString:  o.beginString,
		senderCompID: o.senderCompID,
		targetCompID: o.targetCompID,
		clOrdID:      o.clOrdID,
		fields:       o.fields.Clone(),
		pending:      o.pending.Clone(),
	}
	c.messages = append(c.messages, o.messages...)
	if o.origClOrdID != nil {
		origClOrdID := *o.origClOrdID
		c.origClOrdID = &origClOrdID
	}
	if o.prevOrdStatus != nil {
		prev := *o.prevOrdStatus
		c.prevOrdStatus = &prev
	}
	if o.newClOrdID != nil {
		newID := *o.newClOrdID
		c.newClOrdID = &newID
	}
	return c
}
