// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package orderbook tracks a collection of orders keyed by
// SenderCompID-TargetCompID-ClOrdID, dispatching decoded messages to the
// order state machine that owns each key.
package orderbook

import (
	"fmt"

	"github.com/crocofix/gocrocofix/dictionary/fix44"
	"github.com/crocofix/gocrocofix/internal/fixerr"
	"github.com/crocofix/gocrocofix/message"
	"github.com/crocofix/gocrocofix/order"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the pair of Prometheus counter vectors Process increments when
// enabled via OrderBookOptions: Processed labeled by MsgType on success,
// Rejected labeled by the Go error type name on failure. The caller owns
// registering and scraping them; the book only increments.
type Metrics struct {
	Processed *prometheus.CounterVec
	Rejected  *prometheus.CounterVec
}

// OrderBookOptions configures optional OrderBook behavior. The zero value
// disables every option, so the core stays usable with zero Prometheus
// dependency for callers who don't want it.
type OrderBookOptions struct {
	Metrics *Metrics
}

// OrderBook is keyed by SenderCompID-TargetCompID-ClOrdID (or OrigClOrdID
// once a cancel/replace is in flight) and dispatches messages to the Order
// that owns each key by MsgType.
type OrderBook struct {
	orders   map[string]*order.Order
	keyOrder []string
	metrics  *Metrics
}

// New returns an empty OrderBook. Passing an OrderBookOptions with a
// non-nil Metrics turns on the optional throughput counters described on
// Process; omitting it (or passing the zero value) leaves metrics off.
func New(opts ...OrderBookOptions) *OrderBook {
	b := &OrderBook{orders: make(map[string]*order.Order)}
	if len(opts) > 0 {
		b.metrics = opts[0].Metrics
	}
	return b
}

// Clear removes every order from the book.
func (b *OrderBook) Clear() {
	b.orders = make(map[string]*order.Order)
	b.keyOrder = nil
}

// Len returns the number of orders currently in the book.
func (b *OrderBook) Len() int {
	return len(b.keyOrder)
}

// Orders returns every order in the book, in the order their keys were
// first inserted.
func (b *OrderBook) Orders() []*order.Order {
	out := make([]*order.Order, 0, len(b.keyOrder))
	for _, key := range b.keyOrder {
		out = append(out, b.orders[key])
	}
	return out
}

// Order returns the order stored under key, or
// OrderBookDoesNotContainOrderWithKey if none exists.
func (b *OrderBook) Order(key string) (*order.Order, error) {
	o, ok := b.orders[key]
	if !ok {
		return nil, fixerr.OrderBookDoesNotContainOrderWithKey(key)
	}
	return o, nil
}

func (b *OrderBook) insert(o *order.Order) error {
	if _, exists := b.orders[o.Key()]; exists {
		return fixerr.OrderBookAlreadyContainsOrderWithKey(o.Key())
	}
	b.orders[o.Key()] = o
	b.keyOrder = append(b.keyOrder, o.Key())
	return nil
}

// Process dispatches msg by MsgType to the order it identifies: a
// NewOrderSingle opens a new order, an ExecutionReport updates the existing
// order (forking it for a Replaced execution report), an OrderCancelReject
// rolls back the existing order's pending request, and an
// OrderCancelRequest/OrderCancelReplaceRequest stages the pending
// cancel/replace on the existing order. Messages with no MsgType or an
// unsupported one are rejected; the caller decides whether to log and
// continue or treat it as fatal. When Metrics is enabled (see
// OrderBookOptions), a success increments Processed labeled by msgType and
// a failure increments Rejected labeled by the error's Go type.
func (b *OrderBook) Process(msg *message.Message) error {
	msgType, err := msg.MsgType()
	if err != nil {
		b.reject(err)
		return fixerr.ErrMessageDoesNotContainMsgType
	}

	switch msgType {
	case fix44.MsgTypeNewOrderSingle().Value:
		err = b.processNewOrderSingle(msg)
	case fix44.MsgTypeExecutionReport().Value:
		err = b.processExecutionReport(msg)
	case fix44.MsgTypeOrderCancelRequest().Value:
		err = b.processOrderCancelRequest(msg)
	case fix44.MsgTypeOrderCancelReplaceRequest().Value:
		err = b.processOrderCancelReplaceRequest(msg)
	case fix44.MsgTypeOrderCancelReject().Value:
		err = b.processOrderCancelReject(msg)
	default:
		err = fixerr.UnsupportedMsgType(msgType)
	}

	if err != nil {
		b.reject(err)
		return err
	}
	if b.metrics != nil {
		b.metrics.Processed.WithLabelValues(msgType).Inc()
	}
	return nil
}

func (b *OrderBook) reject(err error) {
	if b.metrics != nil {
		b.metrics.Rejected.WithLabelValues(fmt.Sprintf("%T", err)).Inc()
	}
}

func (b *OrderBook) processNewOrderSingle(msg *message.Message) error {
	o, err := order.New(msg)
	if err != nil {
		return err
	}
	return b.insert(o)
}

func (b *OrderBook) processExecutionReport(msg *message.Message) error {
	key, err := order.KeyForMessage(msg, true)
	if err != nil {
		return err
	}

	o, ok := b.orders[key]
	if !ok {
		return fixerr.OrderBookDoesNotContainOrderWithKey(key)
	}

	if execType, ok := msg.TryGet(fix44.ExecTypeTag); ok && execType.Value == fix44.ExecTypeReplaced().Value {
		replacement, err := o.Replace(msg)
		if err != nil {
			return err
		}
		return b.insert(replacement)
	}

	return o.Update(msg)
}

func (b *OrderBook) processOrderCancelRequest(msg *message.Message) error {
	key, err := order.KeyForMessage(msg, false)
	if err != nil {
		return err
	}
	o, ok := b.orders[key]
	if !ok {
		return fixerr.OrderBookDoesNotContainOrderWithKey(key)
	}
	return o.Update(msg)
}

func (b *OrderBook) processOrderCancelReplaceRequest(msg *message.Message) error {
	key, err := order.KeyForMessage(msg, false)
	if err != nil {
		return err
	}
	o, ok := b.orders[key]
	if !ok {
		return fixerr.OrderBookDoesNotContainOrderWithKey(key)
	}
	return o.Update(msg)
}

func (b *OrderBook) processOrderCancelReject(msg *message.Message) error {
	key, err := order.KeyForMessage(msg, true)
	if err != nil {
		return err
	}
	o, ok := b.orders[key]
	if !ok {
		return fixerr.OrderBookDoesNotContainOrderWithKey(key)
	}
	o.Rollback()
	return nil
}
