// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package order_test

import (
	"testing"

	"github.com/crocofix/gocrocofix/dictionary/fix44"
	"github.com/crocofix/gocrocofix/message"
	"github.com/crocofix/gocrocofix/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fs = "\x01"

func decodeMessage(t *testing.T, text string) *message.Message {
	t.Helper()
	m := message.New(fix44.MustDictionary().Fields())
	result, err := m.Decode([]byte(text))
	require.NoError(t, err)
	require.True(t, result.Complete)
	require.Equal(t, len(text), result.Consumed)
	return m
}

func TestCreateKey(t *testing.T) {
	text := "8=FIX.4.4" + fs + "9=149" + fs + "35=D" + fs + "49=INITIATOR" + fs + "56=ACCEPTOR" + fs +
		"34=2752" + fs + "52=20200114-08:13:20.041" + fs + "11=61" + fs + "70=60" + fs + "100=AUTO" + fs +
		"55=BHP.AX" + fs + "54=1" + fs + "60=20200114-08:12:59.397" + fs + "38=10000" + fs + "40=2" + fs +
		"44=20" + fs + "59=1" + fs + "10=021" + fs
	msg := decodeMessage(t, text)

	o, err := order.New(msg)
	require.NoError(t, err)
	assert.Equal(t, "INITIATOR-ACCEPTOR-61", o.Key())
}

func TestKeyForMessage(t *testing.T) {
	text := "8=FIX.4.4" + fs + "9=149" + fs + "35=D" + fs + "49=INITIATOR" + fs + "56=ACCEPTOR" + fs +
		"34=2752" + fs + "52=20200114-08:13:20.041" + fs + "11=61" + fs + "70=60" + fs + "100=AUTO" + fs +
		"55=BHP.AX" + fs + "54=1" + fs + "60=20200114-08:12:59.397" + fs + "38=10000" + fs + "40=2" + fs +
		"44=20" + fs + "59=1" + fs + "10=021" + fs
	msg := decodeMessage(t, text)

	forward, err := order.KeyForMessage(msg, false)
	require.NoError(t, err)
	assert.Equal(t, "INITIATOR-ACCEPTOR-61", forward)

	reverse, err := order.KeyForMessage(msg, true)
	require.NoError(t, err)
	assert.Equal(t, "ACCEPTOR-INITIATOR-61", reverse)
}

func TestNewOrderSingle(t *testing.T) {
	text := "8=FIX.4.4" + fs + "9=149" + fs + "35=D" + fs + "49=INITIATOR" + fs + "56=ACCEPTOR" + fs +
		"34=2752" + fs + "52=20200114-08:13:20.041" + fs + "11=61" + fs + "70=60" + fs + "100=AUTO" + fs +
		"55=BHP.AX" + fs + "54=1" + fs + "60=20200114-08:12:59.397" + fs + "38=10000" + fs + "40=2" + fs +
		"44=20" + fs + "59=1" + fs + "10=021" + fs
	msg := decodeMessage(t, text)

	o, err := order.New(msg)
	require.NoError(t, err)

	side, err := o.Fields().Get(54)
	require.NoError(t, err)
	assert.Equal(t, "1", side.Value)

	qty, err := o.Fields().Get(38)
	require.NoError(t, err)
	assert.Equal(t, "10000", qty.Value)

	price, err := o.Fields().Get(44)
	require.NoError(t, err)
	assert.Equal(t, "20", price.Value)
}

func TestNewOrderSingleAndExecutionReports(t *testing.T) {
	orderSingle := "8=FIX.4.4" + fs + "9=149" + fs + "35=D" + fs + "49=INITIATOR" + fs + "56=ACCEPTOR" + fs +
		"34=2752" + fs + "52=20200114-08:13:20.041" + fs + "11=61" + fs + "70=60" + fs + "100=AUTO" + fs +
		"55=BHP.AX" + fs + "54=1" + fs + "60=20200114-08:12:59.397" + fs + "38=10000" + fs + "40=2" + fs +
		"44=20" + fs + "59=1" + fs + "10=021" + fs
	reportNew := "8=FIX.4.4" + fs + "9=173" + fs + "35=8" + fs + "49=ACCEPTOR" + fs + "56=INITIATOR" + fs +
		"34=718" + fs + "52=20200114-08:13:20.072" + fs + "39=0" + fs + "11=61" + fs + "37=INITIATOR-ACCEPTOR-61" + fs +
		"17=1" + fs + "150=0" + fs + "151=10000" + fs + "55=BHP.AX" + fs + "54=1" + fs + "38=10000" + fs + "44=20" + fs +
		"32=0" + fs + "31=0" + fs + "14=0" + fs + "6=0" + fs + "40=2" + fs + "10=021" + fs
	reportPartial := "8=FIX.4.4" + fs + "9=187" + fs + "35=8" + fs + "49=ACCEPTOR" + fs + "56=INITIATOR" + fs +
		"34=719" + fs + "52=20200114-08:13:20.072" + fs + "39=1" + fs + "11=61" + fs + "37=INITIATOR-ACCEPTOR-61" + fs +
		"17=2" + fs + "150=1" + fs + "151=893" + fs + "55=BHP.AX" + fs + "54=1" + fs + "38=10000" + fs + "44=20" + fs +
		"32=9107" + fs + "31=20" + fs + "14=9107" + fs + "6=20" + fs + "30=AUTO" + fs + "40=2" + fs + "10=081" + fs
	reportFilled := "8=FIX.4.4" + fs + "9=185" + fs + "35=8" + fs + "49=ACCEPTOR" + fs + "56=INITIATOR" + fs +
		"34=720" + fs + "52=20200114-08:13:20.072" + fs + "39=2" + fs + "11=61" + fs + "37=INITIATOR-ACCEPTOR-61" + fs +
		"17=3" + fs + "150=2" + fs + "151=0" + fs + "55=BHP.AX" + fs + "54=1" + fs + "38=10000" + fs + "44=20" + fs +
		"32=893" + fs + "31=20" + fs + "14=10000" + fs + "6=20" + fs + "30=AUTO" + fs + "40=2" + fs + "10=201" + fs

	o, err := order.New(decodeMessage(t, orderSingle))
	require.NoError(t, err)

	require.NoError(t, o.Update(decodeMessage(t, reportNew)))
	status, err := o.Fields().Get(fix44.OrdStatusTag)
	require.NoError(t, err)
	assert.Equal(t, fix44.OrdStatusNew().Value, status.Value)
	cumQty, _ := o.Fields().Get(14)
	assert.Equal(t, "0", cumQty.Value)
	avgPx, _ := o.Fields().Get(6)
	assert.Equal(t, "0", avgPx.Value)

	require.NoError(t, o.Update(decodeMessage(t, reportPartial)))
	status, err = o.Fields().Get(fix44.OrdStatusTag)
	require.NoError(t, err)
	assert.Equal(t, fix44.OrdStatusPartiallyFilled().Value, status.Value)
	cumQty, _ = o.Fields().Get(14)
	assert.Equal(t, "9107", cumQty.Value)
	avgPx, _ = o.Fields().Get(6)
	assert.Equal(t, "20", avgPx.Value)

	require.NoError(t, o.Update(decodeMessage(t, reportFilled)))
	status, err = o.Fields().Get(fix44.OrdStatusTag)
	require.NoError(t, err)
	assert.Equal(t, fix44.OrdStatusFilled().Value, status.Value)
	cumQty, _ = o.Fields().Get(14)
	assert.Equal(t, "10000", cumQty.Value)
	avgPx, _ = o.Fields().Get(6)
	assert.Equal(t, "20", avgPx.Value)
}

func TestUpdateOrderCancelReplaceRequest(t *testing.T) {
	orderSingle := "8=FIX.4.4" + fs + "9=147" + fs + "35=D" + fs + "49=INITIATOR" + fs + "56=ACCEPTOR" + fs +
		"34=2" + fs + "52=20200215-05:53:02.300" + fs + "11=7" + fs + "70=7" + fs + "100=AUTO" + fs +
		"55=WTF.AX" + fs + "54=1" + fs + "60=20200215-05:52:59.271" + fs + "38=20000" + fs + "40=2" + fs +
		"44=11.56" + fs + "59=1" + fs + "10=016" + fs
	reportNew := "8=FIX.4.4" + fs + "9=172" + fs + "35=8" + fs + "49=ACCEPTOR" + fs + "56=INITIATOR" + fs +
		"34=2" + fs + "52=20200215-05:53:02.473" + fs + "39=0" + fs + "11=7" + fs + "37=INITIATOR-ACCEPTOR-7" + fs +
		"17=1" + fs + "150=0" + fs + "151=20000" + fs + "55=WTF.AX" + fs + "54=1" + fs + "38=20000" + fs + "44=11.56" + fs +
		"32=0" + fs + "31=0" + fs + "14=0" + fs + "6=0" + fs + "40=2" + fs + "10=078" + fs
	replaceRequest := "8=FIX.4.4" + fs + "9=184" + fs + "35=G" + fs + "49=INITIATOR" + fs + "56=ACCEPTOR" + fs +
		"34=3" + fs + "52=20200215-05:53:22.465" + fs + "37=INITIATOR-ACCEPTOR-7" + fs + "41=7" + fs + "11=8" + fs +
		"70=7" + fs + "100=AUTO" + fs + "55=WTF.AX" + fs + "54=1" + fs + "60=20200215-05:53:08.895" + fs +
		"38=40000" + fs + "40=2" + fs + "44=11.58" + fs + "59=1" + fs + "58=Blah" + fs + "10=104" + fs
	reportPendingReplace := "8=FIX.4.4" + fs + "9=177" + fs + "35=8" + fs + "49=ACCEPTOR" + fs + "56=INITIATOR" + fs +
		"34=3" + fs + "52=20200215-05:53:22.481" + fs + "39=E" + fs + "11=8" + fs + "37=INITIATOR-ACCEPTOR-7" + fs +
		"17=2" + fs + "150=E" + fs + "151=20000" + fs + "41=7" + fs + "55=WTF.AX" + fs + "54=1" + fs + "38=20000" + fs +
		"44=11.56" + fs + "32=0" + fs + "31=0" + fs + "14=0" + fs + "6=0" + fs + "40=2" + fs + "10=091" + fs
	reportReplaced := "8=FIX.4.4" + fs + "9=173" + fs + "35=8" + fs + "49=ACCEPTOR" + fs + "56=INITIATOR" + fs +
		"34=4" + fs + "52=20200215-05:53:22.495" + fs + "39=5" + fs + "11=7" + fs + "37=INITIATOR-ACCEPTOR-8" + fs +
		"17=3" + fs + "150=5" + fs + "151=0" + fs + "41=7" + fs + "55=WTF.AX" + fs + "54=1" + fs + "38=40000" + fs +
		"44=11.58" + fs + "32=0" + fs + "31=0" + fs + "14=0" + fs + "6=0" + fs + "40=2" + fs + "10=128" + fs

	o, err := order.New(decodeMessage(t, orderSingle))
	require.NoError(t, err)

	qty, _ := o.Fields().Get(38)
	assert.Equal(t, "20000", qty.Value)
	price, _ := o.Fields().Get(44)
	assert.Equal(t, "11.56", price.Value)

	require.NoError(t, o.Update(decodeMessage(t, reportNew)))
	status, _ := o.Fields().Get(fix44.OrdStatusTag)
	assert.Equal(t, fix44.OrdStatusNew().Value, status.Value)

	require.NoError(t, o.Update(decodeMessage(t, replaceRequest)))
	status, _ = o.Fields().Get(fix44.OrdStatusTag)
	assert.Equal(t, fix44.OrdStatusPendingReplace().Value, status.Value)

	pendingQty, isPending := o.PendingValue(38)
	assert.True(t, isPending)
	assert.Equal(t, "40000", pendingQty)
	pendingPrice, isPending := o.PendingValue(44)
	assert.True(t, isPending)
	assert.Equal(t, "11.58", pendingPrice)
	_, isPending = o.PendingValue(fix44.SenderCompIDTag)
	assert.False(t, isPending, "identity fields never report a pending value")

	require.NoError(t, o.Update(decodeMessage(t, reportPendingReplace)))
	status, _ = o.Fields().Get(fix44.OrdStatusTag)
	assert.Equal(t, fix44.OrdStatusPendingReplace().Value, status.Value)

	require.NoError(t, o.Update(decodeMessage(t, reportReplaced)))
	status, _ = o.Fields().Get(fix44.OrdStatusTag)
	assert.Equal(t, fix44.OrdStatusReplaced().Value, status.Value)

	_, isPending = o.PendingValue(38)
	assert.False(t, isPending, "the replaced report's own OrderQty now matches the staged pending value")
}

func TestRollbackRestoresPreviousOrdStatusAndClearsPending(t *testing.T) {
	orderSingle := "8=FIX.4.4" + fs + "9=149" + fs + "35=D" + fs + "49=INITIATOR" + fs + "56=ACCEPTOR" + fs +
		"34=2752" + fs + "52=20200114-08:13:20.041" + fs + "11=61" + fs + "70=60" + fs + "100=AUTO" + fs +
		"55=BHP.AX" + fs + "54=1" + fs + "60=20200114-08:12:59.397" + fs + "38=10000" + fs + "40=2" + fs +
		"44=20" + fs + "59=1" + fs + "10=021" + fs
	cancelRequest := "8=FIX.4.4" + fs + "9=90" + fs + "35=F" + fs + "49=INITIATOR" + fs + "56=ACCEPTOR" + fs +
		"34=3" + fs + "52=20200114-08:13:30.000" + fs + "11=62" + fs + "41=61" + fs + "55=BHP.AX" + fs + "54=1" + fs + "10=021" + fs
	reportNew := "8=FIX.4.4" + fs + "9=173" + fs + "35=8" + fs + "49=ACCEPTOR" + fs + "56=INITIATOR" + fs +
		"34=718" + fs + "52=20200114-08:13:20.072" + fs + "39=0" + fs + "11=61" + fs + "37=INITIATOR-ACCEPTOR-61" + fs +
		"17=1" + fs + "150=0" + fs + "151=10000" + fs + "55=BHP.AX" + fs + "54=1" + fs + "38=10000" + fs + "44=20" + fs +
		"32=0" + fs + "31=0" + fs + "14=0" + fs + "6=0" + fs + "40=2" + fs + "10=021" + fs

	o, err := order.New(decodeMessage(t, orderSingle))
	require.NoError(t, err)
	// A NewOrderSingle carries no OrdStatus; the acknowledging execution
	// report sets it to New.
	require.NoError(t, o.Update(decodeMessage(t, reportNew)))

	status, _ := o.Fields().Get(fix44.OrdStatusTag)
	assert.Equal(t, fix44.OrdStatusNew().Value, status.Value)

	require.NoError(t, o.Update(decodeMessage(t, cancelRequest)))
	status, _ = o.Fields().Get(fix44.OrdStatusTag)
	assert.Equal(t, fix44.OrdStatusPendingCancel().Value, status.Value)
	assert.False(t, o.Pending().IsEmpty())

	o.Rollback()
	status, _ = o.Fields().Get(fix44.OrdStatusTag)
	assert.Equal(t, fix44.OrdStatusNew().Value, status.Value)
	assert.True(t, o.Pending().IsEmpty())
}
