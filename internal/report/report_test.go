// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package report_test

import (
	"testing"

	"github.com/crocofix/gocrocofix/dictionary/fix44"
	"github.com/crocofix/gocrocofix/internal/report"
	"github.com/crocofix/gocrocofix/message"
	"github.com/crocofix/gocrocofix/order"
	"github.com/crocofix/gocrocofix/orderbook"
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
	return m
}

func TestParseColumnsDefaultsWhenEmpty(t *testing.T) {
	columns, err := report.ParseColumns(fix44.MustDictionary().Fields(), nil)
	require.NoError(t, err)
	assert.Equal(t, report.DefaultColumns, columns)
}

func TestParseColumnsAcceptsTagsAndNames(t *testing.T) {
	fields := fix44.MustDictionary().Fields()
	columns, err := report.ParseColumns(fields, []string{"54", "Price", " 38 "})
	require.NoError(t, err)
	assert.Equal(t, []uint32{54, 44, 38}, columns)
}

func TestParseColumnsRejectsUnknownNameOrTag(t *testing.T) {
	fields := fix44.MustDictionary().Fields()
	_, err := report.ParseColumns(fields, []string{"NotAField"})
	assert.Error(t, err)

	_, err = report.ParseColumns(fields, []string{"999999"})
	assert.Error(t, err)
}

func TestRenderResolvesNamesAndValues(t *testing.T) {
	text := "8=FIX.4.4" + fs + "9=149" + fs + "35=D" + fs + "49=INITIATOR" + fs + "56=ACCEPTOR" + fs +
		"34=2752" + fs + "52=20200114-08:13:20.041" + fs + "11=61" + fs + "70=60" + fs + "100=AUTO" + fs +
		"55=BHP.AX" + fs + "54=1" + fs + "60=20200114-08:12:59.397" + fs + "38=10000" + fs + "40=2" + fs +
		"44=20" + fs + "59=1" + fs + "10=021" + fs
	reportNew := "8=FIX.4.4" + fs + "9=173" + fs + "35=8" + fs + "49=ACCEPTOR" + fs + "56=INITIATOR" + fs +
		"34=718" + fs + "52=20200114-08:13:20.072" + fs + "39=0" + fs + "11=61" + fs + "37=INITIATOR-ACCEPTOR-61" + fs +
		"17=1" + fs + "150=0" + fs + "151=10000" + fs + "55=BHP.AX" + fs + "54=1" + fs + "38=10000" + fs + "44=20" + fs +
		"32=0" + fs + "31=0" + fs + "14=0" + fs + "6=0" + fs + "40=2" + fs + "10=021" + fs

	o, err := order.New(decodeMessage(t, text))
	require.NoError(t, err)
	book := orderbook.New()
	require.NoError(t, book.Process(decodeMessage(t, text)))
	// OrdStatus only appears once the execution report acknowledges the order.
	require.NoError(t, book.Process(decodeMessage(t, reportNew)))

	renderer := report.New(fix44.MustDictionary().Fields())
	columns, err := report.ParseColumns(fix44.MustDictionary().Fields(), []string{"Side", "OrdStatus"})
	require.NoError(t, err)

	rendered := renderer.Render(book, columns)
	assert.Contains(t, rendered, o.Key())
	assert.Contains(t, rendered, "Side=Buy")
	assert.Contains(t, rendered, "OrdStatus=New")
}

func TestRenderAppendsPendingSuffixForDivergentColumns(t *testing.T) {
	orderSingle := "8=FIX.4.4" + fs + "9=147" + fs + "35=D" + fs + "49=INITIATOR" + fs + "56=ACCEPTOR" + fs +
		"34=2" + fs + "52=20200215-05:53:02.300" + fs + "11=7" + fs + "70=7" + fs + "100=AUTO" + fs +
		"55=WTF.AX" + fs + "54=1" + fs + "60=20200215-05:52:59.271" + fs + "38=20000" + fs + "40=2" + fs +
		"44=11.56" + fs + "59=1" + fs + "10=016" + fs
	replaceRequest := "8=FIX.4.4" + fs + "9=184" + fs + "35=G" + fs + "49=INITIATOR" + fs + "56=ACCEPTOR" + fs +
		"34=3" + fs + "52=20200215-05:53:22.465" + fs + "37=INITIATOR-ACCEPTOR-7" + fs + "41=7" + fs + "11=8" + fs +
		"70=7" + fs + "100=AUTO" + fs + "55=WTF.AX" + fs + "54=1" + fs + "60=20200215-05:53:08.895" + fs +
		"38=40000" + fs + "40=2" + fs + "44=11.58" + fs + "59=1" + fs + "58=Blah" + fs + "10=104" + fs

	book := orderbook.New()
	require.NoError(t, book.Process(decodeMessage(t, orderSingle)))
	require.NoError(t, book.Process(decodeMessage(t, replaceRequest)))

	renderer := report.New(fix44.MustDictionary().Fields())
	columns, err := report.ParseColumns(fix44.MustDictionary().Fields(), []string{"OrderQty"})
	require.NoError(t, err)

	rendered := renderer.Render(book, columns)
	assert.Contains(t, rendered, "OrderQty=20000 (40000)")
}

func TestRenderFallsBackToRawTagsWithoutADictionary(t *testing.T) {
	text := "8=FIX.4.4" + fs + "9=149" + fs + "35=D" + fs + "49=INITIATOR" + fs + "56=ACCEPTOR" + fs +
		"34=2752" + fs + "52=20200114-08:13:20.041" + fs + "11=61" + fs + "70=60" + fs + "100=AUTO" + fs +
		"55=BHP.AX" + fs + "54=1" + fs + "60=20200114-08:12:59.397" + fs + "38=10000" + fs + "40=2" + fs +
		"44=20" + fs + "59=1" + fs + "10=021" + fs

	book := orderbook.New()
	require.NoError(t, book.Process(decodeMessage(t, text)))

	renderer := report.New(nil)
	rendered := renderer.Render(book, []uint32{54})
	assert.Contains(t, rendered, "54=1")
}
