// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// fixcat reads FIX messages from stdin, one line at a time, decodes each
// one and prints it; with -orders it also applies each message to an order
// book and prints an order book report after it. A line may carry an arbitrary
// prefix (a log sink's own timestamp, PID, whatever) before the FIX message
// itself: fixcat searches for the message's own start rather than assuming
// the line begins with one.
package main

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/crocofix/gocrocofix/dictionary"
	"github.com/crocofix/gocrocofix/dictionary/fix42"
	"github.com/crocofix/gocrocofix/dictionary/fix44"
	"github.com/crocofix/gocrocofix/dictionary/fix50sp2"
	"github.com/crocofix/gocrocofix/internal/config"
	"github.com/crocofix/gocrocofix/internal/metrics"
	"github.com/crocofix/gocrocofix/internal/report"
	"github.com/crocofix/gocrocofix/internal/xlog"
	"github.com/crocofix/gocrocofix/message"
	"github.com/crocofix/gocrocofix/orderbook"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func dictionaryFor(version string) (*dictionary.Orchestration, error) {
	switch version {
	case "FIX.4.2":
		return fix42.Dictionary()
	case "FIX.4.4":
		return fix44.Dictionary()
	case "FIX.5.0SP2":
		return fix50sp2.Dictionary()
	default:
		return nil, fmt.Errorf("fixcat: unknown dictionary version %q", version)
	}
}

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	xlog.SetCorrelationID(uuid.NewString())
	xlog.SetLevel(cfg.LogLevel)
	xlog.SetDateTime(cfg.LogDateTime)

	dict, err := dictionaryFor(cfg.Version)
	if err != nil {
		xlog.Fatalf("%s", err)
	}

	columns, err := report.ParseColumns(dict.Fields(), cfg.FieldSpecs())
	if err != nil {
		xlog.Fatalf("%s", err)
	}

	if err := metrics.Register(nil); err != nil {
		xlog.Fatalf("registering metrics: %s", err)
	}
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	book := orderbook.New(orderbook.OrderBookOptions{
		Metrics: &orderbook.Metrics{
			Processed: metrics.MessagesProcessed,
			Rejected:  metrics.MessagesRejected,
		},
	})
	renderer := report.New(dict.Fields())
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	run(os.Stdin, w, dict, book, renderer, columns, cfg)
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	xlog.Infof("serving metrics on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		xlog.Errorf("metrics server stopped: %s", err)
	}
}

// fixMessagePrefix is the substring every FIX message starts with. A line
// is treated as a message once this substring turns up anywhere in it, so
// a log sink's own prefix never needs stripping by the caller.
const fixMessagePrefix = "8=FIX"

// run reads r one line at a time, decoding and printing each FIX message it
// finds, and applying it to book and reporting when cfg.Orders is set. A
// line with no "8=FIX"
// substring is not a message: it is echoed verbatim when cfg.Mix is set,
// and otherwise dropped.
func run(r io.Reader, w *bufio.Writer, dict *dictionary.Orchestration, book *orderbook.OrderBook, renderer *report.Renderer, columns []uint32, cfg *config.Config) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		handleLine(scanner.Text(), w, dict, book, renderer, columns, cfg)
	}
	if err := scanner.Err(); err != nil {
		xlog.Errorf("reading input: %s", err)
	}
}

func handleLine(line string, w *bufio.Writer, dict *dictionary.Orchestration, book *orderbook.OrderBook, renderer *report.Renderer, columns []uint32, cfg *config.Config) {
	start := strings.Index(line, fixMessagePrefix)
	if start < 0 {
		if cfg.Mix {
			fmt.Fprintln(w, line)
			w.Flush()
		}
		return
	}

	msg := message.New(dict.Fields())
	result, err := msg.Decode([]byte(line[start:]))
	if err != nil {
		xlog.Errorf("decode error: %s", err)
		return
	}
	if !result.Complete {
		xlog.Errorf("decode error: truncated message")
		return
	}

	if !cfg.Admin && msg.IsAdmin(dict.Messages()) {
		return
	}
	fmt.Fprintln(w, msg.String())

	if cfg.Orders {
		msgType, _ := msg.MsgType()
		if err := book.Process(msg); err != nil {
			xlog.Warnf("rejected %s: %s", msgType, err)
		} else {
			metrics.OrdersOpen.Set(float64(book.Len()))
			fmt.Fprint(w, renderer.Render(book, columns))
		}
	}
	w.Flush()
}
