// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package metrics exposes Prometheus counters for the messages fixcat
// processes, instrumenting the ingest path end to end.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	MessagesProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fixcat",
		Name:      "messages_processed_total",
		Help:      "Number of FIX messages successfully applied to the order book, by MsgType.",
	}, []string{"msg_type"})

	MessagesRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fixcat",
		Name:      "messages_rejected_total",
		Help:      "Number of FIX messages the order book refused to apply, by reason.",
	}, []string{"reason"})

	OrdersOpen = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fixcat",
		Name:      "orders_open",
		Help:      "Number of orders held in the order book, whatever their OrdStatus.",
	})
)

// Register adds the collectors above to reg. Call once at startup; a
// nil reg registers against the default Prometheus registry.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{MessagesProcessed, MessagesRejected, OrdersOpen} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
