// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package prometheustimer

import (
	"github.com/facebookgo/clock"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/namechain/namechain-core/pkg/log"
)

type (
	// TimerFactory defines a timer factory to generate timer
	TimerFactory struct {
		svcName       string
		defaultLabels []string
		vect          *prometheus.GaugeVec
		clk           clock.Clock
	}

	// Timer defines a timer to measure performance
	Timer struct {
		factory   *TimerFactory
		labels    []string
		startTime int64
	}
)

// New returns a new Timer
func New(svcName, tip string, labelNames, defaultLabels []string) (*TimerFactory, error) {
	if len(labelNames) != len(defaultLabels) {
		return nil, errors.New("label names and default labels have different size")
	}
	vect := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: svcName,
			Help: tip,
		},
		labelNames,
	)
	if err := prometheus.Register(vect); err != nil {
		return nil, err
	}

	return &TimerFactory{
		svcName:       svcName,
		defaultLabels: defaultLabels,
		vect:          vect,
		clk:           clock.New(),
	}, nil
}

// NewTimer returns a timer to measure the performance. A nil factory still
// hands out usable no-op timers so callers need not guard the metrics path.
func (factory *TimerFactory) NewTimer(labels ...string) *Timer {
	if factory == nil {
		return &Timer{}
	}
	if len(labels) > len(factory.defaultLabels) {
		log.L().Error(
			"Too many timer labels",
			zap.Any("labels", labels),
		)
		return &Timer{}
	}
	return &Timer{
		factory:   factory,
		labels:    labels,
		startTime: factory.clk.Now().UnixNano(),
	}
}

// End ends the timer
func (timer *Timer) End() {
	f := timer.factory
	if f == nil {
		return
	}
	f.log(float64(f.clk.Now().UnixNano()-timer.startTime), timer.labels...)
}

func (factory *TimerFactory) log(value float64, labels ...string) {
	factory.vect.WithLabelValues(
		append(labels, factory.defaultLabels[len(labels):]...)...,
	).Set(value)
}
