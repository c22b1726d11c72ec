// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package itx

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/namechain/namechain-core/pkg/log"
)

var heartbeatMtc = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "namechain_heartbeat_status",
		Help: "Node heartbeat status.",
	},
	[]string{"status_type", "source"},
)

func init() {
	prometheus.MustRegister(heartbeatMtc)
}

// HeartbeatHandler is the handler to periodically log the system key metrics
type HeartbeatHandler struct {
	s *Server
}

// NewHeartbeatHandler instantiates a HeartbeatHandler instance
func NewHeartbeatHandler(s *Server) *HeartbeatHandler {
	return &HeartbeatHandler{s: s}
}

// Log executes the logging logic
func (h *HeartbeatHandler) Log() {
	height := h.s.chain.TipHeight()
	actPoolSize := h.s.ap.GetSize()
	actPoolCapacity := h.s.ap.GetCapacity()
	actPoolGasSize := h.s.ap.GetGasSize()
	actPoolGasCapacity := h.s.ap.GetGasCapacity()

	log.L().Info("Node status.",
		zap.Uint64("blockchainHeight", height),
		zap.Uint64("actpoolSize", actPoolSize),
		zap.Uint64("actpoolCapacity", actPoolCapacity),
		zap.Uint64("actpoolGasSize", actPoolGasSize),
		zap.Uint64("actpoolGasCapacity", actPoolGasCapacity),
		zap.Uint32("chainID", h.s.chain.ChainID()),
	)

	chainIDStr := strconv.FormatUint(uint64(h.s.chain.ChainID()), 10)
	heartbeatMtc.WithLabelValues("blockchainHeight", chainIDStr).Set(float64(height))
	heartbeatMtc.WithLabelValues("actpoolSize", chainIDStr).Set(float64(actPoolSize))
	heartbeatMtc.WithLabelValues("actpoolCapacity", chainIDStr).Set(float64(actPoolCapacity))
	heartbeatMtc.WithLabelValues("actpoolGasSize", chainIDStr).Set(float64(actPoolGasSize))
	heartbeatMtc.WithLabelValues("actpoolGasCapacity", chainIDStr).Set(float64(actPoolGasCapacity))
}
