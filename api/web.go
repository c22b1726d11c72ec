// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package api

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/pkg/log"
	"github.com/namechain/namechain-core/pkg/tracer"
)

var _webMtc = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "namechain_api_requests_total",
	Help: "api requests served, by route and result.",
}, []string{"route", "result"})

func init() {
	prometheus.MustRegister(_webMtc)
}

// webHandler serves the JSON HTTP routes over the core service
type webHandler struct {
	core CoreService
	sem  *semaphore.Weighted
}

// newWebHandler creates a handler with all the routes mounted
func newWebHandler(core CoreService, maxConcurrency int64) http.Handler {
	handler := &webHandler{
		core: core,
		sem:  semaphore.NewWeighted(maxConcurrency),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/actions", handler.route("sendAction", handler.sendAction))
	mux.HandleFunc("GET /v1/actions/{hash}/receipt", handler.route("receipt", handler.receipt))
	mux.HandleFunc("GET /v1/registry", handler.route("registryMeta", handler.registryMeta))
	mux.HandleFunc("GET /v1/registry/names", handler.route("registryEntries", handler.registryEntries))
	mux.HandleFunc("GET /v1/registry/names/{index}", handler.route("registryEntry", handler.registryEntry))
	mux.HandleFunc("GET /v1/registry/duplicate", handler.route("isDuplicate", handler.isDuplicate))
	mux.HandleFunc("GET /v1/accounts/{address}", handler.route("account", handler.account))
	mux.HandleFunc("GET /v1/chain", handler.route("chainMeta", handler.chainMeta))
	return mux
}

// route wraps one handler with the concurrency cap, a tracing span and the
// request counter
func (handler *webHandler) route(name string, fn func(context.Context, http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx, span := tracer.NewSpan(req.Context(), "web."+name)
		defer span.End()
		acquireCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := handler.sem.Acquire(acquireCtx, 1); err != nil {
			_webMtc.WithLabelValues(name, "throttled").Inc()
			w.WriteHeader(http.StatusTooManyRequests)
			log.Logger("api").Warn("fail to acquire semaphore", zap.Error(err))
			return
		}
		defer handler.sem.Release(1)
		_webMtc.WithLabelValues(name, "served").Inc()
		fn(ctx, w, req)
	}
}

func (handler *webHandler) sendAction(ctx context.Context, w http.ResponseWriter, req *http.Request) {
	var body SendActionRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "failed to parse the request body"))
		return
	}
	raw, err := hex.DecodeString(body.Action)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "action is not a hex string"))
		return
	}
	selp, err := (&action.Deserializer{}).SealedEnvelopeFromBytes(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "failed to decode the action"))
		return
	}
	actHash, err := handler.core.SendAction(ctx, selp)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, &SendActionResponse{ActionHash: actHash})
}

func (handler *webHandler) receipt(_ context.Context, w http.ResponseWriter, req *http.Request) {
	raw, err := hex.DecodeString(req.PathValue("hash"))
	if err != nil || len(raw) != len(hash.ZeroHash256) {
		writeError(w, http.StatusBadRequest, errors.New("invalid action hash"))
		return
	}
	receipt, err := handler.core.Receipt(hash.BytesToHash256(raw))
	if err != nil {
		if errors.Cause(err) == ErrActionNotFound {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, receiptMeta(receipt))
}

func (handler *webHandler) registryMeta(_ context.Context, w http.ResponseWriter, _ *http.Request) {
	meta, err := handler.core.RegistryMeta()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, meta)
}

func (handler *webHandler) registryEntries(_ context.Context, w http.ResponseWriter, req *http.Request) {
	var (
		query  = req.URL.Query()
		offset uint64
		limit  uint64
		err    error
	)
	if v := query.Get("offset"); v != "" {
		if offset, err = strconv.ParseUint(v, 10, 64); err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid offset"))
			return
		}
	}
	if v := query.Get("limit"); v != "" {
		if limit, err = strconv.ParseUint(v, 10, 64); err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid limit"))
			return
		}
	}
	resp, err := handler.core.RegistryEntries(offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, resp)
}

func (handler *webHandler) registryEntry(_ context.Context, w http.ResponseWriter, req *http.Request) {
	index, err := strconv.ParseUint(req.PathValue("index"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid registry index"))
		return
	}
	entry, err := handler.core.RegistryEntry(index)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, entry)
}

func (handler *webHandler) isDuplicate(_ context.Context, w http.ResponseWriter, req *http.Request) {
	name := req.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing name"))
		return
	}
	dup, err := handler.core.IsDuplicate(name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, &DuplicateResponse{Name: name, Duplicate: dup})
}

func (handler *webHandler) account(_ context.Context, w http.ResponseWriter, req *http.Request) {
	addr, err := address.FromString(req.PathValue("address"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "invalid address"))
		return
	}
	meta, err := handler.core.Account(addr)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, meta)
}

func (handler *webHandler) chainMeta(_ context.Context, w http.ResponseWriter, _ *http.Request) {
	meta, err := handler.core.ChainMeta()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, meta)
}

func writeJSON(w http.ResponseWriter, resp interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	raw, err := json.Marshal(resp)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Logger("api").Error("fail to marshal the response.", zap.Error(err))
		return
	}
	if _, err := w.Write(raw); err != nil {
		log.Logger("api").Warn("fail to write the response.", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(&ErrorResponse{Error: err.Error()}); err != nil {
		log.Logger("api").Warn("fail to write the error response.", zap.Error(err))
	}
}
