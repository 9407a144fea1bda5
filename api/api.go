// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/lucreledger/lucre/api/accounts"
	"github.com/lucreledger/lucre/api/state"
	"github.com/lucreledger/lucre/api/transactions"
	"github.com/lucreledger/lucre/metrics"
	"github.com/lucreledger/lucre/runtime"
)

// Options for the api handler.
type Options struct {
	AllowedOrigins string
	EnableMetrics  bool
}

// New return api router
func New(rt *runtime.Runtime, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()
	accounts.New(rt).Mount(router, "/accounts")
	transactions.New(rt).Mount(router, "/transactions")
	state.New(rt).Mount(router, "/state")
	if opts.EnableMetrics {
		router.Path("/metrics").Handler(metrics.HTTPHandler())
	}

	handler := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(router)
	return metricsMiddleware(handler).ServeHTTP
}

func metricsMiddleware(next http.Handler) http.Handler {
	counter := metrics.Counter("api_request_count")
	inflight := metrics.Gauge("api_inflight_request_count")
	var active int64
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.Add(1)
		inflight.Set(atomic.AddInt64(&active, 1))
		defer func() { inflight.Set(atomic.AddInt64(&active, -1)) }()
		next.ServeHTTP(w, r)
	})
}
