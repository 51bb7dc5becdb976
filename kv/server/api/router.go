// Package api serves the HTTP status and region admin API of a txnkv store.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/talent-plan/txnkv/kv/config"
	"github.com/talent-plan/txnkv/kv/regionstore"
	"github.com/unrolled/render"
	"github.com/urfave/negroni"
)

const apiPrefix = "/api/v1"

// NewHandler returns the handler of the status API of the store served by rs.
func NewHandler(rs *regionstore.RegionStorage, conf *config.Config) http.Handler {
	rd := render.New(render.Options{IndentJSON: true})
	router := mux.NewRouter()

	statusHandler := newStatusHandler(rs, conf, rd, time.Now())
	router.HandleFunc("/status", statusHandler.Status).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	apiRouter := router.PathPrefix(apiPrefix).Subrouter()
	apiRouter.HandleFunc("/store", statusHandler.Store).Methods("GET")

	regionHandler := newRegionHandler(rs, rd)
	apiRouter.HandleFunc("/regions", regionHandler.List).Methods("GET")
	apiRouter.HandleFunc("/regions/{id}", regionHandler.Get).Methods("GET")
	apiRouter.HandleFunc("/regions/{id}/split", regionHandler.Split).Methods("POST")
	apiRouter.HandleFunc("/regions/{id}/transfer-leader", regionHandler.TransferLeader).Methods("POST")
	apiRouter.HandleFunc("/regions/{id}/peers", regionHandler.AddPeer).Methods("POST")
	apiRouter.HandleFunc("/regions/{id}/peers/{peer_id}", regionHandler.RemovePeer).Methods("DELETE")

	logHandler := newLogHandler(rd)
	apiRouter.HandleFunc("/log", logHandler.Handle).Methods("POST")

	n := negroni.New(negroni.NewRecovery(), negroni.NewLogger())
	n.UseHandler(router)
	return n
}
