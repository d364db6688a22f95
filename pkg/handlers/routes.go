package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"postsync/pkg/middleware"
)

func GenerateRoutes(ph PostHandler, registry *prometheus.Registry) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/posts", ph.List).Methods("GET")
	r.HandleFunc("/api/posts", ph.Add).Methods("POST")
	r.HandleFunc("/api/posts/ids", ph.ListIDs).Methods("GET")
	r.HandleFunc("/api/posts/refresh", ph.Refresh).Methods("POST")
	r.HandleFunc("/api/posts/sync", ph.AddRemote).Methods("POST")
	r.HandleFunc("/api/post/{POST_ID}", ph.Get).Methods("GET")
	r.HandleFunc("/api/post/{POST_ID}", ph.Update).Methods("PUT")
	r.HandleFunc("/api/post/{POST_ID}", ph.Delete).Methods("DELETE")
	r.HandleFunc("/api/post/{POST_ID}/reaction/{REACTION}", ph.React).Methods("POST")
	r.HandleFunc("/api/user/{USER_ID}/posts", ph.ListByUser).Methods("GET")
	r.HandleFunc("/api/status", ph.Status).Methods("GET")
	r.HandleFunc("/api/count", ph.IncreaseCount).Methods("POST")
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.NotFoundHandler = http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			jsonError(w, http.StatusNotFound, "unknown route")
		})
	return r
}

func PostProcess(r *mux.Router, logger *zap.SugaredLogger) http.Handler {
	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.Panic(logger))
	return r
}
