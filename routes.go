package main

import (
	"net/http"
	"os"

	"github.com/fluidattacks/rocketchat-webhooks/metrics"
	"github.com/fluidattacks/rocketchat-webhooks/service"
	"github.com/fluidattacks/rocketchat-webhooks/service/hook"
	"github.com/fluidattacks/rocketchat-webhooks/service/root"
	"gopkg.in/DataDog/dd-trace-go.v1/contrib/gorilla/mux"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/ext"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

func setupRoutes(hookClient hook.Client) {
	http.Handle("/", newRouter(hookClient))
}

func newRouter(hookClient hook.Client) *mux.Router {
	r := mux.NewRouter(mux.WithServiceName("rocketchat-webhooks"))
	r.Use(dropTraceMiddleware())

	//
	r.HandleFunc("/h/{service-id}", metrics.WrapHandlerFunc(hookClient.HTTPHandler)).
		Methods("POST")
	//
	r.HandleFunc("/", metrics.WrapHandlerFunc(root.HTTPHandler)).
		Methods("GET")
	//
	r.Handle("/metrics", metrics.Handler()).
		Methods("GET")
	//
	r.NotFoundHandler = http.HandlerFunc(metrics.WrapHandlerFunc(routeNotFoundHandler))
	return r
}

func routeNotFoundHandler(w http.ResponseWriter, r *http.Request) {
	service.RespondWithNotFoundError(w, "Not Found")
}

func dropTraceMiddleware() func(http.Handler) http.Handler {
	header := os.Getenv("DROP_TRACE_HEADER")
	if header == "" {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(header) != "" {
				span, _ := tracer.StartSpanFromContext(r.Context(), "Drop trace")
				defer span.Finish()

				span.SetTag(ext.ManualDrop, true)
			}

			next.ServeHTTP(w, r)
		})
	}
}
