package httpapi

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter mounts the API routes and the optional metrics endpoint, wrapped
// in instrument when it is non-nil.
func NewRouter(handler *Handler, metrics http.Handler, instrument func(http.Handler) http.Handler) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	if metrics != nil {
		r.Handle("/metrics", metrics).Methods("GET")
	}

	var h http.Handler = r
	if instrument != nil {
		h = instrument(h)
	}
	return cors.Default().Handler(h)
}

func StartServer(addr string, handler http.Handler) {
	log.Printf("Restaurant Service starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
