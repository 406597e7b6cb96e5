// Command mockserver is a throwaway upstream used by hand when exercising
// the reverse-proxy stage against a real HTTP server instead of an
// httptest.Server: it serves files from ./files and echoes back the method,
// path and selected request headers so proxy behavior (header forwarding,
// X-Forwarded-For, absolute-URI rewriting) is visible on the wire.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/omalloc/prox/tests/mockserver/middleware/logging"
)

var flagPort int

func init() {
	flag.IntVar(&flagPort, "p", 8000, "usage port")

	log.SetPrefix(fmt.Sprintf("mockserver(%d): ", os.Getpid()))
}

func main() {
	flag.Parse()

	mux := http.NewServeMux()

	mux.Handle("/path/to/", http.StripPrefix("/path/to", http.FileServer(http.Dir("./files"))))
	mux.Handle("/path/", http.StripPrefix("/path/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./files/1B.bin")
	})))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "%s %s\nHost: %s\nX-Forwarded-For: %s\n", r.Method, r.URL.String(), r.Host, r.Header.Get("X-Forwarded-For"))
	})

	addr := fmt.Sprintf(":%d", flagPort)

	log.Printf("HTTP server listener on %s", addr)
	if err := http.ListenAndServe(addr, logging.Logging(mux)); err != nil {
		return
	}
}
