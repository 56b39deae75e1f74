// Package web exposes a browser preview of a source folder: converted
// models as JSON summaries and binary glTF downloads.
package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"pesconv/model"
)

var (
	ServerDirectory string
	ServerLoader    model.Loader
	ServerGlob      string
)

func StartServer(addr string, loader model.Loader, dir string, glob string) error {
	ServerDirectory = dir
	ServerLoader = loader
	ServerGlob = glob

	r := mux.NewRouter()
	r.HandleFunc("/json/models", HandlerAjaxModels)
	r.HandleFunc("/json/models/{file}", HandlerAjaxModel)
	r.HandleFunc("/json/materials", HandlerAjaxMaterials)
	r.HandleFunc("/dump/models/{file}", HandlerDumpModel)
	r.HandleFunc("/dump/spew/{file}", HandlerSpewModel)

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
