// Package web exposes a player over http: json views of the skeleton and
// its live pose, playback actions and a websocket pose stream.
package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mogaika/rig2d/player"
)

var ServerPlayer *player.Player

func StartServer(addr string, p *player.Player, webPath string) error {
	ServerPlayer = p

	r := mux.NewRouter()
	r.HandleFunc("/json/skeleton", HandlerAjaxSkeleton)
	r.HandleFunc("/json/pose", HandlerAjaxPose)
	r.HandleFunc("/json/animations", HandlerAjaxAnimations)
	r.HandleFunc("/action/play/{anim}", HandlerActionPlay)
	r.HandleFunc("/action/queue/{anim}", HandlerActionQueue)
	r.HandleFunc("/action/stop", HandlerActionStop)
	r.HandleFunc("/dump/skeleton", HandlerDumpSkeleton)
	r.HandleFunc("/dump/gltf", HandlerDumpGltf)
	r.HandleFunc("/ws/pose", HandlerWsPose)

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(webPath)))

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
