package server

import (
	_ "embed"
	"log"
	"net/http"
)

/* ------------------------------ Embeds ------------------------------ */

//go:embed web/index.html
var htmlIndex []byte

//go:embed web/client.js
var jsClient []byte

/* ------------------------------- HTTP ------------------------------- */

// Handler 返回页面、脚本与 /ws 路由
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(htmlIndex)
	})
	mux.HandleFunc("/client.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		_, _ = w.Write(jsClient)
	})
	mux.HandleFunc("/ws", s.ServeWS)
	return mux
}

// ListenAndServe 在 addr 上启动 HTTP 服务
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("[Server] Listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}
