// Command server 通过浏览器（WebSocket）提供游戏
package main

import (
	"flag"
	"io"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/clicktarget/pkg/config"
	"github.com/decker502/clicktarget/pkg/game"
	"github.com/decker502/clicktarget/pkg/server"
)

func main() {
	addr := flag.String("addr", ":8080", "address to listen on (e.g., 127.0.0.1:8080)")
	configPath := flag.String("config", config.DefaultGameConfigPath, "path to game tuning YAML")
	tps := flag.Int("tps", 60, "game loop ticks per second per connection")
	persist := flag.Bool("persist", true, "persist the best score with gdata")
	verbose := flag.Bool("verbose", true, "enable logging")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	cfg, err := config.LoadGameConfig(*configPath)
	if err != nil {
		log.Fatalf("game config: %v", err)
	}

	var best game.BestScoreStore
	if *persist {
		manager, err := gdata.Open(gdata.Config{AppName: "clicktarget-server"})
		if err != nil {
			log.Printf("[Server] gdata unavailable, best score kept in memory: %v", err)
		} else {
			best = game.NewBestScoreManager(manager)
		}
	}

	if *tps <= 0 {
		*tps = 60
	}
	srv := server.NewServer(cfg, best, server.Options{
		TickInterval: time.Second / time.Duration(*tps),
	})
	log.Fatal(srv.ListenAndServe(*addr))
}
