// Command term 在终端中运行游戏（需要支持鼠标的终端）
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/clicktarget/pkg/config"
	"github.com/decker502/clicktarget/pkg/game"
	"github.com/decker502/clicktarget/pkg/terminal"
)

func main() {
	configPath := flag.String("config", config.DefaultGameConfigPath, "path to game tuning YAML")
	logPath := flag.String("log", "", "write logs to this file (terminal output is owned by the game)")
	flag.Parse()

	// 终端被游戏占用，日志只能写文件
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := config.LoadGameConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var best game.BestScoreStore
	if manager, err := gdata.Open(gdata.Config{AppName: "clicktarget"}); err == nil {
		best = game.NewBestScoreManager(manager)
	} else {
		log.Printf("[Term] gdata unavailable, best score kept in memory: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := terminal.New(screen, cfg, best, nil).Run(ctx); err != nil && err != context.Canceled {
		log.Printf("[Term] %v", err)
	}
}
