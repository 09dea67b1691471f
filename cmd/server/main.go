package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tileforge/tileforge/internal/core/level"
	"github.com/tileforge/tileforge/internal/server"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "listen address")
	preset := flag.String("preset", "", "optional YAML preset used as the base generation config")
	flag.Parse()

	cfg := server.DefaultConfig()
	cfg.ListenAddr = *addr

	if *preset != "" {
		f, err := os.Open(*preset)
		if err != nil {
			fmt.Println("Error opening preset:", err)
			os.Exit(1)
		}
		base, err := level.LoadYAML(f)
		_ = f.Close()
		if err == nil {
			err = base.Validate()
		}
		if err != nil {
			fmt.Println("Error loading preset:", err)
			os.Exit(1)
		}
		cfg.BaseLevel = base
	}

	srv := server.New(cfg)

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	if err := srv.Start(); err != nil {
		fmt.Println("Error starting server:", err)
		os.Exit(1)
	}

	<-stopCh
	if err := srv.Stop(context.Background()); err != nil {
		fmt.Println("Error stopping server:", err)
	}
}
