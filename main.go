package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nstehr/hexfront/agent"
	"github.com/nstehr/hexfront/config"
	"github.com/nstehr/hexfront/ipc"
)

const banner = `
██╗  ██╗███████╗██╗  ██╗███████╗██████╗  ██████╗ ███╗   ██╗████████╗
██║  ██║██╔════╝╚██╗██╔╝██╔════╝██╔══██╗██╔═══██╗████╗  ██║╚══██╔══╝
███████║█████╗   ╚███╔╝ █████╗  ██████╔╝██║   ██║██╔██╗ ██║   ██║
██╔══██║██╔══╝   ██╔██╗ ██╔══╝  ██╔══██╗██║   ██║██║╚██╗██║   ██║
██║  ██║███████╗██╔╝ ██╗██║     ██║  ██║╚██████╔╝██║ ╚████║   ██║
╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═╝     ╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═══╝   ╚═╝

Posture-Driven Hex Strategy AI`

func main() {
	socketPath := flag.String("socket", "/tmp/hexfront.sock", "unix domain socket to listen on")
	wsAddr := flag.String("ws", "", "optional websocket listen address, e.g. :8089 (path /ai)")
	configPath := flag.String("config", "", "YAML tuning file (defaults are embedded)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	slog.Info("starting hexfront")

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	// Each connection gets its own planner; build one now so a bad posture
	// table fails at startup.
	if _, err := agent.NewPlanner(cfg); err != nil {
		slog.Error("invalid config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(*socketPath); err != nil {
		slog.Error("failed to clean up socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", *socketPath)
	if err != nil {
		slog.Error("failed to listen on socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}
	defer listener.Close()
	defer os.Remove(*socketPath)

	slog.Info("listening on domain socket", "path", *socketPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted")
			go serve(ipc.NewConnection(ipc.NewStreamTransport(conn), nil), cfg)
		}
	}()

	if *wsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/ai", ipc.WebSocketHandler(func(c *ipc.Connection) { serve(c, cfg) }))
		srv := &http.Server{Addr: *wsAddr, Handler: mux}
		go func() {
			slog.Info("listening for websocket hosts", "addr", *wsAddr, "path", "/ai")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("websocket listener failed", "error", err)
				stop()
			}
		}()
		defer srv.Close()
	}

	<-ctx.Done()
	slog.Info("shutting down")
}

func serve(c *ipc.Connection, cfg *config.Config) {
	planner, err := agent.NewPlanner(cfg)
	if err != nil {
		slog.Error("failed to create planner", "error", err)
		return
	}
	a := agent.New(c, planner)
	a.Register()
	c.ReadLoop()
}
