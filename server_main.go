//go:build server

// +build server

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mapframe/internal/websocket"
)

func main() {
	// 检查运行模式
	if mode := os.Getenv("MAPFRAME_MODE"); mode != "websocket" {
		fmt.Println("Error: MAPFRAME_MODE must be 'websocket'")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := NewApp()
	if err := app.Startup(ctx); err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}

	// 页面即全屏宿主：hello 之后才能解析能力
	bridge := websocket.NewBridge(app.view.doc, app.logger.Logger)
	wsServer := websocket.NewServer(app, bridge)
	app.SetEventHubBroadcaster(wsServer)

	port, err := wsServer.Start(ctx)
	if err != nil {
		fmt.Printf("Failed to start WebSocket server: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("MAPFRAME_WS_READY:port=%d\n", port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-bridge.Ready():
		app.attachFullscreen(bridge)
		<-sigCh
	case <-sigCh:
	}

	fmt.Println("Shutting down...")
	wsServer.Stop(ctx)
	app.Shutdown(ctx)
}
