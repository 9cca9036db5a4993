//go:build !darwin

package main

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

func enterWindowFullscreen(ctx context.Context) {
	runtime.WindowFullscreen(ctx)
}

func exitWindowFullscreen(ctx context.Context) {
	runtime.WindowUnfullscreen(ctx)
}

func isWindowFullscreen(ctx context.Context) bool {
	return runtime.WindowIsFullscreen(ctx)
}
