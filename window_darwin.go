//go:build darwin

package main

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa

#import <Cocoa/Cocoa.h>

static int keyWindowIsFullscreen() {
    NSWindow *window = [[NSApplication sharedApplication] keyWindow];
    if (window == nil) {
        return 0;
    }
    return ([window styleMask] & NSWindowStyleMaskFullScreen) != 0 ? 1 : 0;
}

// Put the key window into (on != 0) or out of native fullscreen.
// toggleFullScreen flips, so only call it when the state differs.
void SetNativeFullscreen(int on) {
    dispatch_async(dispatch_get_main_queue(), ^{
        NSWindow *window = [[NSApplication sharedApplication] keyWindow];
        if (window == nil) {
            return;
        }
        NSWindowCollectionBehavior behavior = [window collectionBehavior];
        if (!(behavior & NSWindowCollectionBehaviorFullScreenPrimary)) {
            [window setCollectionBehavior:behavior | NSWindowCollectionBehaviorFullScreenPrimary];
        }
        if (keyWindowIsFullscreen() != (on != 0)) {
            [window toggleFullScreen:nil];
        }
    });
}

int IsNativeFullscreen() {
    __block int result = 0;
    if ([NSThread isMainThread]) {
        return keyWindowIsFullscreen();
    }
    dispatch_sync(dispatch_get_main_queue(), ^{
        result = keyWindowIsFullscreen();
    });
    return result;
}
*/
import "C"

import "context"

// Wails' WindowFullscreen does not work with frameless windows on macOS, so
// the window host goes through NSWindow directly.

func enterWindowFullscreen(ctx context.Context) {
	C.SetNativeFullscreen(1)
}

func exitWindowFullscreen(ctx context.Context) {
	C.SetNativeFullscreen(0)
}

func isWindowFullscreen(ctx context.Context) bool {
	return C.IsNativeFullscreen() == 1
}
