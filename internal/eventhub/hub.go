package eventhub

import (
	"context"
	"sync"
)

// Broadcaster 事件广播接口
type Broadcaster interface {
	BroadcastEvent(eventType string, payload interface{})
}

// EventHub 统一事件分发中心
type EventHub struct {
	ctx         context.Context
	mu          sync.RWMutex
	broadcaster Broadcaster
}

// New 创建新的 EventHub
func New(ctx context.Context) *EventHub {
	return &EventHub{ctx: ctx}
}

// SetBroadcaster 设置广播器（Wails 事件或 WebSocket）
func (h *EventHub) SetBroadcaster(b Broadcaster) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcaster = b
}

// emit 统一的事件发送方法
func (h *EventHub) emit(eventName string, payload interface{}) {
	h.mu.RLock()
	b := h.broadcaster
	h.mu.RUnlock()

	if b != nil {
		b.BroadcastEvent(eventName, payload)
	}
}

// Emit 通用事件发送方法
func (h *EventHub) Emit(eventName string, payload interface{}) {
	h.emit(eventName, payload)
}

// 全屏状态事件
type FullscreenChangedEvent struct {
	Fullscreen bool   `json:"fullscreen"`
	Target     string `json:"target"`
	Variant    string `json:"variant"`
	Label      string `json:"label"`
}

func (h *EventHub) EmitFullscreenChanged(event FullscreenChangedEvent) {
	h.emit("fullscreen:changed", event)
}

// 控件可用性事件，挂载时发送一次
type FullscreenAvailabilityEvent struct {
	Supported bool   `json:"supported"`
	Variant   string `json:"variant"`
}

func (h *EventHub) EmitFullscreenAvailability(event FullscreenAvailabilityEvent) {
	h.emit("fullscreen:availability", event)
}

// 配置重载事件
func (h *EventHub) EmitConfigReloaded(path string) {
	h.emit("config:reloaded", map[string]interface{}{
		"path": path,
	})
}
