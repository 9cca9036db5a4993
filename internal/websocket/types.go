// internal/websocket/types.go
package websocket

import "encoding/json"

// RPCRequest 表示从前端发来的 RPC 请求
type RPCRequest struct {
	ID     string            `json:"id"`     // 请求 ID，用于匹配响应
	Method string            `json:"method"` // 方法名，如 "ClickFullscreen"
	Params []json.RawMessage `json:"params"` // 参数数组
}

// RPCResponse 表示返回给前端的 RPC 响应
type RPCResponse struct {
	ID     string      `json:"id"`               // 对应请求的 ID
	Result interface{} `json:"result,omitempty"` // 成功时的返回值
	Error  string      `json:"error,omitempty"`  // 失败时的错误信息
}

// WSEvent 表示事件，双向使用：后端广播，或页面上报全屏变化
type WSEvent struct {
	Type    string          `json:"type"`    // 事件类型，如 "fullscreen:changed"
	Payload interface{}     `json:"payload"` // 事件数据（发送）
	Raw     json.RawMessage `json:"-"`
}

// UnmarshalJSON keeps the payload raw so receivers can decode it themselves
func (e *WSEvent) UnmarshalJSON(data []byte) error {
	var aux struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Type = aux.Type
	e.Raw = aux.Payload
	e.Payload = nil
	return nil
}

// ElementPayload 是页面全屏事件的数据：当前全屏元素的选择器，空表示无
type ElementPayload struct {
	Element string `json:"element"`
}

// Hello 是页面连接后发送的第一条消息，上报全屏能力
type Hello struct {
	Capabilities map[string]bool   `json:"capabilities"`
	Elements     map[string]string `json:"elements,omitempty"` // property -> selector
}

// Command 是后端要求页面执行的全屏方法
type Command struct {
	Method string `json:"method"`
	Target string `json:"target,omitempty"`
}

// WSMessage 是 WebSocket 消息的统一封装
type WSMessage struct {
	// 消息类型: "rpc_request", "rpc_response", "event", "hello", "command"
	Kind string `json:"kind"`

	Request  *RPCRequest  `json:"request,omitempty"`
	Response *RPCResponse `json:"response,omitempty"`
	Event    *WSEvent     `json:"event,omitempty"`
	Hello    *Hello       `json:"hello,omitempty"`
	Command  *Command     `json:"command,omitempty"`
}
