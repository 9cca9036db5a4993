// internal/websocket/router.go
package websocket

import (
	"encoding/json"
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Router 将 RPC 方法映射到 App 的公开方法
type Router struct {
	app     reflect.Value
	methods map[string]reflect.Method
}

// NewRouter 创建新的路由器
func NewRouter(app interface{}) *Router {
	r := &Router{
		methods: make(map[string]reflect.Method),
	}
	if app == nil {
		return r
	}

	r.app = reflect.ValueOf(app)
	appType := r.app.Type()
	for i := 0; i < appType.NumMethod(); i++ {
		method := appType.Method(i)
		if method.IsExported() {
			r.methods[method.Name] = method
		}
	}
	return r
}

// Has reports whether name can be called
func (r *Router) Has(name string) bool {
	_, ok := r.methods[name]
	return ok
}

// Call 调用指定的 RPC 方法，参数按目标类型逐个 JSON 解码
func (r *Router) Call(methodName string, params []json.RawMessage) (interface{}, error) {
	method, ok := r.methods[methodName]
	if !ok {
		return nil, fmt.Errorf("method not found: %s", methodName)
	}

	methodType := method.Type
	numIn := methodType.NumIn() - 1 // 减去 receiver
	if len(params) != numIn {
		return nil, fmt.Errorf("method %s expects %d params, got %d", methodName, numIn, len(params))
	}

	args := make([]reflect.Value, numIn+1)
	args[0] = r.app
	for i, raw := range params {
		ptr := reflect.New(methodType.In(i + 1))
		if err := json.Unmarshal(raw, ptr.Interface()); err != nil {
			return nil, fmt.Errorf("param %d: %w", i, err)
		}
		args[i+1] = ptr.Elem()
	}

	return processResults(method.Func.Call(args))
}

// processResults 处理返回值：最后一个 error 返回值单独处理
func processResults(results []reflect.Value) (interface{}, error) {
	if n := len(results); n > 0 && results[n-1].Type().Implements(errorType) {
		if !results[n-1].IsNil() {
			return nil, results[n-1].Interface().(error)
		}
		results = results[:n-1]
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0].Interface(), nil
	default:
		out := make([]interface{}, len(results))
		for i, v := range results {
			out[i] = v.Interface()
		}
		return out, nil
	}
}
