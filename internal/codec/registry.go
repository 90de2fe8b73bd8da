package codec

import (
	"errors"
	"fmt"

	"github.com/rabbitshop/bookcase/internal/fault"
)

// Binding 把一个领域类型绑定到一个 codec 实例。
type Binding struct {
	Type  TypeKey
	Codec Codec
}

// Registry 提供 领域类型 → codec 的查询能力。构建后只读，查询无需加锁，
// 可被所有请求并发调用。每个领域类型同一时间只有一个生效的 codec。
type Registry struct {
	byType  map[TypeKey]Codec
	ordered []Binding
}

// NewRegistry 在启动阶段构建一次，重复类型或 codec 不支持其绑定类型时返回错误。
func NewRegistry(bindings ...Binding) (*Registry, error) {
	registry := &Registry{
		byType: make(map[TypeKey]Codec, len(bindings)),
	}

	for _, b := range bindings {
		if b.Type == "" {
			return nil, errors.New("binding type is required")
		}
		if b.Codec == nil {
			return nil, fmt.Errorf("codec for %s is nil", b.Type)
		}
		if !b.Codec.Supports(b.Type) {
			return nil, fmt.Errorf("codec %T does not support %s", b.Codec, b.Type)
		}
		if _, exists := registry.byType[b.Type]; exists {
			return nil, fmt.Errorf("duplicate codec binding detected for %s", b.Type)
		}
		registry.byType[b.Type] = b.Codec
		registry.ordered = append(registry.ordered, b)
	}

	return registry, nil
}

// Lookup 返回 target 对应的 codec，未注册时返回 NoMatchingCodec 故障。
func (r *Registry) Lookup(target TypeKey) (Codec, error) {
	if r != nil {
		if c, ok := r.byType[target]; ok {
			return c, nil
		}
	}
	return nil, fault.Newf(fault.KindNoMatchingCodec, "no codec registered for %s", target)
}

// List 返回按注册顺序排列的绑定，用于诊断输出。
func (r *Registry) List() []Binding {
	if r == nil || len(r.ordered) == 0 {
		return nil
	}
	return append([]Binding(nil), r.ordered...)
}
