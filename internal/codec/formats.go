package codec

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Options 是构建某种格式 codec 的参数。MediaType 为零值时使用格式默认值。
type Options struct {
	MediaType MediaType
	// Delimiter 仅 csv 使用。
	Delimiter rune
}

// Factory 根据 Options 构建 codec 实例。
type Factory func(opts Options) (Codec, error)

// Format 描述一种线上格式，在各自文件的 init() 中注册。
type Format struct {
	Name             string
	DefaultMediaType MediaType
	New              Factory
}

var formats = newFormatTable()

type formatTable struct {
	mu     sync.RWMutex
	byName map[string]Format
}

func newFormatTable() *formatTable {
	return &formatTable{byName: make(map[string]Format)}
}

// RegisterFormat 将格式加入全局表，重复名称返回错误。
func RegisterFormat(f Format) error {
	return formats.register(f)
}

// MustRegisterFormat 在注册失败时 panic，适合 init() 中调用。
func MustRegisterFormat(f Format) {
	if err := RegisterFormat(f); err != nil {
		panic(err)
	}
}

// LookupFormat 返回指定名称的格式。
func LookupFormat(name string) (Format, bool) {
	return formats.lookup(name)
}

// FormatNames 返回按名称排序的已注册格式。
func FormatNames() []string {
	return formats.names()
}

// Build 按格式名创建 codec。
func Build(name string, opts Options) (Codec, error) {
	f, ok := LookupFormat(name)
	if !ok {
		return nil, fmt.Errorf("codec format %q is not registered (supported: %s)", name, strings.Join(FormatNames(), "|"))
	}
	if opts.MediaType == (MediaType{}) {
		opts.MediaType = f.DefaultMediaType
	}
	return f.New(opts)
}

func normalizeFormat(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (t *formatTable) register(f Format) error {
	key := normalizeFormat(f.Name)
	if key == "" {
		return fmt.Errorf("format name is required")
	}
	if f.New == nil {
		return fmt.Errorf("format %s has no factory", key)
	}
	f.Name = key

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.byName[key]; exists {
		return fmt.Errorf("format %s already registered", key)
	}
	t.byName[key] = f
	return nil
}

func (t *formatTable) lookup(name string) (Format, bool) {
	key := normalizeFormat(name)
	if key == "" {
		return Format{}, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	f, ok := t.byName[key]
	return f, ok
}

func (t *formatTable) names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]string, 0, len(t.byName))
	for key := range t.byName {
		result = append(result, key)
	}
	sort.Strings(result)
	return result
}
