package book

import "sync/atomic"

// Shelf 是进程内唯一的集合槽位。写入是整体替换的原子交换，
// 读者只会看到某一次完整写入的结果。
type Shelf struct {
	current atomic.Pointer[Collection]
}

// NewShelf 创建空槽位。
func NewShelf() *Shelf {
	return &Shelf{}
}

// Load 返回当前集合，尚未写入时返回空集合。
func (s *Shelf) Load() Collection {
	if c := s.current.Load(); c != nil {
		return *c
	}
	return Collection{}
}

// Replace 整体替换集合并返回旧值。
func (s *Shelf) Replace(c Collection) Collection {
	stored := NewCollection(c.books...)
	if prev := s.current.Swap(&stored); prev != nil {
		return *prev
	}
	return Collection{}
}
