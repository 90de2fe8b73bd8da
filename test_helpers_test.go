package main

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
)

var (
	moduleRootOnce sync.Once
	moduleRoot     string
)

// findModuleRoot 从当前源文件向上查找 go.mod 所在目录。
func findModuleRoot() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	for dir := filepath.Dir(file); ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		if filepath.Dir(dir) == dir {
			return ""
		}
	}
}

// configFixture 返回 internal/config/testdata 下的 bookcase 配置样例路径。
func configFixture(t *testing.T, name string) string {
	t.Helper()
	moduleRootOnce.Do(func() { moduleRoot = findModuleRoot() })
	if moduleRoot == "" {
		t.Fatal("无法定位 bookcase 模块根目录（未找到 go.mod）")
	}
	return filepath.Join(moduleRoot, "internal", "config", "testdata", name)
}
