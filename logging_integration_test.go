package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggingFallbackToStdout(t *testing.T) {
	dir := t.TempDir()
	// 以普通文件占位，使日志目录无法创建；root 下同样生效。
	blocked := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocked, []byte("not a directory"), 0o600); err != nil {
		t.Fatalf("创建占位文件失败: %v", err)
	}

	logPath := filepath.Join(blocked, "sub", "bookcase.log")
	configPath := writeConfigFile(t, fmt.Sprintf(`
LogLevel = "info"
LogFilePath = "%s"
ListenPort = 5000

[Codec]
Format = "csv"
Delimiter = ";"
`, logPath))

	useBufferWriters(t)
	code := run(cliOptions{configPath: configPath, checkOnly: true})
	if code != 0 {
		t.Fatalf("日志 fallback 不应导致失败，得到 %d (stderr=%s)", code, stdErrBuffer().String())
	}
}

func TestCheckConfigLogsCodecBinding(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "bookcase.log")
	configPath := writeConfigFile(t, fmt.Sprintf(`
LogLevel = "debug"
LogFilePath = "%s"

[Codec]
Format = "yaml"
`, logPath))

	useBufferWriters(t)
	if code := run(cliOptions{configPath: configPath, checkOnly: true}); code != 0 {
		t.Fatalf("期望退出码 0，得到 %d (stderr=%s)", code, stdErrBuffer().String())
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("读取日志失败: %v", err)
	}
	content := string(data)
	for _, want := range []string{`"action":"codec_bind"`, `"media_type":"application/yaml"`, `"action":"check_config"`} {
		if !strings.Contains(content, want) {
			t.Fatalf("日志缺少 %s:\n%s", want, content)
		}
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(file, []byte(strings.TrimSpace(content)), 0o600); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}
	return file
}
