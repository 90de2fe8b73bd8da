package main

import (
	"bytes"
	"testing"
)

// cliOutput 持有测试期间替换进来的 stdout/stderr 缓冲区。
type cliOutput struct {
	out *bytes.Buffer
	err *bytes.Buffer
}

// useBufferWriters 在测试期间把 CLI 输出重定向到内存缓冲区，测试结束后恢复。
func useBufferWriters(t *testing.T) cliOutput {
	t.Helper()

	captured := cliOutput{out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	prevOut, prevErr := stdOut, stdErr
	stdOut, stdErr = captured.out, captured.err

	t.Cleanup(func() {
		stdOut, stdErr = prevOut, prevErr
	})
	return captured
}

// stdErrBuffer 返回当前生效的 stderr 缓冲区；未调用 useBufferWriters 时为 nil。
func stdErrBuffer() *bytes.Buffer {
	buf, _ := stdErr.(*bytes.Buffer)
	return buf
}
