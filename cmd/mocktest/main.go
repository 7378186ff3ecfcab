package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ibreez3/minivault/config"
	"github.com/ibreez3/minivault/responder"
	"github.com/ibreez3/minivault/service"
)

func main() {
	var cfg config.Config
	cfg.Ollama.Enabled = true
	cfg.Ollama.Model = "mock"

	logPath := filepath.Join("output", "mock-run", "log.jsonl")
	_ = os.Remove(logPath)
	mock := &responder.MockClient{Reply: "  blocking reply  ", Chunks: []string{"Hel", "lo"}}
	h := service.NewHandler(cfg, responder.NewRemote(mock, cfg.Ollama.Model), service.NewInteractionLog(logPath))
	ctx := context.Background()

	res, err := h.Generate(ctx, "hello")
	if err != nil {
		fmt.Println("生成失败:", err)
		os.Exit(1)
	}
	streamed, err := responder.Drain(h.GenerateStream(ctx, "hello"))
	if err != nil {
		fmt.Println("流式生成失败:", err)
		os.Exit(1)
	}
	if _, err := h.Generate(ctx, ""); err != nil {
		fmt.Println("空提示失败:", err)
		os.Exit(1)
	}
	fmt.Println("阻塞:", res.Text, "流式:", streamed)

	f, err := os.Open(logPath)
	if err != nil {
		fmt.Println("缺少日志文件:", logPath)
		os.Exit(2)
	}
	defer f.Close()
	var entries []service.LogEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e service.LogEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			fmt.Println("日志行无法解析:", sc.Text())
			os.Exit(3)
		}
		entries = append(entries, e)
	}
	if len(entries) != 2 || entries[0].Response != res.Text || entries[1].Response != "Hello" {
		fmt.Println("日志内容不符:", entries)
		os.Exit(4)
	}
	fmt.Println("持久化验证通过:", logPath)
}
