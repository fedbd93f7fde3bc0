package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"PassVault/internal/cli/api"
	"PassVault/internal/cli/repo/fs"
	"PassVault/internal/cli/ui"
	"PassVault/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Load unified config (env + flags)
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	// лог клиента в файл: stdout занят интерфейсом
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{cfg.LogFile}
	logCfg.ErrorOutputPaths = []string{cfg.LogFile}
	zl, err := logCfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot open log file:", err)
		os.Exit(1)
	}
	defer zl.Sync()
	logger := zl.Sugar()

	store := &fs.AuthFSStore{Path: cfg.TokenFile}
	client := api.NewClient(cfg.ServerURL, store)

	// первый позиционный аргумент — запрошенный маршрут (deep link)
	startPath := "/"
	if args := flag.Args(); len(args) > 0 {
		startPath = args[0]
	}

	model := ui.NewModel(client, logger, startPath)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		logger.Errorw("program terminated", "error", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("PassVault client\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
