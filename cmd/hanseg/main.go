/*
Package main implements a Chinese word segmentation server and CLI
application.

hanseg segments Chinese text using a dictionary-backed DAG with
maximum-probability routing, recovering out-of-vocabulary runs with an
HMM decoder. It can run as a msgpack IPC server for integration with
other processes, or as a CLI for interactive testing.

# Usage

Start the server with default settings:

	hanseg

Run in CLI mode, cutting interactively:

	hanseg -c -mode cut

Cut a single line and exit:

	hanseg -text "南京市长江大桥"

# Configuration

Runtime configuration is managed through a TOML file:

	[cutter]
	dict_path = ""
	enable_hmm = true

	[cli]
	default_mode = "cut"
	enable_hmm = true

The config file is automatically created with defaults if missing.

# Command Line Flags

	-version         Show current version
	-dict string     Path to a dictionary text file (default: embedded default dictionary)
	-config string   Path to a config TOML file
	-d               Enable debug mode with detailed logging
	-c               Run CLI mode instead of server mode
	-mode string     CLI mode: cut, cut-all, cut-search, tag (default from config)
	-hmm             Enable HMM recovery for out-of-vocabulary runs
	-text string     Cut a single line of text and exit, instead of starting the REPL or server
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/duanmu/hanseg/internal/cli"
	"github.com/duanmu/hanseg/internal/config"
	"github.com/duanmu/hanseg/internal/logger"
	"github.com/duanmu/hanseg/internal/utils"
	"github.com/duanmu/hanseg/pkg/dictionary"
	"github.com/duanmu/hanseg/pkg/segment"
	"github.com/duanmu/hanseg/pkg/server"
)

const (
	Version = "0.1.0"
	AppName = "hanseg"
	repo    = "https://github.com/duanmu/hanseg"
)

// sigHandler exits cleanly on Ctrl+C/SIGTERM.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dictPath := flag.String("dict", defaultConfig.Cutter.DictPath, "Path to a dictionary text file (default: embedded default dictionary)")
	configPathFlag := flag.String("config", "", "Path to a config TOML file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	mode := flag.String("mode", defaultConfig.CLI.DefaultMode, "CLI mode: cut, cut-all, cut-search, tag")
	hmmEnabled := flag.Bool("hmm", defaultConfig.CLI.EnableHMM, "Enable HMM recovery for out-of-vocabulary runs")
	text := flag.String("text", "", "Cut a single line of text and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		logger.SetGlobalLevel(true)
	} else {
		logger.SetGlobalLevel(false)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	cfg, cfgPath, _ := config.LoadConfigWithPriority(*configPathFlag)
	if cfgPath != "" {
		log.Debugf("using config: %s", cfgPath)
	}
	if *dictPath == "" && cfg.Cutter.DictPath != "" {
		*dictPath = cfg.Cutter.DictPath
	}
	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	if !setFlags["mode"] && cfg.CLI.DefaultMode != "" {
		*mode = cfg.CLI.DefaultMode
	}
	if !setFlags["hmm"] {
		*hmmEnabled = cfg.CLI.EnableHMM
	}

	resolvedDictPath := ""
	if *dictPath != "" {
		resolvedDictPath = pathResolver.GetDictPath(*dictPath)
	}

	cutter, err := buildCutter(resolvedDictPath)
	if err != nil {
		log.Fatalf("Failed to build cutter: %v", err)
	}

	if *text != "" {
		cutAndPrint(cutter, *mode, *text, *hmmEnabled)
		return
	}

	if *cliMode {
		inputHandler := cli.NewInputHandler(cutter, *mode, *hmmEnabled)
		if err := inputHandler.Start(); err != nil && err != io.EOF {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	srv := server.NewServer(cutter)
	showStartupInfo(resolvedDictPath)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildCutter loads a Cutter either from dictPath, if given, or from
// the embedded default dictionary.
func buildCutter(dictPath string) (*segment.Cutter, error) {
	if dictPath == "" {
		return segment.NewDefault()
	}
	f, err := os.Open(dictPath)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary %s: %w", dictPath, err)
	}
	defer f.Close()

	d, err := dictionary.NewWithDict(f)
	if err != nil {
		return nil, fmt.Errorf("loading dictionary %s: %w", dictPath, err)
	}
	return segment.New(d), nil
}

// cutAndPrint runs a single cut in the requested mode and prints the
// result, for one-shot non-interactive invocations.
func cutAndPrint(cutter *segment.Cutter, mode, text string, hmmEnabled bool) {
	switch mode {
	case "cut-all":
		fmt.Println(strings.Join(cutter.CutAll(text), " / "))
	case "cut-search":
		fmt.Println(strings.Join(cutter.CutForSearch(text, hmmEnabled), " / "))
	case "tag":
		for _, t := range cutter.Tag(text, hmmEnabled) {
			fmt.Printf("%s/%s ", t.Text, t.Tag)
		}
		fmt.Println()
	default:
		fmt.Println(strings.Join(cutter.Cut(text, hmmEnabled), " / "))
	}
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{ReportCaller: false, ReportTimestamp: false})
	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ hanseg ] Chinese word segmentation")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", repo)
}

// showStartupInfo displays basic info about the server process.
func showStartupInfo(dictPath string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("=========")
	println(" hanseg ")
	println("=========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	if dictPath == "" {
		log.Info("dict: embedded default")
	} else {
		log.Infof("dict: %s", dictPath)
	}
	log.Info("status: ready")
	println("=========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
