package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/pipe01/mukuro"
	"github.com/pipe01/mukuro/internal/config"
	"github.com/pipe01/mukuro/internal/preview"
	"github.com/pipe01/mukuro/internal/workspace"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var (
	outDir     = kingpin.Flag("out-dir", "Folder to put generated files on").Short('o').Envar("MUKURO_OUT_DIR").Default(".").String()
	watch      = kingpin.Flag("watch", "Watch files for changes and recompile automatically").Short('w').Envar("MUKURO_WATCH").Bool()
	serve      = kingpin.Flag("serve", "Serve the last compiled file with live reload on this address").Envar("MUKURO_SERVE").String()
	configPath = kingpin.Flag("config", "YAML file with compiler settings").Short('c').Envar("MUKURO_CONFIG").ExistingFile()
	maxLines   = kingpin.Flag("max-lines", "Maximum number of lines per file, -1 for no limit").Envar("MUKURO_MAX_LINES").Int()
	maxLineLen = kingpin.Flag("max-line-length", "Maximum length of a line in bytes, -1 for no limit").Envar("MUKURO_MAX_LINE_LENGTH").Int()
	maxDepth   = kingpin.Flag("max-depth", "Maximum nesting depth, -1 for no limit").Envar("MUKURO_MAX_DEPTH").Int()
	strictIDs  = kingpin.Flag("strict-ids", "Reject explicit ids shaped like generated ones").Envar("MUKURO_STRICT_IDS").Bool()
	title      = kingpin.Flag("title", "Title used when the page sets none").Envar("MUKURO_TITLE").String()
	font       = kingpin.Flag("font", "Stylesheet URL of the web font, empty for none").Envar("MUKURO_FONT").IsSetByUser(&fontSet).String()
	verbose    = kingpin.Flag("verbose", "Log more, repeat for debug output").Short('v').Counter()
	files      = kingpin.Arg("files", "List of files to compile").Required().ExistingFiles()

	fontSet bool

	ws     *workspace.Workspace
	server *preview.Server
)

func main() {
	kingpin.Parse()

	commonlog.Configure(*verbose, nil)

	*outDir, _ = filepath.Abs(*outDir)

	opts, err := loadOptions()
	if err != nil {
		kingpin.Fatalf("%s", err)
	}

	wd, _ := os.Getwd()
	ws = workspace.New(wd, mukuro.New(opts))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *serve != "" {
		server = preview.New()
	}

	err = generateAll()
	if err != nil && !*watch {
		kingpin.Fatalf("failed to generate files: %s", err)
	}
	if err != nil {
		log().Errorf("%s", err)
	}

	if *watch {
		if err := watchFiles(); err != nil {
			kingpin.Fatalf("failed to watch files: %s", err)
		}
	}

	if server != nil {
		if err := server.ListenAndServe(ctx, *serve); err != nil {
			kingpin.Fatalf("failed to serve preview: %s", err)
		}
		return
	}

	if *watch {
		log().Notice("watching files for changes...")
		<-ctx.Done()
	}
}

func log() commonlog.Logger {
	return commonlog.GetLogger("mukuro")
}

// loadOptions reads the config file, if any, and lets flags that were set
// override it.
func loadOptions() (mukuro.Options, error) {
	var opts mukuro.Options

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return opts, err
		}
		opts = cfg.Options()
	}

	if *maxLines != 0 {
		opts.MaxLines = *maxLines
	}
	if *maxLineLen != 0 {
		opts.MaxLineLength = *maxLineLen
	}
	if *maxDepth != 0 {
		opts.MaxDepth = *maxDepth
	}
	if *strictIDs {
		opts.StrictIDs = true
	}
	if *title != "" {
		opts.DefaultTitle = *title
	}
	if _, ok := os.LookupEnv("MUKURO_FONT"); ok || fontSet {
		opts.FontURL = *font
		opts.NoFont = *font == ""
	}

	return opts, nil
}

func generateAll() error {
	for _, fname := range *files {
		_, err := generateFile(fname)
		if err != nil {
			return fmt.Errorf("load file %q: %w", fname, err)
		}
	}

	return nil
}

func generateFile(fname string) (outPath string, err error) {
	e, err := ws.Load(fname)
	if err != nil {
		if serr, ok := mukuro.Situate(err); ok {
			return "", fmt.Errorf("%w\n\t%s", err, strings.TrimSpace(serr.RawLine()))
		}
		return "", err
	}

	outName := strings.TrimSuffix(filepath.Base(fname), filepath.Ext(fname)) + ".html"
	outPath = filepath.Join(*outDir, outName)

	if err := os.WriteFile(outPath, []byte(e.Document.HTML), 0o644); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}

	log().Infof("wrote %s", outPath)

	if server != nil {
		server.Publish(e.Document)
	}

	return outPath, nil
}

func watchFiles() error {
	watcher, err := NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	for _, f := range *files {
		err = watcher.WatchFile(f)
		if err != nil {
			return fmt.Errorf("watch file %q: %w", f, err)
		}
	}

	return nil
}
