package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/davecgh/go-spew/spew"
	"github.com/graeme-hill/golox/lib"
)

const version = "0.1.0"

const (
	exitOK       = 0
	exitUsage    = 64
	exitDataErr  = 65
	exitIOErr    = 74
	databaseEnv  = "LOXSCAN_DATABASE_URL"
	promptString = "> "
)

// Token implements Stringer, so methods are off to get the fields.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

type scanner struct {
	out    io.Writer
	errOut io.Writer
	dump   bool
	store  *lib.Store
}

func main() {
	logger := log.New(os.Stderr, "loxscan: ", 0)

	fs := flag.NewFlagSet("loxscan", flag.ExitOnError)
	dump := fs.Bool("dump", false, "dump full token values instead of one line per token")
	watch := fs.Bool("watch", false, "rescan the file every time it is written")
	dsn := fs.String("db", os.Getenv(databaseEnv), "postgres connection string to record scans in (env "+databaseEnv+")")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: loxscan [flags] [file ...]")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("loxscan v%s\n", version)
		os.Exit(exitOK)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	s := &scanner{out: os.Stdout, errOut: os.Stderr, dump: *dump}

	if *dsn != "" {
		store, err := lib.OpenStore(ctx, *dsn)
		if err != nil {
			logger.Printf("opening store: %v", err)
			os.Exit(exitIOErr)
		}

		err = store.Migrate(ctx)
		if err != nil {
			logger.Printf("migrating store: %v", err)
			store.Close()
			os.Exit(exitIOErr)
		}
		s.store = store
	}

	files := fs.Args()
	var code int
	switch {
	case *watch:
		if len(files) != 1 {
			fs.Usage()
			code = exitUsage
			break
		}
		code = s.watchFile(ctx, files[0], logger)
	case len(files) == 0:
		code = s.runPrompt(ctx, os.Stdin)
	default:
		code = s.runFiles(ctx, files, logger)
	}

	stop()
	if s.store != nil {
		s.store.Close()
	}
	os.Exit(code)
}

func (s *scanner) runFiles(ctx context.Context, files []string, logger *log.Logger) int {
	code := exitOK
	for _, path := range files {
		bytes, err := os.ReadFile(path)
		if err != nil {
			logger.Printf("reading %s: %v", path, err)
			return exitIOErr
		}

		hadError, err := s.scanSource(ctx, path, string(bytes))
		if err != nil {
			logger.Printf("%s: %v", path, err)
			return exitIOErr
		}
		if hadError {
			code = exitDataErr
		}
	}
	return code
}

func (s *scanner) runPrompt(ctx context.Context, in io.Reader) int {
	lines := bufio.NewScanner(in)
	n := 0
	for {
		fmt.Fprint(s.out, promptString)
		if !lines.Scan() {
			fmt.Fprintln(s.out)
			break
		}
		n++

		// a bad line does not end the session
		_, err := s.scanSource(ctx, fmt.Sprintf("<stdin:%d>", n), lines.Text())
		if err != nil {
			fmt.Fprintf(s.errOut, "loxscan: %v\n", err)
		}
	}
	if err := lines.Err(); err != nil {
		fmt.Fprintf(s.errOut, "loxscan: reading input: %v\n", err)
		return exitIOErr
	}
	return exitOK
}

// scanSource scans one source text, prints its tokens and records the scan
// when a store is configured. It reports whether any diagnostics were raised.
func (s *scanner) scanSource(ctx context.Context, name string, source string) (bool, error) {
	diags := &lib.Diagnostics{}
	reporter := lib.MultiReporter(diags, lib.NewLogReporter(log.New(s.errOut, name+": ", 0)))

	tokens := lib.Scan(source, reporter)

	if s.dump {
		dumper.Fdump(s.out, tokens)
	} else {
		for _, tok := range tokens {
			fmt.Fprintln(s.out, tok)
		}
	}

	if s.store != nil {
		_, err := s.store.SaveScan(ctx, name, source, tokens, diags.List())
		if err != nil {
			return diags.HadError(), err
		}
	}

	return diags.HadError(), nil
}
