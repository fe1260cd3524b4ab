package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/andrewchambers/cppncss/ast"
	"github.com/andrewchambers/cppncss/cpp"
	"github.com/andrewchambers/cppncss/measure"
	"github.com/andrewchambers/cppncss/parse"
	"github.com/andrewchambers/cppncss/symtab"
)

func printVersion() {
	fmt.Println("cppncss version 0.01")
}

func printUsage() {
	printVersion()
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  cppncss [FLAGS] PATH...")
	fmt.Println()
	fmt.Println("Measures the functions of C++ sources. Directories are searched for")
	fmt.Println("sources, headers are read before the other files.")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  CPPNCSSDEBUG=true enables extended error messages for debugging the parser.")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

// definitions collects repeated name[=value] flags.
type definitions [][2]string

func (d *definitions) String() string {
	var parts []string
	for _, def := range *d {
		parts = append(parts, def[0]+"="+def[1])
	}
	return strings.Join(parts, ",")
}

func (d *definitions) Set(s string) error {
	name, value, _ := strings.Cut(s, "=")
	if name == "" {
		return fmt.Errorf("bad definition %q, want name[=value]", s)
	}
	*d = append(*d, [2]string{name, value})
	return nil
}

type config struct {
	defines  definitions
	macros   definitions
	measures []string
	top      int
	// Search directories recursively.
	recursive bool
	// Report parse errors and carry on with the next file.
	keepGoing bool
	// Stripped from the file names in the report.
	prefix string
	// Start every file with an empty symbol table.
	reset bool
	// Follow #if and friends.
	conditionals bool
}

var (
	headerExts = []string{".h", ".hh", ".hpp", ".hxx", ".h++", ".inl"}
	sourceExts = []string{".c", ".cc", ".cpp", ".cxx", ".c++"}
)

func isHeader(path string) bool {
	return slices.Contains(headerExts, strings.ToLower(filepath.Ext(path)))
}

func isSource(path string) bool {
	return isHeader(path) || slices.Contains(sourceExts, strings.ToLower(filepath.Ext(path)))
}

// collectFiles expands directories into the sources they hold. Files named
// explicitly are taken whatever their extension. Headers come first so
// their declarations are known when the other files are parsed.
func collectFiles(paths []string, recursive bool) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != path && !recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if isSource(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.SortStableFunc(files, func(a, b string) int {
		ha, hb := isHeader(a), isHeader(b)
		switch {
		case ha && !hb:
			return -1
		case hb && !ha:
			return 1
		}
		return strings.Compare(a, b)
	})
	return slices.Compact(files), nil
}

func newProcessor(cfg *config, logger *slog.Logger) (*cpp.Processor, error) {
	pp := cpp.New(nil, logger)
	pp.Conditionals = cfg.conditionals
	for _, d := range cfg.defines {
		if err := pp.AddDefine(d[0], d[1]); err != nil {
			return nil, err
		}
	}
	for _, m := range cfg.macros {
		if err := pp.AddMacro(m[0], m[1]); err != nil {
			return nil, err
		}
	}
	if logger != nil {
		logger.Debug("substitutions",
			slog.Any("defines", pp.Names(cpp.Define)),
			slog.Any("macros", pp.Names(cpp.Macro)),
			slog.Bool("conditionals", pp.Conditionals))
	}
	return pp, nil
}

// measureFile parses one file and walks it with all the measures.
func measureFile(path string, pp *cpp.Processor, st *symtab.SymbolTable, walker ast.Visitor, logger *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", path, err)
	}
	defer f.Close()
	pp.Reset(cpp.Lex(path, f))
	tree, err := parse.Parse(path, pp, st, logger)
	if err != nil {
		return err
	}
	tree.Root().Accept(walker, nil)
	return nil
}

// run measures the files under paths and writes the report to out. Parse
// errors are reported to errOut.
func run(cfg *config, paths []string, out, errOut io.Writer, logger *slog.Logger) error {
	files, err := collectFiles(paths, cfg.recursive)
	if err != nil {
		return err
	}
	pp, err := newProcessor(cfg, logger)
	if err != nil {
		return err
	}
	var (
		measures   []measure.Measure
		collectors []*measure.Collector
	)
	multi := ast.NewMulti()
	for _, name := range cfg.measures {
		m, err := measure.New(name, logger)
		if err != nil {
			return err
		}
		multi.Register(m)
		measures = append(measures, m)
		collectors = append(collectors, measure.NewCollector(m.Name(), cfg.top))
	}
	walker := ast.NewWalker(multi)
	st := symtab.New()
	failed := 0
	for _, path := range files {
		if cfg.reset {
			st = symtab.New()
		}
		if logger != nil {
			logger.Debug("measuring", slog.String("file", path))
		}
		if err := measureFile(path, pp, st, walker, logger); err != nil {
			if !cfg.keepGoing {
				return err
			}
			reportError(errOut, err)
			failed++
		}
		for i, m := range measures {
			collectors[i].Add(m.Results()...)
		}
	}
	for i, c := range collectors {
		if i > 0 {
			fmt.Fprintln(out)
		}
		_, perFile := measures[i].(*measure.FunctionCounter)
		writeReport(out, c, perFile, cfg.prefix)
	}
	if failed != 0 {
		fmt.Fprintf(errOut, "%d of %d files could not be parsed\n", failed, len(files))
	}
	return nil
}

func main() {
	var cfg config
	flag.Usage = printUsage
	flag.Var(&cfg.defines, "D", "Replace `name` by value, given as name[=value]. May be repeated.")
	flag.Var(&cfg.macros, "M", "Replace `name` and the parenthesised arguments following it by value, given as name[=value]. May be repeated.")
	measures := flag.String("m", strings.Join(measure.Names(), ","), "Comma separated `list` of measurements.")
	flag.IntVar(&cfg.top, "n", 30, "Number of measurements to report per measure, 0 for all.")
	flag.BoolVar(&cfg.recursive, "r", false, "Search directories recursively.")
	flag.BoolVar(&cfg.keepGoing, "k", false, "Keep going after parse errors.")
	flag.StringVar(&cfg.prefix, "p", "", "Strip `prefix` from reported file names.")
	flag.BoolVar(&cfg.reset, "x", false, "Forget the declarations of a file before reading the next.")
	flag.BoolVar(&cfg.conditionals, "c", false, "Follow #if, #ifdef and #ifndef using the -D and -M names.")
	verbose := flag.Bool("v", false, "Log debugging information.")
	version := flag.Bool("version", false, "Print version info and exit.")
	flag.Parse()

	if *version {
		printVersion()
		return
	}
	if flag.NArg() == 0 {
		printUsage()
		os.Exit(1)
	}
	for _, m := range strings.Split(*measures, ",") {
		if m = strings.TrimSpace(m); m != "" {
			cfg.measures = append(cfg.measures, m)
		}
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	err := run(&cfg, flag.Args(), os.Stdout, os.Stderr, logger)
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
