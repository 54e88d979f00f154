package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/arl/vramcache/emu/log"
	"github.com/arl/vramcache/texcache"
	"github.com/arl/vramcache/vram"
)

type CLI struct {
	Load    LoadCmd    `cmd:"" help:"Decode a raw VRAM dump's pages and print their content hashes." default:"1"`
	Lookup  LookupCmd  `cmd:"" help:"Look up (or decode) one texture-cache source from a VRAM dump."`
	Bench   BenchCmd   `cmd:"" help:"Run a synthetic draw-call workload against the cache."`
	Display DisplayCmd `cmd:"" help:"Open a window and display one decoded texture-cache page."`

	Log             logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
	DebugAssertions bool       `name:"debug-assertions" help:"Panic on internal invariant violations instead of ignoring them."`
}

var vars = kong.Vars{
	"log_help":  "Enable logging for specified modules.",
	"vram_size": fmt.Sprint(vram.Size * 2),
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("vramcache"),
		kong.Description("Texture cache inspection and benchmarking tool. github.com/arl/vramcache"),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	checkf(err, "failed to build command line parser")

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	texcache.SetDebugAssertions(cfg.DebugAssertions)

	checkf(ctx.Run(), "command failed")

	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}

	loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s
  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
	var strs []string
	for _, m := range log.ModuleNames() {
		strs = append(strs, "    - "+m)
	}
	fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser that writes to
// that file.
//
// Implements kong.MapperValue.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+": "+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
