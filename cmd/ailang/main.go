// Command ailang runs the type inference and pattern elimination passes
// over a small set of built-in example structures, since no parser ships in
// this module -- every surface program here is hand-built with internal/ast
// constructors rather than read from a .ail file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/mlhm-lang/mlhm/internal/config"
	"github.com/mlhm-lang/mlhm/internal/elaborate"
	"github.com/mlhm-lang/mlhm/internal/errors"
	"github.com/mlhm-lang/mlhm/internal/types"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		listFlag    = flag.Bool("list", false, "List the built-in example structures")
		exampleFlag = flag.String("example", "", "Run one built-in example by name")
		allFlag     = flag.Bool("all", false, "Run every built-in example in sequence")
		emitJSON    = flag.Bool("json", false, "Emit diagnostics as JSON instead of colorized text")
		configPath  = flag.String("config", "", "Path to a pipeline config YAML file")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *emitJSON {
		cfg.EmitJSON = true
	}

	if *listFlag || (!*allFlag && *exampleFlag == "" && flag.NArg() == 0) {
		printExampleList()
		return
	}

	if *allFlag {
		if runAll(cfg) {
			os.Exit(1)
		}
		return
	}

	name := *exampleFlag
	if name == "" {
		name = flag.Arg(0)
	}
	ex, ok := examples[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: no built-in example named %q (use -list)\n", red("Error"), name)
		os.Exit(1)
	}

	if err := run(ex, cfg); err != nil {
		os.Exit(1)
	}
}

// runAll runs every built-in example in sorted order. When cfg.StopOnFirstError
// is set it aborts at the first failing example, matching the passes'
// own no-partial-result error discipline; otherwise it runs every example
// and reports which ones failed, returning true if any did.
func runAll(cfg *config.Config) (failed bool) {
	for _, name := range exampleNames() {
		if err := run(examples[name], cfg); err != nil {
			failed = true
			if cfg.StopOnFirstError {
				fmt.Fprintf(os.Stderr, "%s: stopping after %q (stop_on_first_error)\n", red("Error"), name)
				return failed
			}
		}
	}
	return failed
}

func printExampleList() {
	fmt.Println(bold("Built-in examples:"))
	for _, name := range exampleNames() {
		fmt.Printf("  %s\n", cyan(name))
	}
}

func run(ex *namedExample, cfg *config.Config) error {
	fmt.Printf("%s %s\n", bold("running:"), cyan(ex.name))

	env, err := types.InferStructure(elaborate.InitialEnv(), ex.structure)
	if err != nil {
		reportErr(err, "typecheck", cfg)
		return err
	}
	fmt.Println(types.PrettyEnv(env))

	prog, err := elaborate.PeStructure(ex.structure, cfg.FreshNamePrefix)
	if err != nil {
		reportErr(err, "elaborate", cfg)
		return err
	}
	fmt.Println(bold("\nlowered:"))
	fmt.Println(prog.String())

	if dump, err := config.DumpEnv(env); err == nil {
		fmt.Println(bold("\nenvironment (yaml):"))
		fmt.Print(dump)
	}
	fmt.Println(green("ok"))
	return nil
}

func reportErr(err error, phase string, cfg *config.Config) {
	rep := errors.FromTypeError(err, phase)
	if cfg.EmitJSON {
		js, _ := rep.ToJSON(false)
		fmt.Fprintln(os.Stderr, js)
		return
	}
	fmt.Fprintln(os.Stderr, rep.Render())
}
