// BYZRA ⸻ cmd/copydetails/root.go
// cobra command, flags and usage

package main

import (
	"fmt"
	"io"
	"os"

	"copydetails/internal/util"

	"github.com/spf13/cobra"
)

type options struct {
	copyOnlyDates bool
	configPath    string
	profilePath   string
	backend       string
	verbose       bool
	verify        bool
}

type app struct {
	out        io.Writer
	styled     bool
	newService serviceFactory
	log        *util.Logger
}

// runs the tool with args (program name excluded) and returns the exit code
func execute(args []string, out io.Writer) int {
	a := &app{
		out:        out,
		styled:     out == io.Writer(os.Stdout) && util.Interactive(),
		newService: newService,
	}
	return a.run(args)
}

func (a *app) run(args []string) int {
	a.log = util.NewLogger(a.out, util.LevelInfo, a.styled)

	var opts options
	code := 0
	cmd := a.command(&opts, &code)
	cmd.SetArgs(normalizeArgs(args, a.log))

	if err := cmd.Execute(); err != nil {
		a.log.Error(err.Error())
		return 1
	}
	return code
}

func (a *app) command(opts *options, code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "copydetails [--copy-only-dates] <destination_file> <source_file>",
		Short:         "Copy media properties and file times from one file to another",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				a.log.SetLevel(util.LevelDebug)
			}
			if !cmd.Flags().Changed("backend") {
				opts.backend = ""
			}
			*code = a.copyDetails(opts, args)
			return nil
		},
	}

	cmd.SetOut(a.out)
	cmd.SetErr(a.out)
	cmd.SetHelpFunc(func(*cobra.Command, []string) { a.printUsage() })

	flags := cmd.Flags()
	flags.BoolVar(&opts.copyOnlyDates, "copy-only-dates", false, "copy only creation and last-write times")
	flags.StringVar(&opts.configPath, "config", "", "configuration file (copydetails.toml)")
	flags.StringVar(&opts.profilePath, "profile", "", "exclusion profile (profile.lua)")
	flags.StringVar(&opts.backend, "backend", "auto", "metadata backend: auto, exiftool or sidecar")
	flags.BoolVar(&opts.verify, "verify", false, "re-read the destination after writing")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "print debug output")

	return cmd
}

func (a *app) heading(s string) string {
	if a.styled {
		return util.LBL.Render(s)
	}
	return s
}

func (a *app) printUsage() {
	fmt.Fprintln(a.out, a.heading("Usage:"))
	fmt.Fprintln(a.out, "")
	fmt.Fprintln(a.out, "  copydetails [-copy_only_dates] target_file source_file")
	fmt.Fprintln(a.out, "")
	fmt.Fprintln(a.out, a.heading("Flags:"))
	fmt.Fprintln(a.out, "  --copy-only-dates     copy only creation and last-write times")
	fmt.Fprintln(a.out, "  --config <file>       configuration file (copydetails.toml)")
	fmt.Fprintln(a.out, "  --profile <file>      exclusion profile (profile.lua)")
	fmt.Fprintln(a.out, "  --backend <name>      auto, exiftool or sidecar")
	fmt.Fprintln(a.out, "  --verify              re-read the destination after writing")
	fmt.Fprintln(a.out, "  -v, --verbose         print debug output")
}
