package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/onkernel/sandboxd/lib/descriptor"
	"github.com/onkernel/sandboxd/lib/runtimes"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// errLintFailed is returned after the report has been printed
var errLintFailed = errors.New("lint failed")

type options struct {
	json bool
	out  io.Writer
}

func (o *options) printJSON(v any) error {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &options{out: out}

	cmd := &cobra.Command{
		Use:           "sandboxctl",
		Short:         "Inspect sandbox build descriptors and the runtime catalogue",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "Print machine readable JSON")

	cmd.AddCommand(
		newRuntimesCmd(opts),
		newLintCmd(opts),
		newRenderCmd(opts),
		newEnvCmd(opts),
	)

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w\nRun '%s --help' for usage", err, c.CommandPath())
	})
	return cmd
}

// loadDescriptor accepts a catalogue runtime name or a descriptor file path
func loadDescriptor(arg string) (*descriptor.Descriptor, error) {
	if runtimes.Exists(arg) {
		rt, err := runtimes.Get(arg)
		if err != nil {
			return nil, err
		}
		return rt.Descriptor, nil
	}
	return descriptor.ParseFile(arg)
}

type runtimeRow struct {
	Name       string `json:"name"`
	Image      string `json:"image"`
	BaseImage  string `json:"base_image"`
	User       string `json:"user"`
	SourceFile string `json:"source_file"`
}

func newRuntimesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "runtimes",
		Short: "List the built-in language runtimes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := runtimes.List()
			if err != nil {
				return err
			}
			rows := lo.Map(list, func(rt *runtimes.Runtime, _ int) runtimeRow {
				return runtimeRow{
					Name:       rt.Name,
					Image:      rt.Image(),
					BaseImage:  rt.Descriptor.BaseImage,
					User:       rt.Descriptor.RuntimeUser(),
					SourceFile: rt.Recipe.SourceFile,
				}
			})
			if opts.json {
				return opts.printJSON(rows)
			}

			tw := tabwriter.NewWriter(opts.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tIMAGE\tBASE\tUSER\tSOURCE")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Name, r.Image, r.BaseImage, r.User, r.SourceFile)
			}
			return tw.Flush()
		},
	}
}

type lintResult struct {
	Path     string   `json:"path"`
	Valid    bool     `json:"valid"`
	Digest   string   `json:"digest,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func lint(path string) lintResult {
	res := lintResult{Path: path}
	d, err := loadDescriptor(path)
	if err != nil {
		res.Errors = []string{err.Error()}
		return res
	}
	res.Digest = d.Digest().String()
	res.Warnings = d.Warnings()
	res.Errors = descriptor.Problems(d.Validate())
	res.Valid = len(res.Errors) == 0
	return res
}

func newLintCmd(opts *options) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "lint FILE|RUNTIME...",
		Short: "Parse and validate descriptors",
		Long: `Parse and validate descriptors.

Every problem is reported, not just the first. The command fails when any
descriptor is invalid, or with --strict when any descriptor has warnings.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := lo.Map(args, func(path string, _ int) lintResult { return lint(path) })
			failed := lo.CountBy(results, func(r lintResult) bool {
				return !r.Valid || (strict && len(r.Warnings) > 0)
			})

			if opts.json {
				if err := opts.printJSON(results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					status := "ok"
					if !r.Valid {
						status = "invalid"
					}
					fmt.Fprintf(opts.out, "%s: %s", r.Path, status)
					if r.Digest != "" {
						fmt.Fprintf(opts.out, " (%s)", r.Digest)
					}
					fmt.Fprintln(opts.out)
					for _, e := range r.Errors {
						fmt.Fprintf(opts.out, "  error: %s\n", e)
					}
					for _, w := range r.Warnings {
						fmt.Fprintf(opts.out, "  warning: %s\n", w)
					}
				}
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d descriptors", errLintFailed, failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as failures")
	return cmd
}

func newRenderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "render FILE|RUNTIME",
		Short: "Print the canonical form of a descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDescriptor(args[0])
			if err != nil {
				return err
			}
			if opts.json {
				return opts.printJSON(map[string]any{
					"rendered": d.Render(),
					"digest":   d.Digest().String(),
					"config":   d.ImageConfig(nil),
				})
			}
			text := d.Render()
			if !strings.HasSuffix(text, "\n") {
				text += "\n"
			}
			_, err = io.WriteString(opts.out, text)
			return err
		},
	}
}

func newEnvCmd(opts *options) *cobra.Command {
	var base map[string]string
	cmd := &cobra.Command{
		Use:   "env FILE|RUNTIME",
		Short: "Print the environment a descriptor produces",
		Long: `Print the environment a descriptor produces.

Values inherited from the base image are unknown offline; supply them with
--base to resolve references such as $PATH. Unresolved values are printed
with a comment naming the missing variables.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDescriptor(args[0])
			if err != nil {
				return err
			}
			vars := d.ResolveEnv(base)
			if opts.json {
				return opts.printJSON(vars)
			}
			for _, v := range vars {
				if v.Complete {
					fmt.Fprintf(opts.out, "%s=%s\n", v.Name, v.Value)
					continue
				}
				fmt.Fprintf(opts.out, "%s=%s # missing %s\n", v.Name, v.Value, strings.Join(v.Missing, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&base, "base", nil, "Base image variable as NAME=VALUE (repeatable)")
	return cmd
}
