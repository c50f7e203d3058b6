package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/girgen/internal/codegen/enums"
	"github.com/roach88/girgen/internal/errors"
	"github.com/roach88/girgen/internal/library"
)

// EnumReport describes how one enumeration would be generated.
type EnumReport struct {
	Name     string           `json:"name" yaml:"name"`
	Object   string           `json:"object" yaml:"object"`
	CType    string           `json:"c_type" yaml:"c_type"`
	Version  *library.Version `json:"version,omitempty" yaml:"version,omitempty"`
	Flags    enums.Flags      `json:"flags" yaml:"flags"`
	Variants []enums.Variant  `json:"variants" yaml:"variants"`
}

// InspectResult lists the reports in configuration order.
type InspectResult struct {
	Enumerations []EnumReport `json:"enumerations" yaml:"enumerations"`
}

func (r InspectResult) renderText(w io.Writer) {
	if len(r.Enumerations) == 0 {
		fmt.Fprintln(w, "No enumerations selected")
		return
	}
	for i, e := range r.Enumerations {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s)", e.Name, e.CType)
		if flags := flagNames(e.Flags); len(flags) > 0 {
			fmt.Fprintf(w, " [%s]", strings.Join(flags, ", "))
		}
		fmt.Fprintln(w)
		for _, v := range e.Variants {
			fmt.Fprintf(w, "  %s = %s  %s", v.Name, v.Value, v.CName)
			if v.Version != nil {
				fmt.Fprintf(w, "  since %s", v.Version)
			}
			if v.DeprecatedVersion != nil {
				fmt.Fprintf(w, "  deprecated %s", v.DeprecatedVersion)
			}
			fmt.Fprintln(w)
		}
	}
}

func flagNames(f enums.Flags) []string {
	var names []string
	if f.Display {
		names = append(names, "display")
	}
	if f.ErrorDomain {
		names = append(names, "error_domain")
	}
	if f.DynamicType {
		names = append(names, "dynamic_type")
	}
	return names
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [NAME...]",
		Short: "Show the selected enumerations and their variants",
		Long: `Show, for every selected enumeration, the impl groups it gets and its
canonical variants after alias, ignore and duplicate-value handling.

NAME may be the enumeration name (Align) or the configured object name
(Gtk.Align). Nothing is written.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args, cmd)
		},
	}

	addPathFlags(cmd, false)

	return cmd
}

func runInspect(opts *RootOptions, names []string, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}

	sel, _ := enums.Select(s.env)

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = false
	}

	var result InspectResult
	for _, e := range sel.Enums {
		if len(names) > 0 {
			matched := false
			for _, key := range []string{e.Enum.Name, e.Object.Name} {
				if _, ok := wanted[key]; ok {
					wanted[key] = true
					matched = true
				}
			}
			if !matched {
				continue
			}
		}

		variants, err := enums.Resolve(e.Enum.Members, e.Object.Members)
		if err != nil {
			return generateError(s.out, errors.Wrapf(err, "enumeration %s", e.Enum.Name))
		}
		result.Enumerations = append(result.Enumerations, EnumReport{
			Name:     e.Enum.Name,
			Object:   e.Object.Name,
			CType:    e.Enum.CType,
			Version:  e.Enum.Version,
			Flags:    e.Flags,
			Variants: variants,
		})
	}

	for _, n := range names {
		if !wanted[n] {
			return s.out.Fail(ErrCodeNotFound, fmt.Sprintf("enumeration %q is not selected for generation", n), nil)
		}
	}

	return s.out.Success(result)
}
