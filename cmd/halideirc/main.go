// Package main is a small compiler-driver CLI over pkg/halideir: it picks a
// named fixture expression and runs the simplifier, bounds analysis, or
// domain solver over it, printing the result. It exists to exercise the
// library end to end; it is not part of the symbolic reasoning core itself.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/halide-lang/halide-ir/pkg/halideir"
)

var verbosity int

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "halideirc",
		Short: "Drive the halideir simplifier, bounds analysis, and domain solver",
	}
	root.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 0, "diagnostic verbosity (0 = silent)")
	root.AddCommand(newSimplifyCmd(), newBoundsCmd(), newDomainCmd())
	return root
}

func newSimplifyCmd() *cobra.Command {
	var expr string
	cmd := &cobra.Command{
		Use:   "simplify",
		Short: "Run the algebraic simplifier over an expression built from demo fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, ok := demoExpr(expr)
			if !ok {
				return fmt.Errorf("unknown --expr fixture %q", expr)
			}
			before := e
			after := halideir.SimplifyExpr(e)
			printRewrite(cmd, before, after)
			return nil
		},
	}
	cmd.Flags().StringVar(&expr, "expr", "add-fold", "fixture name (see demoExpr)")
	return cmd
}

func newBoundsCmd() *cobra.Command {
	var expr string
	cmd := &cobra.Command{
		Use:   "bounds",
		Short: "Infer an InfInterval bound for an expression built from demo fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, ok := demoExpr(expr)
			if !ok {
				return fmt.Errorf("unknown --expr fixture %q", expr)
			}
			iv := halideir.BoundsOf(e)
			printInterval(cmd, iv)
			return nil
		},
	}
	cmd.Flags().StringVar(&expr, "expr", "add-fold", "fixture name (see demoExpr)")
	return cmd
}

func newDomainCmd() *cobra.Command {
	var expr string
	cmd := &cobra.Command{
		Use:   "domain",
		Short: "Run domain inference over one of the worked demo scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, ok := demoScenario(expr)
			if !ok {
				return fmt.Errorf("unknown --expr scenario %q", expr)
			}
			domains := halideir.DomainInference(scenario.args, scenario.body, scenario.lookup)
			for d := halideir.DomainValid; d <= halideir.DomainComputable; d++ {
				fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", d)
				for i, name := range scenario.args {
					printDim(cmd, name, domains[d].Dims[i])
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&expr, "expr", "in-x-y", "scenario name (see demoScenario)")
	return cmd
}

func printRewrite(cmd *cobra.Command, before, after halideir.Expr) {
	bold := color.New(color.Bold)
	bold.Fprintln(cmd.OutOrStdout(), "before:")
	fmt.Fprintln(cmd.OutOrStdout(), "  ", exprString(before))
	bold.Fprintln(cmd.OutOrStdout(), "after:")
	fmt.Fprintln(cmd.OutOrStdout(), "  ", exprString(after))
}

func printInterval(cmd *cobra.Command, iv halideir.InfInterval) {
	line := iv.String()
	if iv.Exact {
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), line)
	} else {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), line+" (widened)")
	}
}

func printDim(cmd *cobra.Command, name string, iv halideir.DomInterval) {
	fmt.Fprintf(cmd.OutOrStdout(), "  %s: ", name)
	printInterval(cmd, iv)
}
