package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/naftah-lang/naftah/internal/bootstrap"
	"github.com/naftah-lang/naftah/internal/hostscan"
	"github.com/naftah-lang/naftah/internal/interpreter"
)

var (
	classScanCompletions bool
	classScanStats       bool
)

var classScanCmd = &cobra.Command{
	Use:   "classscan",
	Short: "Run the host-class loader and report what it found",
	Long: `classscan forces a host-class scan (bypassing any cache) and reports what
it found. By default, or with --stats, it prints the size of each class and
function table of the result (the class-name and qualifier tables are not
counted). Run with --completions to list every accessible class name and
Arabic alias instead; pass both flags to get both reports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		enumerator := demoEnumerator()
		interp, err := interpreter.New(enumerator, nil)
		if err != nil {
			return err
		}
		// Always scan, whatever NAFTAH_SCAN_CLASSPATH says, and never read
		// or write the cache file.
		interp.Coordinator = bootstrap.NewCoordinator(enumerator, true, bootstrap.WithForceBootstrap(true))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		interp.Bootstrap(ctx, false)
		ok, err := interp.Coordinator.Await(ctx)
		if err != nil {
			exitWithError("bootstrap did not complete: %v", err)
			return nil
		}
		if !ok {
			exitWithError("bootstrap failed: classpath scan did not succeed")
			return nil
		}

		if classScanCompletions {
			printCompletions(interp)
		}
		if classScanStats || !classScanCompletions {
			printStats(interp)
		}
		return nil
	},
}

func init() {
	classScanCmd.Flags().BoolVar(&classScanCompletions, "completions", false, "list accessible classes and aliases")
	classScanCmd.Flags().BoolVar(&classScanStats, "stats", false, "print scan result sizes")
	rootCmd.AddCommand(classScanCmd)
}

func printCompletions(interp *interpreter.Interpreter) {
	completions := interp.Coordinator.GetCompletions()
	sort.Strings(completions)
	for _, name := range completions {
		fmt.Println(name)
	}
}

func printStats(interp *interpreter.Interpreter) {
	stats := interp.Coordinator.Stats()
	fmt.Println(strings.Repeat("-", 32))
	fmt.Printf("classes:              %d\n", stats.Classes)
	fmt.Printf("accessible classes:   %d\n", stats.AccessibleClasses)
	fmt.Printf("instantiable classes: %d\n", stats.InstantiableClasses)
	fmt.Printf("jvm functions:        %d\n", stats.JvmFunctions)
	fmt.Printf("builtin functions:    %d\n", stats.BuiltinFunctions)
	fmt.Printf("arabic aliases:       %d\n", stats.ArabicAliases)
	fmt.Println(strings.Repeat("-", 32))
}

// demoEnumerator registers a small, fixed set of host classes so the
// classscan command has something concrete to report without requiring a
// real external classpath.
func demoEnumerator() *hostscan.ReflectEnumerator {
	return &hostscan.ReflectEnumerator{
		Provider: map[string]any{
			"host.Greeter": &demoGreeter{},
			"host.Tally":   &demoTally{},
		},
		Aliases: map[string]string{
			"host.Greeter": "المرحب",
		},
		BuiltinBridge: map[string][]hostscan.MethodDescriptor{
			"host.Tally": {
				{Receiver: "host.Tally", Method: "reset", ReturnType: "void"},
			},
		},
	}
}

type demoGreeter struct{}

// Greet returns a greeting for name, standing in for a reflected host
// method an evaluator could dispatch a qualified call to.
func (g *demoGreeter) Greet(name string) string {
	return "Hello, " + name
}

type demoTally struct {
	count int
}

func (t *demoTally) Increment() { t.count++ }
func (t *demoTally) Count() int { return t.count }
