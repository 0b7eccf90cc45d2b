package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "naftah",
	Short: "Naftah interpreter execution-context driver",
	Long: `naftah drives the Naftah language execution context: it builds a root
scope, runs the host-class loader against the configured classpath, and
exposes the resulting scope/call-stack machinery to a hosting evaluator.

This command does not itself parse or evaluate Naftah source — grammar,
parsing, and expression evaluation are external collaborators. It exists to
exercise and inspect the execution context: scope resolution order, call and
loop stack discipline, and host-class bootstrap behavior.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
