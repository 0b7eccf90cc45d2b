package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naftah-lang/naftah/internal/ast"
	"github.com/naftah-lang/naftah/internal/declare"
	"github.com/naftah-lang/naftah/internal/errors"
	"github.com/naftah-lang/naftah/internal/hostscan"
	"github.com/naftah-lang/naftah/internal/interpreter"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Exercise the execution context end to end",
	Long: `run builds an interpreter, boot-straps it, and drives a small scripted
sequence of scope/call-stack operations to demonstrate name resolution order.
It does not parse or execute Naftah source files — that is the evaluator's
job, an external collaborator this module does not include.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")

		interp, err := interpreter.New(&hostscan.ReflectEnumerator{}, map[string][]*declare.Builtin{
			"length": {declare.NewBuiltin("length", 1, false, nil)},
		})
		if err != nil {
			exitWithError("failed to construct interpreter: %v", err)
			return nil
		}

		interp.Bootstrap(context.Background(), false)
		if _, err := interp.Coordinator.Await(context.Background()); err != nil {
			exitWithError("bootstrap did not complete: %v", err)
			return nil
		}

		root := interp.Root
		if err := root.DefineVariable("greeting", declare.NewVariable("greeting", declare.TypeMeta{Name: "string"}), false); err != nil {
			exitWithError("failed to declare greeting: %v", err)
			return nil
		}

		callScope, err := interp.Registry.RegisterContext(root)
		if err != nil {
			exitWithError("failed to open call scope: %v", err)
			return nil
		}
		callID := callScope.BeginCallScope("greet")
		if verbose {
			fmt.Printf("opened call scope %s\n", callID)
		}

		resolution := interp.ResolveFunction(callScope, "length")
		if !resolution.Found() {
			exitWithError("expected length to resolve via built-ins")
			return nil
		}
		fmt.Printf("resolved \"length\" to %d builtin overload(s)\n", len(resolution.Builtins))

		if _, ok := callScope.ResolveVariable("greeting"); ok {
			fmt.Println("greeting resolved from the enclosing scope")
		} else {
			fmt.Println("greeting is unset")
		}

		// Demonstrate how an unsafe lookup failure becomes a user-facing
		// diagnostic: GetVariable's NameNotFoundError is wrapped with a
		// source position and rendered the way a real parse error would be.
		const demoSource = "greet(farewell)"
		if _, _, err := callScope.GetVariable("farewell", false); err != nil {
			compilerErr := errors.NewRuntimeCompilerError(err, ast.Position{Line: 1, Column: 7}, demoSource, "")
			fmt.Println(compilerErr.Format(false))
		}

		if _, ok := interp.Registry.DeregisterContext(callScope.Depth()); !ok {
			exitWithError("failed to tear down call scope")
			return nil
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
