// Command screenbind is an authoring-time tool for screen binding
// expressions: validate expressions against the safe function allow-list,
// evaluate or render them against a YAML binding context, and list the
// published function signatures.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mwaldron/go-screenbind/pkg/screenbind"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "validate":
		err = runValidate(os.Args[2:])
	case "eval":
		err = runEval(os.Args[2:])
	case "render":
		err = runRender(os.Args[2:])
	case "functions":
		err = runFunctions()
	case "version":
		fmt.Println("screenbind version 0.1.0")
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: screenbind <command> [arguments]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  validate <expr>...              Check expressions against the allow-lists")
	fmt.Fprintln(os.Stderr, "  eval -context <file> <expr>     Evaluate an expression against a context")
	fmt.Fprintln(os.Stderr, "  render -context <file> <file>   Render a template document")
	fmt.Fprintln(os.Stderr, "  functions                       List the safe function signatures")
	fmt.Fprintln(os.Stderr, "  version                         Show version information")
}

func runValidate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("validate requires at least one expression")
	}

	failed := false
	for _, expr := range args {
		issues := screenbind.ValidateExpression(expr, nil)
		if len(issues) == 0 {
			fmt.Printf("ok: %s\n", expr)
			continue
		}
		failed = true
		for _, issue := range issues {
			fmt.Printf("%s: %s: %s\n", issue.Code, expr, issue.Message)
		}
	}

	if failed {
		os.Exit(1)
	}
	return nil
}

func runEval(args []string) error {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	contextPath := fs.String("context", "", "YAML file with state/inputs/context/trace_id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("eval requires exactly one expression")
	}

	ctx, err := loadContext(*contextPath)
	if err != nil {
		return err
	}

	value, err := screenbind.EvaluateExpression(fs.Arg(0), ctx, nil)
	if err != nil {
		return err
	}

	return printYAML(value)
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	contextPath := fs.String("context", "", "YAML file with state/inputs/context/trace_id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("render requires exactly one template file")
	}

	ctx, err := loadContext(*contextPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	var template interface{}
	if err := yaml.Unmarshal(data, &template); err != nil {
		return fmt.Errorf("parsing template %s: %w", fs.Arg(0), err)
	}

	return printYAML(screenbind.RenderTemplate(template, ctx))
}

func runFunctions() error {
	for _, sig := range screenbind.SafeFunctionRegistry().Describe() {
		params := make([]string, len(sig.Params))
		for i, param := range sig.Params {
			name := param.Name
			if param.Optional {
				name += "?"
			}
			params[i] = fmt.Sprintf("%s: %s", name, param.Type)
		}
		fmt.Printf("%s(%s) -> %s\n    %s\n", sig.Name, strings.Join(params, ", "), sig.Returns, sig.Description)
	}
	return nil
}

// contextFile is the on-disk shape of a binding context fixture.
type contextFile struct {
	State   map[string]interface{} `yaml:"state"`
	Inputs  map[string]interface{} `yaml:"inputs"`
	Context map[string]interface{} `yaml:"context"`
	TraceID string                 `yaml:"trace_id"`
}

func loadContext(path string) (*screenbind.BindingContext, error) {
	ctx := screenbind.NewBindingContext()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var file contextFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing context %s: %w", path, err)
		}
		if file.State != nil {
			ctx.State = file.State
		}
		if file.Inputs != nil {
			ctx.Inputs = file.Inputs
		}
		if file.Context != nil {
			ctx.Context = file.Context
		}
		ctx.TraceID = file.TraceID
	}

	// Tooling runs get a trace id even when the fixture omits one.
	if ctx.TraceID == "" {
		ctx.TraceID = uuid.NewString()
	}

	return ctx, nil
}

func printYAML(value interface{}) error {
	out, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}
