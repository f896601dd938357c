// Command hmsolve is a thin CLI around pkg/solver: read a constraint file
// and a lattice file, run the pipeline, print the resulting substitution
// or the failing error. Argument parsing is hand-rolled from os.Args
// rather than reaching for a flag-parsing library.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/hmcoerce/internal/config"
	"github.com/funvibe/hmcoerce/internal/oracle"
	"github.com/funvibe/hmcoerce/pkg/solver"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s solve <lattice.yaml> <constraints.yaml>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s -version\n", os.Args[0])
}

func main() {
	log.SetFlags(0)          // Disable timestamp in logs
	log.SetOutput(os.Stderr) // Log to stderr, not stdout (stdout is the substitution output)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "-version", "--version":
		fmt.Println(config.Version)
		return
	case "solve":
		if len(os.Args) != 4 {
			usage()
			os.Exit(2)
		}
		runSolve(os.Args[2], os.Args[3])
	default:
		usage()
		os.Exit(2)
	}
}

func runSolve(latticePath, constraintsPath string) {
	runID := uuid.NewString()
	log.Printf("[%s] solving %s against lattice %s", runID, constraintsPath, latticePath)

	lat, err := oracle.LoadLatticeFile(latticePath)
	if err != nil {
		fail(runID, fmt.Errorf("loading lattice: %w", err))
	}

	cs, err := loadConstraintFile(constraintsPath)
	if err != nil {
		fail(runID, fmt.Errorf("loading constraints: %w", err))
	}

	subst, err := solver.Solve(cs, lat)
	if err != nil {
		fail(runID, err)
	}

	printResult(subst)
}

func fail(runID string, err error) {
	if colorStderr() {
		log.Printf("\x1b[31m[%s] error:\x1b[0m %v", runID, err)
	} else {
		log.Printf("[%s] error: %v", runID, err)
	}
	os.Exit(1)
}

func printResult(subst solver.Subst) {
	ids := make([]solver.VarID, 0, len(subst))
	for id := range subst {
		ids = append(ids, id)
	}
	sortVarIDs(ids)
	for _, id := range ids {
		fmt.Printf("t%d = %s\n", id, subst[id].String())
	}
}

func sortVarIDs(ids []solver.VarID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

func colorStderr() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// constraintFile is the on-disk YAML shape accepted by the "solve"
// subcommand; it only supports base-atom and variable leaves plus named
// constructor applications, enough to drive the pipeline from a file
// without a general-purpose parser.
type constraintFile struct {
	Constraints []constraintEntry `yaml:"constraints"`
}

type constraintEntry struct {
	Kind  string   `yaml:"kind"`
	Left  typeYAML `yaml:"left"`
	Right typeYAML `yaml:"right"`
}

type typeYAML struct {
	Var  *int64     `yaml:"var,omitempty"`
	Base string     `yaml:"base,omitempty"`
	Ctor string     `yaml:"ctor,omitempty"`
	Args []typeYAML `yaml:"args,omitempty"`
}

func (t typeYAML) toType() (solver.Type, error) {
	switch {
	case t.Var != nil:
		return solver.Var{ID: solver.VarID(*t.Var)}, nil
	case t.Base != "":
		return solver.BaseAtom{Base: t.Base}, nil
	case t.Ctor != "":
		args := make([]solver.Type, len(t.Args))
		for i, a := range t.Args {
			at, err := a.toType()
			if err != nil {
				return nil, err
			}
			args[i] = at
		}
		return solver.Cons{Ctor: t.Ctor, Args: args}, nil
	default:
		return nil, fmt.Errorf("type entry has neither var, base, nor ctor set")
	}
}

func loadConstraintFile(path string) ([]solver.Constraint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file constraintFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	out := make([]solver.Constraint, len(file.Constraints))
	for i, e := range file.Constraints {
		l, err := e.Left.toType()
		if err != nil {
			return nil, fmt.Errorf("constraint %d left side: %w", i, err)
		}
		r, err := e.Right.toType()
		if err != nil {
			return nil, fmt.Errorf("constraint %d right side: %w", i, err)
		}
		switch e.Kind {
		case "eq", "=":
			out[i] = solver.Eq(l, r)
		case "sub", "<:":
			out[i] = solver.Sub(l, r)
		default:
			return nil, fmt.Errorf("constraint %d: unknown kind %q", i, e.Kind)
		}
	}
	return out, nil
}
