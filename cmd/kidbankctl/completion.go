package main

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors suggests values for flags that take a fixed vocabulary
var flagPredictors = map[string]complete.Predictor{
	"type": predict.Set{"CHECKING", "SAVINGS", "MARKET"},
}

// completion describes the command tree for shell completion.
// It is run with COMP_LINE set by the shell and exits once done.
func completion(root *flag.FlagSet, cmds []subcommands.Command) *complete.Command {
	cmd := &complete.Command{
		Sub:   make(map[string]*complete.Command, len(cmds)),
		Flags: flagsOf(root),
	}
	for _, c := range cmds {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		cmd.Sub[c.Name()] = &complete.Command{Flags: flagsOf(fs)}
	}
	cmd.Sub["help"] = &complete.Command{}
	cmd.Sub["flags"] = &complete.Command{}
	return cmd
}

func flagsOf(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}
