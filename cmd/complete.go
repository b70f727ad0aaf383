package cmd

import (
	"flag"

	"github.com/etnz/pcschart/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete handles the shell completion requests, it exits when the shell
// asked for completion, and returns otherwise.
//
// Install with COMP_INSTALL=1 pcv, uninstall with COMP_UNINSTALL=1 pcv.
func Complete(c *subcommands.Commander, name string) {
	Completion(c).Complete(name)
}

// Completion returns the completion tree of the commands registered in c.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		root.Sub[cmd.Name()] = &complete.Command{
			Flags: flagPredictors(fs),
			Args:  argPredictor(cmd.Name()),
		}
	})
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		flags[f.Name] = flagPredictor(f)
	})
	return flags
}

func flagPredictor(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch f.Name {
	case "o":
		return predict.Files("*")
	case "data":
		return predict.Files("*.json")
	case "config":
		return predict.Files("*.yaml")
	case "session-file":
		return predict.Files("*.json")
	case "dir":
		return predict.Dirs("*")
	case "format":
		return predict.Set{"png", "svg"}
	}
	return predict.Something
}

func argPredictor(command string) complete.Predictor {
	switch command {
	case "topic":
		topics, err := docs.GetAllTopics()
		if err != nil {
			return predict.Nothing
		}
		return predict.Set(append(topics, "*"))
	case "describe":
		return predict.Set{"allocation", "profit"}
	case "help":
		return predict.Something
	}
	return predict.Nothing
}
