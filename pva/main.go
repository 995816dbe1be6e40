package main

import (
	"context"
	"flag"
	"os"
	"path"
	"strings"

	"github.com/etnz/portfolio-analytics/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion, from the flags of every subcommand.
func completion() *complete.Command {
	root := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"v":      predict.Nothing,
			"raw":    predict.Nothing,
		},
	}
	for _, c := range cmd.Commands {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		f.VisitAll(func(fl *flag.Flag) {
			switch {
			case isBool(fl):
				sub.Flags[fl.Name] = predict.Nothing
			case fl.Name == "period":
				sub.Flags[fl.Name] = predict.Set{"daily", "weekly", "monthly", "quarterly", "yearly"}
			case fl.Name == "d" || strings.HasSuffix(fl.Name, "start") || strings.HasSuffix(fl.Name, "end"):
				sub.Flags[fl.Name] = predict.Set{"today"}
			default:
				sub.Flags[fl.Name] = predict.Something
			}
		})
		root.Sub[c.Name()] = sub
	}
	return root
}

func main() {
	completion().Complete("pva")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	// Unknown subcommands are looked up as pva-<name> executables.
	if args := flag.Args(); len(args) > 0 && !isRegistered(args[0]) {
		if found, code := cmd.RunExtension(args[0], args[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func isBool(fl *flag.Flag) bool {
	b, ok := fl.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

func isRegistered(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, c := range cmd.Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}
