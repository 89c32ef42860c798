package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mikeftrict/dznshell/config"
	"github.com/mikeftrict/dznshell/model"
	"github.com/mikeftrict/dznshell/multiclient"
	"github.com/mikeftrict/dznshell/render"
	"github.com/mikeftrict/dznshell/synth"
)

func main() {
	var (
		modelFile   = flag.String("model", "", "Path to component model JSON file")
		configFile  = flag.String("config", "", "Path to shell configuration YAML file")
		preset      = flag.String("preset", "", "Named preset: all-mts, all-sts, provides-mts, provides-sts")
		planOnly    = flag.Bool("plan", false, "Print the per-port plan and exit")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *modelFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: shellgen -model <model.json> [-config shell.yaml | -preset name]")
		fmt.Fprintln(os.Stderr, "       shellgen -model <model.json> -plan")
		fmt.Fprintln(os.Stderr, "       shellgen -model <model.json> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			synth.SetLogger(logger)
			multiclient.SetLogger(logger)
		}
	}

	shell, comp, err := synthesize(*modelFile, *configFile, *preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(shell, comp); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *planOnly {
		printPlan(shell, comp)
		return
	}

	fmt.Println(render.Text(shell.Instructions()))
}

func synthesize(modelFile, configFile, preset string) (*synth.Shell, *model.Component, error) {
	data, err := os.ReadFile(modelFile)
	if err != nil {
		return nil, nil, fmt.Errorf("read model: %w", err)
	}
	comp, err := model.DecodeComponent(data)
	if err != nil {
		return nil, nil, err
	}

	cfg, opts, err := loadConfig(configFile, preset)
	if err != nil {
		return nil, nil, err
	}

	shell, err := synth.Synthesize(comp, cfg, opts)
	if err != nil {
		return nil, nil, err
	}
	if err := shell.FinalConstruct(); err != nil {
		return nil, nil, err
	}
	return shell, comp, nil
}

func loadConfig(configFile, preset string) (config.PortConfiguration, synth.Options, error) {
	if configFile != "" {
		sc, err := config.LoadFile(configFile)
		if err != nil {
			return config.PortConfiguration{}, synth.Options{}, err
		}
		return sc.Ports, synth.Options{Facilities: sc.Facilities}, nil
	}

	var (
		cfg config.PortConfiguration
		err error
	)
	switch preset {
	case "", "all-mts":
		cfg, err = config.AllMTS()
	case "all-sts":
		cfg, err = config.AllSTS()
	case "provides-mts":
		cfg, err = config.ProvidesMTSRequiresSTS()
	case "provides-sts":
		cfg, err = config.ProvidesSTSRequiresMTS()
	default:
		err = fmt.Errorf("unknown preset %q", preset)
	}
	return cfg, synth.Options{}, err
}

func printPlan(shell *synth.Shell, comp *model.Component) {
	fmt.Printf("Component: %s\n", comp.Name)
	fmt.Printf("Ports: %d\n\n", len(shell.Ports()))
	for _, pb := range shell.Ports() {
		multi := ""
		if pb.Multi != nil {
			multi = fmt.Sprintf("  multi-client(claim=%s, release=%s, reply=%s)",
				pb.Multi.Claim.Name, pb.Multi.Release.Name, pb.Multi.GrantedReply)
		}
		fmt.Printf("  %-12s %-9s %-4s %-9s%s\n",
			pb.Port.Name, pb.Port.Direction, pb.Semantics, pb.Strategy, multi)
	}
}
