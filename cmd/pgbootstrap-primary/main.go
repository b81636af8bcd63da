package main

import (
	"context"
	"flag"
	"os"

	"github.com/dd0wney/pgbootstrap/pkg/bootstrap"
	"github.com/dd0wney/pgbootstrap/pkg/env"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Show the configuration plan without executing it")
	yes := flag.Bool("yes", false, "Skip the confirmation prompt")
	tuning := flag.String("tuning", "", "YAML file overriding the default replication tuning settings")
	flag.Parse()

	mode := bootstrap.ModeExecute
	if *dryRun {
		mode = bootstrap.ModeSimulate
	}

	os.Exit(bootstrap.Run(context.Background(), env.RolePrimary, bootstrap.Options{
		Mode:                mode,
		TuningOverridesPath: *tuning,
		SkipConfirm:         *yes,
	}))
}
