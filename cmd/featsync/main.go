package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/passportware/featsync/pkg/checkpoint"
	"github.com/passportware/featsync/pkg/configs/connector"
	"github.com/passportware/featsync/pkg/loop"
	"github.com/passportware/featsync/pkg/loop/recurring"
	"github.com/passportware/featsync/pkg/rest"
	"github.com/passportware/featsync/pkg/sync"
	"github.com/passportware/featsync/pkg/transform"
	"github.com/passportware/featsync/pkg/utils/args"
	"github.com/passportware/featsync/pkg/utils/filewatch"
	"github.com/passportware/featsync/pkg/utils/try"
)

func main() {
	logger := log.Default()

	// .env is optional. When present, it feeds the environment overlay.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill, syscall.SIGTERM,
	)
	defer cancel()

	// define command line flags
	//-- path to connector profile
	pconfig := flag.String(
		"config", os.Getenv("FEATSYNC_CONFIG"), "path to connector profile file",
	)
	//-- how to recur
	pinterval := flag.Duration(
		"interval", 0,
		"interval between synchronization runs. 0 runs once and exits.",
	)
	ppolicy := args.Parser(recurring.ParsePolicy)
	flag.Var(
		ppolicy, "policy",
		`run policy (syntax: once|forever[:COOLDOWN]). Overrides -interval.`,
	)
	// parse command line flags
	flag.Parse()

	prof := connector.Default()
	if *pconfig != "" {
		prof = try.To(connector.LoadProfile(*pconfig)).OrFatal(logger)

		// watch profile. When it is edited this process stops, to be
		// restarted with the new profile by its supervisor.
		wctx, cancel, err := filewatch.UntilModifyContext(ctx, *pconfig)
		if err != nil {
			logger.Fatal(err)
		}
		defer cancel()
		ctx = wctx
	}
	prof.OverlayEnviron(os.Getenv)
	if err := prof.Verify(); err != nil {
		logger.Fatal(err)
	}

	source := try.To(rest.NewFeastClient(prof)).OrFatal(logger)
	dest := try.To(rest.NewPassportClient(prof)).OrFatal(logger)

	options := []sync.Option{}
	if prof.Checkpoint != "" {
		options = append(options, sync.WithCheckpoint(checkpoint.At(prof.Checkpoint)))
	}

	pipeline := sync.New(
		source, dest, prof.Feast.DatasetId,
		transform.Context{
			StudyId:        prof.Passport.StudyId,
			ExperimentId:   prof.Passport.ExperimentId,
			OrganizationId: prof.Passport.OrganizationId,
		},
		logger,
		options...,
	)

	var policy recurring.Policy = recurring.Once()
	if 0 < *pinterval {
		policy = recurring.Forever(*pinterval)
	}
	if ppolicy.IsSet() {
		policy = ppolicy.Value()
	}
	policy = recurring.UntilError(policy)

	logger.Printf(
		`start synchronizing dataset "%s" /w policy "%s"`,
		prof.Feast.DatasetId, policy.String(),
	)

	task := recurring.Task[sync.Report](func(ctx context.Context, _ sync.Report) (sync.Report, bool, error) {
		started := time.Now()
		report, err := pipeline.Run(ctx)
		if err != nil {
			return report, false, err
		}
		logger.Printf("%s (takes %s)", report, time.Since(started))
		return report, !report.Skipped, nil
	})

	_, err := loop.Start(ctx, sync.Report{}, task.Applied(policy))
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		logger.Fatal(err, " (loop context is cancelled by: ", context.Cause(ctx), ")")
	}
	logger.Fatalf("synchronization failed: %+v", err)
}
