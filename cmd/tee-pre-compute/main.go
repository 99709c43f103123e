// Command tee-pre-compute runs the dataset acquisition stage inside the
// enclave: it stages decrypted datasets and input files into the output
// directory, and reports any exit causes to the worker API.
package main

import (
	"os"

	"github.com/abhissng/precompute/adapters/environ"
	"github.com/abhissng/precompute/adapters/log"
	"github.com/abhissng/precompute/api/worker"
	"github.com/abhissng/precompute/blame"
	"github.com/abhissng/precompute/compute"
)

// Exit codes surfaced to the enclave supervisor.
const (
	exitSuccess         = 0
	exitReportedFailure = 1
	exitReportingFailed = 2
	exitTaskIDMissing   = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := log.NewBasicLogger(true)
	defer func() {
		_ = logger.Close()
	}()

	env := environ.NewViper()

	chainTaskID, ok := env.Lookup(compute.EnvTaskID)
	if !ok {
		// Without a task id there is no reporting endpoint to address.
		exitCause := blame.TaskIDMissing()
		logger.Error("Task ID missing, nothing to report against",
			log.String("cause", exitCause.FetchErrCode().String()),
			log.String("var", compute.EnvTaskID))
		return exitTaskIDMissing
	}

	logger.Info("Starting pre-compute stage", log.String("chainTaskId", chainTaskID))

	app := compute.NewApp(chainTaskID, env, logger)
	exitCauses := app.Run()
	if len(exitCauses) == 0 {
		logger.Info("Pre-compute stage completed", log.String("chainTaskId", chainTaskID))
		return exitSuccess
	}

	for _, exitCause := range exitCauses {
		logger.Error("Pre-compute failure",
			log.String("chainTaskId", chainTaskID),
			log.String("cause", exitCause.FetchErrCode().String()),
			log.String("message", exitCause.FetchMessage()))
	}

	// The session provisioner places the worker authorization in the TEE
	// challenge slot; challenge signing itself happens outside this stage.
	authorization, ok := env.Lookup(compute.EnvSignTeeChallengeKey)
	if !ok {
		exitCause := blame.TeeChallengeKeyMissing()
		logger.Error("Cannot report exit causes",
			log.String("cause", exitCause.FetchErrCode().String()),
			log.String("var", compute.EnvSignTeeChallengeKey))
		return exitReportingFailed
	}

	client := worker.NewClientFromEnviron(env, logger)
	if exitCause := client.SendExitCauses(authorization, chainTaskID, exitCauses); exitCause != nil {
		logger.Error("Reporting exit causes failed", log.Blame(exitCause))
		return exitReportingFailed
	}

	return exitReportedFailure
}
