package compute

import (
	"os"
	"path/filepath"

	"github.com/abhissng/precompute/adapters/environ"
	"github.com/abhissng/precompute/adapters/log"
	"github.com/abhissng/precompute/blame"
	"github.com/abhissng/precompute/utils/cryptography"
)

// App orchestrates the pre-compute pipeline for one task:
//
//  1. resolve the task configuration from the session environment
//  2. verify the output folder exists
//  3. download, verify, decrypt and save every resolved dataset
//  4. download every input file
//
// Output-path and output-folder problems abort the whole run with a single
// failure; every dataset or input file problem is isolated to the item it
// concerns and recorded in the accumulated failure list.
type App struct {
	chainTaskID string
	env         environ.Provider
	logger      *log.Log
	downloader  *Downloader
	args        PreComputeArgs
}

// AppOption defines a functional option for configuring an App.
type AppOption func(*App)

// WithDownloader overrides the dataset downloader.
func WithDownloader(downloader *Downloader) AppOption {
	return func(a *App) {
		a.downloader = downloader
	}
}

// NewApp creates an App for the given task.
func NewApp(chainTaskID string, env environ.Provider, logger *log.Log, opts ...AppOption) *App {
	app := &App{
		chainTaskID: chainTaskID,
		env:         env,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.downloader == nil {
		app.downloader = NewDownloader(logger)
	}
	return app
}

// Run executes the complete pipeline and returns the ordered failure list.
// A nil or empty list means success. The run always terminates and never
// panics across a dataset boundary: one dataset's failure does not prevent
// its siblings, and input files are always attempted in full.
func (a *App) Run() []blame.Blame {
	args, exitCauses := ReadArgs(a.env, a.logger)
	if args.OutputDir == "" {
		// The single fatal prerequisite: nowhere to write results.
		return exitCauses
	}
	a.args = args

	if exitCause := a.checkOutputFolder(); exitCause != nil {
		return []blame.Blame{exitCause}
	}

	for i := range a.args.Datasets {
		dataset := &a.args.Datasets[i]
		if exitCause := a.processDataset(dataset); exitCause != nil {
			exitCauses = append(exitCauses, exitCause)
		}
	}

	exitCauses = append(exitCauses, a.downloadInputFiles()...)

	if len(exitCauses) > 0 {
		return exitCauses
	}
	return nil
}

// processDataset runs download, checksum verification, decryption and the
// plain file write for one dataset, returning its first failure.
func (a *App) processDataset(dataset *Dataset) blame.Blame {
	encryptedContent, exitCause := a.downloader.DownloadEncrypted(dataset, a.chainTaskID).Value()
	if exitCause != nil {
		return exitCause
	}

	plainContent, exitCause := dataset.Decrypt(*encryptedContent).Value()
	if exitCause != nil {
		return exitCause
	}

	return a.savePlainDatasetFile(*plainContent, dataset.Filename)
}

// checkOutputFolder verifies the resolved output directory exists on disk.
func (a *App) checkOutputFolder() blame.Blame {
	outputDir := a.args.OutputDir
	a.logger.Info("Checking output folder",
		log.String("chainTaskId", a.chainTaskID), log.String("path", outputDir))

	if info, err := os.Stat(outputDir); err == nil && info.IsDir() {
		return nil
	}

	a.logger.Error("Output folder not found",
		log.String("chainTaskId", a.chainTaskID), log.String("path", outputDir))
	return blame.OutputFolderNotFound()
}

// downloadInputFiles downloads every input file URL into the output
// directory under a deterministic name derived from the URL itself. All
// URLs are attempted regardless of individual failures.
func (a *App) downloadInputFiles() []blame.Blame {
	exitCauses := make([]blame.Blame, 0)

	for _, url := range a.args.InputFiles {
		a.logger.Info("Downloading input file",
			log.String("chainTaskId", a.chainTaskID), log.String("url", url))

		content, err := a.downloader.client.Get(url)
		if err != nil {
			a.logger.Error("Input file download failed", log.String("url", url), log.Err(err))
			exitCauses = append(exitCauses, blame.InputFileDownloadFailed(url))
			continue
		}

		filename := cryptography.Sha256HexFromString(url)
		path := filepath.Join(a.args.OutputDir, filename)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			a.logger.Error("Input file write failed", log.String("path", path), log.Err(err))
			exitCauses = append(exitCauses, blame.InputFileDownloadFailed(url))
		}
	}

	return exitCauses
}

// savePlainDatasetFile writes the decrypted dataset into the output
// directory under the dataset's configured filename.
func (a *App) savePlainDatasetFile(plainContent []byte, plainDatasetFilename string) blame.Blame {
	path := filepath.Join(a.args.OutputDir, plainDatasetFilename)
	a.logger.Info("Saving plain dataset file",
		log.String("chainTaskId", a.chainTaskID), log.String("path", path))

	if err := os.WriteFile(path, plainContent, 0o644); err != nil {
		a.logger.Error("Saving plain dataset failed", log.String("path", path), log.Err(err))
		return blame.SavingPlainDatasetFailed()
	}
	return nil
}

// Args exposes the resolved configuration, for reporting and tests.
func (a *App) Args() PreComputeArgs {
	return a.args
}
