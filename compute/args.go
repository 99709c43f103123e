package compute

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhissng/precompute/adapters/environ"
	"github.com/abhissng/precompute/adapters/log"
	"github.com/abhissng/precompute/blame"
	"github.com/abhissng/precompute/result"
)

// PreComputeArgs aggregates the validated task configuration resolved from
// the TEE session environment. It is built once per task and never mutated
// afterwards.
type PreComputeArgs struct {
	OutputDir string
	// Dataset related fields
	IsDatasetRequired bool
	// Input files
	InputFiles []string
	// Bulk processing
	BulkSliceSize int
	Datasets      []Dataset
}

// lookupVar reads a session variable from the provider, mapping absence
// (including empty values) to the given failure.
func lookupVar(env environ.Provider, name string, missing blame.Blame) result.Result[string] {
	if value, ok := env.Lookup(name); ok {
		return result.NewSuccess(&value)
	}
	return result.NewFailure[string](missing)
}

// ReadArgs resolves the full task configuration from the provider,
// collecting every validation failure instead of stopping at the first one.
//
// The output directory is the single fatal prerequisite: when it is absent
// the returned args are empty and the failure list holds exactly one entry.
// Every other problem is recorded and resolution continues, so datasets that
// are fully specified survive a misconfigured sibling. Within one dataset
// index the fields are read in the fixed order filename, URL, checksum, key,
// and the first missing field records one failure and skips the rest of that
// index.
func ReadArgs(env environ.Provider, logger *log.Log) (PreComputeArgs, []blame.Blame) {
	logger.Info("Reading pre-compute arguments from session environment")
	exitCauses := make([]blame.Blame, 0)

	outputDir, exitCause := lookupVar(env, EnvPreComputeOut, blame.OutputPathMissing()).Value()
	if exitCause != nil {
		logger.Error("Failed to read output directory", log.String("var", EnvPreComputeOut))
		return PreComputeArgs{}, []blame.Blame{exitCause}
	}

	isDatasetRequired := false
	if raw, exitCause := lookupVar(env, EnvIsDatasetRequired, blame.IsDatasetRequiredMissing()).Value(); exitCause != nil {
		logger.Error("Failed to read dataset required flag", log.String("var", EnvIsDatasetRequired))
		exitCauses = append(exitCauses, exitCause)
	} else {
		switch strings.ToLower(*raw) {
		case "true":
			isDatasetRequired = true
		case "false":
			isDatasetRequired = false
		default:
			logger.Error("Invalid boolean for dataset required flag", log.String("value", *raw))
			exitCauses = append(exitCauses, blame.IsDatasetRequiredMissing())
		}
	}

	bulkSliceSize := 0
	if raw, exitCause := lookupVar(env, EnvBulkSliceSize, blame.UnknownIssue()).Value(); exitCause != nil {
		logger.Error("Failed to read bulk slice size", log.String("var", EnvBulkSliceSize))
		exitCauses = append(exitCauses, exitCause)
	} else if n, err := strconv.Atoi(*raw); err != nil || n < 0 {
		logger.Error("Invalid numeric bulk slice size", log.String("value", *raw))
		exitCauses = append(exitCauses, blame.UnknownIssue())
	} else {
		bulkSliceSize = n
	}

	// Index 0 is the primary dataset and participates only when required.
	startIndex := 1
	if isDatasetRequired {
		startIndex = 0
	}
	datasets := make([]Dataset, 0, bulkSliceSize+1)
	for i := startIndex; i <= bulkSliceSize; i++ {
		dataset, exitCause := readDataset(env, logger, i)
		if exitCause != nil {
			exitCauses = append(exitCauses, exitCause)
			continue
		}
		datasets = append(datasets, dataset)
	}
	logger.Info("Datasets resolved", log.Int("count", len(datasets)))

	inputFilesNumber := 0
	if raw, exitCause := lookupVar(env, EnvInputFilesNumber, blame.InputFilesNumberMissing()).Value(); exitCause != nil {
		logger.Error("Failed to read input files number", log.String("var", EnvInputFilesNumber))
		exitCauses = append(exitCauses, exitCause)
	} else if n, err := strconv.Atoi(*raw); err != nil || n < 0 {
		logger.Error("Invalid numeric input files number", log.String("value", *raw))
		exitCauses = append(exitCauses, blame.InputFilesNumberMissing())
	} else {
		inputFilesNumber = n
	}

	inputFiles := make([]string, 0, inputFilesNumber)
	for i := 1; i <= inputFilesNumber; i++ {
		url, exitCause := lookupVar(env, InputFileURLVar(i), blame.InputFileURLMissing(i)).Value()
		if exitCause != nil {
			logger.Error("Missing input file URL", log.Int("index", i))
			exitCauses = append(exitCauses, exitCause)
			continue
		}
		inputFiles = append(inputFiles, *url)
	}
	logger.Info("Input file URLs resolved", log.Int("count", len(inputFiles)))

	return PreComputeArgs{
		OutputDir:         *outputDir,
		IsDatasetRequired: isDatasetRequired,
		InputFiles:        inputFiles,
		BulkSliceSize:     bulkSliceSize,
		Datasets:          datasets,
	}, exitCauses
}

// readDataset resolves the descriptor at one index. The first missing field
// wins: a missing filename is attributed to the synthetic "dataset_<index>"
// identifier, later fields to the already-parsed filename. The reporting
// consumer relies on this asymmetry.
func readDataset(env environ.Provider, logger *log.Log, index int) (Dataset, blame.Blame) {
	syntheticID := fmt.Sprintf("dataset_%d", index)

	filename, exitCause := lookupVar(env, DatasetFilenameVar(index), blame.DatasetFilenameMissing(syntheticID)).Value()
	if exitCause != nil {
		logger.Error("Missing dataset filename", log.Int("index", index))
		return Dataset{}, exitCause
	}

	url, exitCause := lookupVar(env, DatasetURLVar(index), blame.DatasetURLMissing(*filename)).Value()
	if exitCause != nil {
		logger.Error("Missing dataset URL", log.Int("index", index))
		return Dataset{}, exitCause
	}

	checksum, exitCause := lookupVar(env, DatasetChecksumVar(index), blame.DatasetChecksumMissing(*filename)).Value()
	if exitCause != nil {
		logger.Error("Missing dataset checksum", log.Int("index", index))
		return Dataset{}, exitCause
	}

	key, exitCause := lookupVar(env, DatasetKeyVar(index), blame.DatasetKeyMissing(*filename)).Value()
	if exitCause != nil {
		logger.Error("Missing dataset key", log.Int("index", index))
		return Dataset{}, exitCause
	}

	return Dataset{
		URL:      *url,
		Checksum: *checksum,
		Filename: *filename,
		Key:      *key,
	}, nil
}
