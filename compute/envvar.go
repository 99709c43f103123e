// Package compute implements the dataset acquisition pipeline of the
// pre-compute stage: configuration resolution from the TEE session
// environment, encrypted dataset download and verification, decryption,
// input file staging, and the orchestration across them.
package compute

import "fmt"

// Fixed TEE session variable names.
const (
	EnvPreComputeOut       = "IEXEC_PRE_COMPUTE_OUT"
	EnvIsDatasetRequired   = "IS_DATASET_REQUIRED"
	EnvBulkSliceSize       = "IEXEC_BULK_SLICE_SIZE"
	EnvInputFilesNumber    = "IEXEC_INPUT_FILES_NUMBER"
	EnvTaskID              = "IEXEC_TASK_ID"
	EnvWorkerHost          = "WORKER_HOST_ENV_VAR"
	EnvSignTeeChallengeKey = "SIGN_TEE_CHALLENGE_PRIVATE_KEY"
)

// Indexed dataset variable names. Index 0 denotes the primary dataset and
// uses the unindexed form; bulk datasets use 1-based indexed forms.

// DatasetURLVar returns the dataset URL variable name for the given index.
func DatasetURLVar(index int) string {
	if index == 0 {
		return "IEXEC_DATASET_URL"
	}
	return fmt.Sprintf("IEXEC_DATASET_%d_URL", index)
}

// DatasetChecksumVar returns the dataset checksum variable name for the given index.
func DatasetChecksumVar(index int) string {
	if index == 0 {
		return "IEXEC_DATASET_CHECKSUM"
	}
	return fmt.Sprintf("IEXEC_DATASET_%d_CHECKSUM", index)
}

// DatasetFilenameVar returns the dataset filename variable name for the given index.
func DatasetFilenameVar(index int) string {
	if index == 0 {
		return "IEXEC_DATASET_FILENAME"
	}
	return fmt.Sprintf("IEXEC_DATASET_%d_FILENAME", index)
}

// DatasetKeyVar returns the dataset key variable name for the given index.
func DatasetKeyVar(index int) string {
	if index == 0 {
		return "IEXEC_DATASET_KEY"
	}
	return fmt.Sprintf("IEXEC_DATASET_%d_KEY", index)
}

// InputFileURLVar returns the input file URL variable name for the given
// 1-based index.
func InputFileURLVar(index int) string {
	return fmt.Sprintf("IEXEC_INPUT_FILE_URL_%d", index)
}
