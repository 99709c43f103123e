package blame

import (
	"fmt"
	"strings"

	"github.com/abhissng/precompute/utils/types"
)

// Cause codes for the pre-compute stage. Each code is the exact cause tag
// the worker API expects on the wire.
const (
	ErrorAtLeastOneInputFileURLMissing types.ErrorCode = "PRE_COMPUTE_AT_LEAST_ONE_INPUT_FILE_URL_MISSING"
	ErrorDatasetChecksumMissing        types.ErrorCode = "PRE_COMPUTE_DATASET_CHECKSUM_MISSING"
	ErrorDatasetDecryptionFailed       types.ErrorCode = "PRE_COMPUTE_DATASET_DECRYPTION_FAILED"
	ErrorDatasetDownloadFailed         types.ErrorCode = "PRE_COMPUTE_DATASET_DOWNLOAD_FAILED"
	ErrorDatasetFilenameMissing        types.ErrorCode = "PRE_COMPUTE_DATASET_FILENAME_MISSING"
	ErrorDatasetKeyMissing             types.ErrorCode = "PRE_COMPUTE_DATASET_KEY_MISSING"
	ErrorDatasetURLMissing             types.ErrorCode = "PRE_COMPUTE_DATASET_URL_MISSING"
	ErrorFailedUnknownIssue            types.ErrorCode = "PRE_COMPUTE_FAILED_UNKNOWN_ISSUE"
	ErrorInputFileDownloadFailed       types.ErrorCode = "PRE_COMPUTE_INPUT_FILE_DOWNLOAD_FAILED"
	ErrorInputFilesNumberMissing       types.ErrorCode = "PRE_COMPUTE_INPUT_FILES_NUMBER_MISSING"
	ErrorInvalidDatasetChecksum        types.ErrorCode = "PRE_COMPUTE_INVALID_DATASET_CHECKSUM"
	ErrorInvalidTeeSignature           types.ErrorCode = "PRE_COMPUTE_INVALID_TEE_SIGNATURE"
	ErrorIsDatasetRequiredMissing      types.ErrorCode = "PRE_COMPUTE_IS_DATASET_REQUIRED_MISSING"
	ErrorOutputFolderNotFound          types.ErrorCode = "PRE_COMPUTE_OUTPUT_FOLDER_NOT_FOUND"
	ErrorOutputPathMissing             types.ErrorCode = "PRE_COMPUTE_OUTPUT_PATH_MISSING"
	ErrorSavingPlainDatasetFailed      types.ErrorCode = "PRE_COMPUTE_SAVING_PLAIN_DATASET_FAILED"
	ErrorTaskIDMissing                 types.ErrorCode = "PRE_COMPUTE_TASK_ID_MISSING"
	ErrorTeeChallengeKeyMissing        types.ErrorCode = "PRE_COMPUTE_TEE_CHALLENGE_PRIVATE_KEY_MISSING"
	ErrorWorkerAddressMissing          types.ErrorCode = "PRE_COMPUTE_WORKER_ADDRESS_MISSING"
)

// messageFormats maps each cause code to its message format. Formats with a
// %s verb consume the failure context. These texts are a compatibility
// surface of the worker API and must not be reworded.
var messageFormats = map[types.ErrorCode]string{
	ErrorAtLeastOneInputFileURLMissing: "input file URL %s is missing",
	ErrorDatasetChecksumMissing:        "Dataset checksum related environment variable is missing for dataset %s",
	ErrorDatasetDecryptionFailed:       "Failed to decrypt dataset %s",
	ErrorDatasetDownloadFailed:         "Failed to download encrypted dataset file for dataset %s",
	ErrorDatasetFilenameMissing:        "Dataset filename related environment variable is missing for dataset %s",
	ErrorDatasetKeyMissing:             "Dataset key related environment variable is missing for dataset %s",
	ErrorDatasetURLMissing:             "Dataset URL related environment variable is missing for dataset %s",
	ErrorFailedUnknownIssue:            "Unexpected error occurred",
	ErrorInputFileDownloadFailed:       "Input files download failed",
	ErrorInputFilesNumberMissing:       "Input files number related environment variable is missing",
	ErrorInvalidDatasetChecksum:        "Invalid dataset checksum for dataset %s",
	ErrorInvalidTeeSignature:           "Invalid TEE signature",
	ErrorIsDatasetRequiredMissing:      "IS_DATASET_REQUIRED environment variable is missing",
	// Same text as ErrorInputFilesNumberMissing: the reporting endpoint has
	// always received this exact message for the folder cause.
	ErrorOutputFolderNotFound:     "Input files number related environment variable is missing",
	ErrorOutputPathMissing:        "Output path related environment variable is missing",
	ErrorSavingPlainDatasetFailed: "Failed to write plain dataset file",
	ErrorTaskIDMissing:            "Task ID related environment variable is missing",
	ErrorTeeChallengeKeyMissing:   "TEE challenge private key related environment variable is missing",
	ErrorWorkerAddressMissing:     "Worker address related environment variable is missing",
}

// renderMessage renders the message for a cause code from its fixed format.
// Unknown codes fall back to the code itself so a miswired cause still
// produces a reportable pair.
func renderMessage(errCode types.ErrorCode, context string) string {
	format, ok := messageFormats[errCode]
	if !ok {
		return errCode.String()
	}
	if strings.Contains(format, "%s") {
		return fmt.Sprintf(format, context)
	}
	return format
}
