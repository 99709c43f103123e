package blame

import "strconv"

/*
** Constructors for every failure the pre-compute stage can report.
 */

// OutputPathMissing is the failure for an absent output directory variable.
func OutputPathMissing() Blame {
	return NewBasicBlame(ErrorOutputPathMissing)
}

// OutputFolderNotFound is the failure for an output directory that does not
// exist on disk.
func OutputFolderNotFound() Blame {
	return NewBasicBlame(ErrorOutputFolderNotFound)
}

// IsDatasetRequiredMissing is the failure for an absent or unparseable
// dataset-required flag.
func IsDatasetRequiredMissing() Blame {
	return NewBasicBlame(ErrorIsDatasetRequiredMissing)
}

// DatasetURLMissing is the failure for an absent dataset URL variable.
func DatasetURLMissing(datasetID string) Blame {
	return NewBlame(ErrorDatasetURLMissing, datasetID)
}

// DatasetChecksumMissing is the failure for an absent dataset checksum variable.
func DatasetChecksumMissing(datasetID string) Blame {
	return NewBlame(ErrorDatasetChecksumMissing, datasetID)
}

// DatasetFilenameMissing is the failure for an absent dataset filename variable.
func DatasetFilenameMissing(datasetID string) Blame {
	return NewBlame(ErrorDatasetFilenameMissing, datasetID)
}

// DatasetKeyMissing is the failure for an absent dataset key variable.
func DatasetKeyMissing(datasetID string) Blame {
	return NewBlame(ErrorDatasetKeyMissing, datasetID)
}

// DatasetDownloadFailed is the failure for an encrypted dataset that could
// not be downloaded from its URL or from any gateway.
func DatasetDownloadFailed(datasetID string) Blame {
	return NewBlame(ErrorDatasetDownloadFailed, datasetID)
}

// InvalidDatasetChecksum is the failure for a downloaded dataset whose
// digest does not match the expected checksum.
func InvalidDatasetChecksum(datasetID string) Blame {
	return NewBlame(ErrorInvalidDatasetChecksum, datasetID)
}

// DatasetDecryptionFailed is the failure for any dataset decryption problem:
// bad key encoding, bad key or payload length, or a cipher/padding error.
// The conditions are deliberately not distinguished.
func DatasetDecryptionFailed(datasetID string) Blame {
	return NewBlame(ErrorDatasetDecryptionFailed, datasetID)
}

// SavingPlainDatasetFailed is the failure for a plain dataset that could not
// be written to the output directory.
func SavingPlainDatasetFailed() Blame {
	return NewBasicBlame(ErrorSavingPlainDatasetFailed)
}

// InputFilesNumberMissing is the failure for an absent or unparseable
// input-file count variable.
func InputFilesNumberMissing() Blame {
	return NewBasicBlame(ErrorInputFilesNumberMissing)
}

// InputFileURLMissing is the failure for an absent input file URL variable
// at the given 1-based index.
func InputFileURLMissing(index int) Blame {
	return NewBlame(ErrorAtLeastOneInputFileURLMissing, strconv.Itoa(index))
}

// InputFileDownloadFailed is the failure for an input file that could not be
// downloaded. The URL identifies the failure in logs; the wire message is a
// fixed text.
func InputFileDownloadFailed(url string) Blame {
	return NewBlame(ErrorInputFileDownloadFailed, url)
}

// TaskIDMissing is the failure for an absent chain task ID variable.
func TaskIDMissing() Blame {
	return NewBasicBlame(ErrorTaskIDMissing)
}

// TeeChallengeKeyMissing is the failure for an absent TEE challenge private
// key variable.
func TeeChallengeKeyMissing() Blame {
	return NewBasicBlame(ErrorTeeChallengeKeyMissing)
}

// UnknownIssue is the catch-all failure for conditions not otherwise classified.
func UnknownIssue() Blame {
	return NewBasicBlame(ErrorFailedUnknownIssue)
}
