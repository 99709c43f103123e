package compute_test

import (
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhissng/precompute/adapters/environ"
	"github.com/abhissng/precompute/blame"
	"github.com/abhissng/precompute/compute"
	"github.com/abhissng/precompute/utils/cryptography"
)

// serveFiles exposes a set of paths with fixed contents and returns the
// server base URL.
func serveFiles(t *testing.T, files map[string][]byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		content, ok := files[r.URL.Path]
		if !ok {
			w.WriteHeader(nethttp.StatusNotFound)
			return
		}
		_, _ = w.Write(content)
	}))
	t.Cleanup(server.Close)
	return server
}

func newApp(t *testing.T, env environ.Map) *compute.App {
	t.Helper()
	return compute.NewApp(chainTaskID, env, testLogger())
}

func TestRunAbortsWhenOutputPathMissing(t *testing.T) {
	env := basicEnv()
	delete(env, compute.EnvPreComputeOut)
	addPrimaryDatasetEnv(env)

	exitCauses := newApp(t, env).Run()

	require.Len(t, exitCauses, 1)
	assert.Equal(t, blame.ErrorOutputPathMissing, exitCauses[0].FetchErrCode())
}

func TestRunAbortsWhenOutputFolderNotFound(t *testing.T) {
	env := basicEnv()
	env[compute.EnvPreComputeOut] = filepath.Join(t.TempDir(), "does-not-exist")
	// A resolution failure alongside: the folder check still wins alone.
	env[compute.EnvIsDatasetRequired] = "maybe"

	exitCauses := newApp(t, env).Run()

	require.Len(t, exitCauses, 1)
	assert.Equal(t, blame.ErrorOutputFolderNotFound, exitCauses[0].FetchErrCode())
}

func TestRunStagesDatasetAndInputFiles(t *testing.T) {
	plaintext := []byte("plain dataset content")
	content, key, checksum := encryptedDataset(t, plaintext)
	inputOne := []byte("first input")
	inputTwo := []byte("second input")
	server := serveFiles(t, map[string][]byte{
		"/dataset.enc": content,
		"/input-1.txt": inputOne,
		"/input-2.txt": inputTwo,
	})

	outDir := t.TempDir()
	env := environ.Map{
		compute.EnvPreComputeOut:       outDir,
		compute.EnvIsDatasetRequired:   "true",
		compute.EnvBulkSliceSize:       "0",
		compute.EnvInputFilesNumber:    "2",
		compute.DatasetURLVar(0):       server.URL + "/dataset.enc",
		compute.DatasetChecksumVar(0):  checksum,
		compute.DatasetFilenameVar(0):  datasetFilename,
		compute.DatasetKeyVar(0):       key,
		compute.InputFileURLVar(1):     server.URL + "/input-1.txt",
		compute.InputFileURLVar(2):     server.URL + "/input-2.txt",
	}

	exitCauses := newApp(t, env).Run()
	require.Empty(t, exitCauses)

	staged, err := os.ReadFile(filepath.Join(outDir, datasetFilename))
	require.NoError(t, err)
	assert.Equal(t, plaintext, staged)

	for path, want := range map[string][]byte{
		server.URL + "/input-1.txt": inputOne,
		server.URL + "/input-2.txt": inputTwo,
	} {
		got, err := os.ReadFile(filepath.Join(outDir, cryptography.Sha256HexFromString(path)))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestRunIsolatesFailingBulkDataset(t *testing.T) {
	files := map[string][]byte{}
	keys := map[int]string{}
	checksums := map[int]string{}
	plaintexts := map[int][]byte{}
	for i := 1; i <= 3; i++ {
		plaintexts[i] = []byte(fmt.Sprintf("bulk dataset %d", i))
		content, key, checksum := encryptedDataset(t, plaintexts[i])
		files[fmt.Sprintf("/bulk-%d.enc", i)] = content
		keys[i] = key
		checksums[i] = checksum
	}
	server := serveFiles(t, files)

	outDir := t.TempDir()
	env := environ.Map{
		compute.EnvPreComputeOut:     outDir,
		compute.EnvIsDatasetRequired: "false",
		compute.EnvBulkSliceSize:     "3",
		compute.EnvInputFilesNumber:  "0",
	}
	for i := 1; i <= 3; i++ {
		env[compute.DatasetURLVar(i)] = server.URL + fmt.Sprintf("/bulk-%d.enc", i)
		env[compute.DatasetChecksumVar(i)] = checksums[i]
		env[compute.DatasetFilenameVar(i)] = fmt.Sprintf("bulk-%d.txt", i)
		env[compute.DatasetKeyVar(i)] = keys[i]
	}
	delete(env, compute.DatasetChecksumVar(2))

	exitCauses := newApp(t, env).Run()

	require.Len(t, exitCauses, 1)
	assert.Equal(t, blame.ErrorDatasetChecksumMissing, exitCauses[0].FetchErrCode())
	assert.Equal(t, "bulk-2.txt", exitCauses[0].FetchContext())

	for _, i := range []int{1, 3} {
		staged, err := os.ReadFile(filepath.Join(outDir, fmt.Sprintf("bulk-%d.txt", i)))
		require.NoError(t, err)
		assert.Equal(t, plaintexts[i], staged)
	}
	_, err := os.Stat(filepath.Join(outDir, "bulk-2.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunRecordsChecksumMismatchWithoutWritingDataset(t *testing.T) {
	content, key, _ := encryptedDataset(t, []byte("plain dataset content"))
	server := serveFiles(t, map[string][]byte{"/dataset.enc": content})

	outDir := t.TempDir()
	env := environ.Map{
		compute.EnvPreComputeOut:      outDir,
		compute.EnvIsDatasetRequired:  "true",
		compute.EnvBulkSliceSize:      "0",
		compute.EnvInputFilesNumber:   "0",
		compute.DatasetURLVar(0):      server.URL + "/dataset.enc",
		compute.DatasetChecksumVar(0): "0xdeadbeef",
		compute.DatasetFilenameVar(0): datasetFilename,
		compute.DatasetKeyVar(0):      key,
	}

	exitCauses := newApp(t, env).Run()

	require.Len(t, exitCauses, 1)
	assert.Equal(t, blame.ErrorInvalidDatasetChecksum, exitCauses[0].FetchErrCode())
	_, err := os.Stat(filepath.Join(outDir, datasetFilename))
	assert.True(t, os.IsNotExist(err))
}

func TestRunRecordsDecryptionFailureAfterChecksumPasses(t *testing.T) {
	content, _, checksum := encryptedDataset(t, []byte("plain dataset content"))
	server := serveFiles(t, map[string][]byte{"/dataset.enc": content})

	outDir := t.TempDir()
	env := environ.Map{
		compute.EnvPreComputeOut:      outDir,
		compute.EnvIsDatasetRequired:  "true",
		compute.EnvBulkSliceSize:      "0",
		compute.EnvInputFilesNumber:   "0",
		compute.DatasetURLVar(0):      server.URL + "/dataset.enc",
		compute.DatasetChecksumVar(0): checksum,
		compute.DatasetFilenameVar(0): datasetFilename,
		compute.DatasetKeyVar(0):      "bm90LXRoZS1yaWdodC1rZXk=",
	}

	exitCauses := newApp(t, env).Run()

	require.Len(t, exitCauses, 1)
	assert.Equal(t, blame.ErrorDatasetDecryptionFailed, exitCauses[0].FetchErrCode())
}

func TestRunRecordsSaveFailureWhenDatasetPathNotWritable(t *testing.T) {
	content, key, checksum := encryptedDataset(t, []byte("plain dataset content"))
	server := serveFiles(t, map[string][]byte{"/dataset.enc": content})

	outDir := t.TempDir()
	// A directory already occupies the dataset's target path.
	require.NoError(t, os.Mkdir(filepath.Join(outDir, datasetFilename), 0o755))

	env := environ.Map{
		compute.EnvPreComputeOut:      outDir,
		compute.EnvIsDatasetRequired:  "true",
		compute.EnvBulkSliceSize:      "0",
		compute.EnvInputFilesNumber:   "0",
		compute.DatasetURLVar(0):      server.URL + "/dataset.enc",
		compute.DatasetChecksumVar(0): checksum,
		compute.DatasetFilenameVar(0): datasetFilename,
		compute.DatasetKeyVar(0):      key,
	}

	exitCauses := newApp(t, env).Run()

	require.Len(t, exitCauses, 1)
	assert.Equal(t, blame.ErrorSavingPlainDatasetFailed, exitCauses[0].FetchErrCode())
}

func TestRunDownloadsRemainingInputFilesAfterFailure(t *testing.T) {
	first := []byte("first input")
	third := []byte("third input")
	server := serveFiles(t, map[string][]byte{
		"/input-1.txt": first,
		"/input-3.txt": third,
	})

	outDir := t.TempDir()
	env := environ.Map{
		compute.EnvPreComputeOut:     outDir,
		compute.EnvIsDatasetRequired: "false",
		compute.EnvBulkSliceSize:     "0",
		compute.EnvInputFilesNumber:  "3",
		compute.InputFileURLVar(1):   server.URL + "/input-1.txt",
		compute.InputFileURLVar(2):   server.URL + "/input-2.txt",
		compute.InputFileURLVar(3):   server.URL + "/input-3.txt",
	}

	exitCauses := newApp(t, env).Run()

	require.Len(t, exitCauses, 1)
	assert.Equal(t, blame.ErrorInputFileDownloadFailed, exitCauses[0].FetchErrCode())
	assert.Equal(t, server.URL+"/input-2.txt", exitCauses[0].FetchContext())

	for path, want := range map[string][]byte{
		server.URL + "/input-1.txt": first,
		server.URL + "/input-3.txt": third,
	} {
		got, err := os.ReadFile(filepath.Join(outDir, cryptography.Sha256HexFromString(path)))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestRunAccumulatesResolutionAndDownloadFailures(t *testing.T) {
	server := serveFiles(t, map[string][]byte{"/input-1.txt": []byte("first input")})

	outDir := t.TempDir()
	env := environ.Map{
		compute.EnvPreComputeOut:     outDir,
		compute.EnvIsDatasetRequired: "false",
		compute.EnvBulkSliceSize:     "0",
		compute.EnvInputFilesNumber:  "3",
		compute.InputFileURLVar(1):   server.URL + "/input-1.txt",
		// Index 2 is undeclared, index 3 is declared but unreachable.
		compute.InputFileURLVar(3): "http://127.0.0.1:1/input-3.txt",
	}

	exitCauses := newApp(t, env).Run()

	require.Len(t, exitCauses, 2)
	assert.Equal(t, blame.ErrorAtLeastOneInputFileURLMissing, exitCauses[0].FetchErrCode())
	assert.Equal(t, "2", exitCauses[0].FetchContext())
	assert.Equal(t, blame.ErrorInputFileDownloadFailed, exitCauses[1].FetchErrCode())
}

func TestRunIsDeterministicAcrossRuns(t *testing.T) {
	plaintext := []byte("plain dataset content")
	content, key, checksum := encryptedDataset(t, plaintext)
	server := serveFiles(t, map[string][]byte{
		"/dataset.enc": content,
		"/input-1.txt": []byte("first input"),
	})

	runOnce := func(outDir string) {
		env := environ.Map{
			compute.EnvPreComputeOut:      outDir,
			compute.EnvIsDatasetRequired:  "true",
			compute.EnvBulkSliceSize:      "0",
			compute.EnvInputFilesNumber:   "1",
			compute.DatasetURLVar(0):      server.URL + "/dataset.enc",
			compute.DatasetChecksumVar(0): checksum,
			compute.DatasetFilenameVar(0): datasetFilename,
			compute.DatasetKeyVar(0):      key,
			compute.InputFileURLVar(1):    server.URL + "/input-1.txt",
		}
		require.Empty(t, newApp(t, env).Run())
	}

	dirA, dirB := t.TempDir(), t.TempDir()
	runOnce(dirA)
	runOnce(dirB)

	entries, err := os.ReadDir(dirA)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		a, err := os.ReadFile(filepath.Join(dirA, entry.Name()))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dirB, entry.Name()))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}
