// Package onnx - adapts ONNX Runtime output tensors into SSD decoder tensor groups.
package onnx

import (
	"os"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

// SharedLibEnv overrides the shared library location.
const SharedLibEnv = "ONNXRUNTIME_SHARED_LIBRARY_PATH"

// ErrRuntimeUnavailable is returned when the ONNX Runtime library cannot be
// found or loaded.
var ErrRuntimeUnavailable = errors.New("onnxruntime shared library unavailable")

var (
	initOnce sync.Once
	initErr  error
)

// SharedLibPath returns the path to the shared library for the current platform.
//
// Returns:
//   - string: The value of ONNXRUNTIME_SHARED_LIBRARY_PATH when set, otherwise
//     the bundled third_party path. Empty for unsupported platforms.
func SharedLibPath() string {
	if p := os.Getenv(SharedLibEnv); p != "" {
		return p
	}

	switch runtime.GOOS {
	case "windows":
		if runtime.GOARCH == "amd64" {
			return "./third_party/onnxruntime.dll"
		}
	case "darwin":
		return "./third_party/libonnxruntime.1.23.0.dylib"
	case "linux":
		if runtime.GOARCH == "arm64" {
			return "./third_party/onnxruntime_arm64.so"
		}
		return "./third_party/onnxruntime.so"
	}
	return ""
}

// Initialize loads the ONNX Runtime library and sets up its environment once
// per process. Later calls return the first result.
//
// Returns:
//   - error: ErrRuntimeUnavailable when the library is missing, or the
//     environment initialisation error.
func Initialize() error {
	initOnce.Do(func() {
		if ort.IsInitialized() {
			return
		}

		libPath := SharedLibPath()
		if libPath == "" {
			initErr = errors.Wrapf(ErrRuntimeUnavailable, "no library for %s/%s", runtime.GOOS, runtime.GOARCH)
			return
		}
		if _, err := os.Stat(libPath); err != nil {
			initErr = errors.Wrapf(ErrRuntimeUnavailable, "%s: %v", libPath, err)
			return
		}

		ort.SetSharedLibraryPath(libPath)
		if err := ort.InitializeEnvironment(); err != nil {
			initErr = errors.Wrap(err, "error initializing ORT environment")
		}
	})
	return initErr
}
