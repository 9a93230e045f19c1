// Package xenv reads process-wide environment configuration once and caches
// it, the way mebo's package-level defaults are resolved a single time
// rather than re-parsed on every call.
package xenv

import (
	"os"
	"sync"

	"github.com/xisf-go/libxisf/compress"
)

const compressionEnvVar = "LIBXISF_COMPRESSION"

var (
	once         sync.Once
	codecOverride compress.Type
	hasOverride  bool
)

// CodecOverride returns the codec named by the LIBXISF_COMPRESSION
// environment variable, if set and recognized, parsed exactly once for the
// lifetime of the process.
func CodecOverride() (compress.Type, bool) {
	once.Do(func() {
		raw, ok := os.LookupEnv(compressionEnvVar)
		if !ok || raw == "" {
			return
		}

		t, ok := compress.ParseType(raw)
		if !ok {
			return
		}

		codecOverride = t
		hasOverride = true
	})

	return codecOverride, hasOverride
}

// resetForTest clears the cached override so tests can exercise different
// environment values. Not exported: production callers never need to
// re-read the environment mid-process.
func resetForTest() {
	once = sync.Once{}
	hasOverride = false
	codecOverride = compress.None
}
