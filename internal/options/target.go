package options

import (
	"os"
	"runtime"
)

// DefaultTargetEnv names the environment variable that overrides the
// host-native target triple.
const DefaultTargetEnv = "MOVE_FUZZ_DEFAULT_TARGET"

// archTriples maps GOARCH to the architecture component of a target triple.
var archTriples = map[string]string{
	"amd64":   "x86_64",
	"386":     "i686",
	"arm64":   "aarch64",
	"arm":     "armv7",
	"riscv64": "riscv64gc",
	"ppc64le": "powerpc64le",
	"ppc64":   "powerpc64",
	"s390x":   "s390x",
	"mips64":  "mips64",
	"loong64": "loongarch64",
	"wasm":    "wasm32",
}

// osTriples maps GOOS to the vendor-os-env tail of a target triple.
var osTriples = map[string]string{
	"linux":   "unknown-linux-gnu",
	"darwin":  "apple-darwin",
	"windows": "pc-windows-msvc",
	"freebsd": "unknown-freebsd",
	"netbsd":  "unknown-netbsd",
	"openbsd": "unknown-openbsd",
	"android": "linux-android",
	"illumos": "unknown-illumos",
	"js":      "unknown-unknown",
	"wasip1":  "wasip1",
}

// DefaultTarget returns the target triple that --target defaults to.
// The value of MOVE_FUZZ_DEFAULT_TARGET wins when set; otherwise the
// triple is derived from the host's GOOS and GOARCH.
func DefaultTarget() string {
	if triple := os.Getenv(DefaultTargetEnv); triple != "" {
		return triple
	}
	return hostTriple(runtime.GOOS, runtime.GOARCH)
}

// hostTriple derives a target triple from a GOOS/GOARCH pair.
func hostTriple(goos, goarch string) string {
	arch, ok := archTriples[goarch]
	if !ok {
		arch = goarch
	}
	tail, ok := osTriples[goos]
	if !ok {
		tail = "unknown-" + goos
	}
	if goos == "linux" && goarch == "arm" {
		tail = "unknown-linux-gnueabihf"
	}
	return arch + "-" + tail
}
