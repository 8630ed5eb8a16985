package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingOutput is returned when the resolved configuration has no output path.
	ErrMissingOutput = zerr.New("output path is required")

	// ErrInvalidSetting is returned when a setting has a value of the wrong type.
	ErrInvalidSetting = zerr.New("invalid setting")

	// ErrConfigReadFailed is returned when a config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigCycle is returned when config files reference each other in a loop.
	ErrConfigCycle = zerr.New("config file references form a cycle")

	// ErrInputVanished is returned when a file disappears between expansion and fingerprinting.
	ErrInputVanished = zerr.New("input file vanished before it could be fingerprinted")

	// ErrFingerprintFailed is returned when the fingerprint cannot be computed.
	ErrFingerprintFailed = zerr.New("failed to compute fingerprint")

	// ErrBundleFailed is returned when the external build collaborator fails.
	ErrBundleFailed = zerr.New("failed to bundle sources")

	// ErrWriteFailed is returned when the artifact cannot be written.
	ErrWriteFailed = zerr.New("failed to write artifact")

	// ErrBuildFailed is returned by the coordinator for every failed build.
	ErrBuildFailed = zerr.New("build failed")

	// ErrMinifierUnavailable is returned when minification is enabled without a minifier.
	ErrMinifierUnavailable = zerr.New("minify is enabled but no minifier is configured")

	// ErrToolFailed is returned when an external transpiler or minifier command fails.
	ErrToolFailed = zerr.New("external tool failed")
)
