package config

import (
	"time"

	"clusterfail/internal/discovery"
	"clusterfail/internal/signature"
)

const (
	// DefaultResultsDir is where JUnit-style runners write their reports
	DefaultResultsDir = "build/test-results/test"
	// DefaultMarkdownOut is the default markdown report path
	DefaultMarkdownOut = "FAILURE_CLUSTERS.md"
	// DefaultJSONOut is the default JSON report path
	DefaultJSONOut = "build/failure_clusters.json"
	// DefaultPattern is the default report file name pattern
	DefaultPattern = discovery.DefaultPattern
	// DefaultMaxSignatureLen is the default signature length bound
	DefaultMaxSignatureLen = signature.DefaultMaxLength
	// DefaultConfigFile is read from the working directory when present
	DefaultConfigFile = "clusterfail.yaml"
	// DefaultEnvFile is loaded into the environment when present
	DefaultEnvFile = ".env"

	// DefaultClusterScript is the cluster manager script path
	DefaultClusterScript = "utils/cluster_manager.py"
	// DefaultPython is the interpreter used to run the cluster manager script
	DefaultPython = "python3"
	// DefaultClusterTimeout bounds each cluster manager invocation
	DefaultClusterTimeout = 20 * time.Second
)

// Environment variables read by Load
const (
	EnvResultsDir       = "CLUSTERFAIL_RESULTS_DIR"
	EnvMarkdownOut      = "CLUSTERFAIL_MD_OUT"
	EnvJSONOut          = "CLUSTERFAIL_JSON_OUT"
	EnvPattern          = "CLUSTERFAIL_PATTERN"
	EnvNormalizeNumbers = "CLUSTERFAIL_NORMALIZE_NUMBERS"
	EnvMaxSignatureLen  = "CLUSTERFAIL_MAX_SIGNATURE_LEN"
	EnvClusterScript    = "CLUSTERFAIL_CLUSTER_SCRIPT"
	EnvPython           = "CLUSTERFAIL_PYTHON"
)
