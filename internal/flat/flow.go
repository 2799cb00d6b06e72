package flat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DefaultFlowPath is used when the caller passes an empty flow path.
const DefaultFlowPath = "./flow/"

// NormalizeFlowPath turns p into an absolute directory path ending in a
// separator and creates the directory.
func NormalizeFlowPath(p string) (string, error) {
	if p == "" {
		p = DefaultFlowPath
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving flow path %q: %w", p, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("creating flow directory %q: %w", abs, err)
	}
	if !strings.HasSuffix(abs, string(filepath.Separator)) {
		abs += string(filepath.Separator)
	}
	return abs, nil
}

func (a *API) flowPath(p string) string {
	norm, err := NormalizeFlowPath(p)
	if err != nil {
		a.log.Warn("flow_path_unusable", zap.String("flow_path", p), zap.Error(err))
		return p
	}
	return norm
}
