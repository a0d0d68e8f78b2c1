package testutils

import (
	"github.com/fgrosse/zaptest"
	"github.com/solo-io/changelog-generator/contextutils"
	"go.uber.org/zap"

	. "github.com/onsi/ginkgo/v2"
)

// SetupLog sends every log line, debug included, to the GinkgoWriter so it is only
// shown for failing specs.
func SetupLog() {
	zaptest.Level = zap.DebugLevel
	logger := zaptest.LoggerWriter(GinkgoWriter)
	contextutils.SetFallbackLogger(logger.Sugar())
}
