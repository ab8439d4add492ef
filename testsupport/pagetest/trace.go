package pagetest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
)

// TracePath returns where the trace of the given test is saved. On CI, the
// trace is saved in the artifact directory of the job instead.
func TracePath(dir, testName string) string {
	name := fmt.Sprintf("trace-%s.zip", strings.ReplaceAll(testName, "/", "_"))
	if os.Getenv("CI") == "true" {
		return filepath.Join(os.Getenv("ARTIFACT_DIR"), "trace", name)
	}
	return filepath.Join(dir, name)
}

type failedT interface {
	Failed() bool
	Name() string
}

// saveTrace saves the trace of the session if the test failed and the driver records one
func (l *Lifecycle) saveTrace(t AssertT) {
	tracer, ok := l.driver.(driver.Tracer)
	if !ok || l.TraceDir == "" {
		return
	}
	ft, ok := t.(failedT)
	if !ok || !ft.Failed() {
		return
	}
	tracePath := TracePath(l.TraceDir, ft.Name())
	if err := tracer.SaveTrace(tracePath); err != nil {
		t.Logf("failed to save trace: %v", err)
		return
	}
	t.Logf("saved trace to %s", tracePath)
}
