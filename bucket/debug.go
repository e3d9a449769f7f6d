package bucket

import (
	"fmt"
	"os"
)

// Debug flag - set to true to revalidate every invariant after each
// structural mutation (compile-time toggle).
const debugChecks = false

// Runtime flag for structural operation logging - controlled by the
// BUCKETKIT_LOG_OPS env var.
var logOps = os.Getenv("BUCKETKIT_LOG_OPS") != ""

// debugLogf logs block lifecycle events when BUCKETKIT_LOG_OPS is set.
func debugLogf(format string, args ...any) {
	if logOps {
		fmt.Fprintf(os.Stderr, "[BUCKET] "+format+"\n", args...)
	}
}
