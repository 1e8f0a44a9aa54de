package main

import (
	"errors"
	"os"

	"github.com/haukened/rr-email/internal/email/common/log"
)

const (
	version = "0.1.0-dev"
	appName = "rr-emailcheck"
)

func main() {
	err := Execute()
	_ = log.Sync()
	if err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 when addresses were rejected and 1 for operational errors.
func exitCode(err error) int {
	if errors.Is(err, errInvalidAddresses) {
		return 2
	}
	return 1
}
