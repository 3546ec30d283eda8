// Command legalease talks to a LegalEase backend from the terminal:
//
//	go run ./cmd/legalease upload ./lease.pdf
//	go run ./cmd/legalease chat --document ./lease.pdf
//	go run ./cmd/legalease generate nda --disclosing-party Acme ...
package main

import (
	"fmt"
	"os"

	"legalease-client/internal/shared/telemetry"
)

func main() {
	telemetry.SetOutput(os.Stderr)
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
