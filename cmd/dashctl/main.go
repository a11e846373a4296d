// dashctl administers the enterprise dashboard statistics store.
//
// Usage:
//
//	dashctl migrate --config configs/config.yaml
//	dashctl seed --force
//	dashctl token --user u1 --org o1 --role admin --ttl 1h
//	dashctl hash-key <api-key>
package main

import (
	"fmt"
	"os"

	"entdash/cmd/dashctl/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
