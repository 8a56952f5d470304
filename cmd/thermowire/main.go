// Command thermowire encodes thermostat configuration documents into the
// envelope strings sent to thermostat firmware.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
