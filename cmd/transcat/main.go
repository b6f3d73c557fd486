// Command transcat builds and queries a transport catalogue: make-base
// ingests stop/bus declarations and a routing model, persisting both to a
// binary file; process-requests answers Stop/Bus/Map/Route queries against
// a previously built file.
package main

import (
	"os"

	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).With().Timestamp().Logger()

	root := newRootCommand(logger)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
