// Command peloton-pack assembles a season JSON file into the
// base64-encoded, gzip-compressed wire blob the config channel serves.
// Producer-side tooling; the app itself only ever decodes.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"peloton/internal/codec"
	"peloton/internal/wire"
)

func must(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	var (
		in      = flag.String("in", "season.json", "season JSON file (wire message shape)")
		out     = flag.String("out", "-", "output path for the base64 blob, or '-' for stdout")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	raw, err := os.ReadFile(*in)
	must(err)

	var season wire.CyclingData
	if err := json.Unmarshal(raw, &season); err != nil {
		must(fmt.Errorf("decode %s: %w", *in, err))
	}

	blob, err := codec.EncodeString(&season)
	must(err)

	// decode it back as a self-check before shipping
	if _, err := codec.DecodeString(blob); err != nil {
		must(fmt.Errorf("self-check failed: %w", err))
	}

	if *verbose {
		_, _ = fmt.Fprintf(os.Stderr, "packed %d teams, %d riders, %d races (%d bytes base64)\n",
			len(season.Teams), len(season.Riders), len(season.Races), len(blob))
	}

	if *out == "-" {
		fmt.Println(blob)
		return
	}
	must(os.WriteFile(*out, []byte(blob), 0o644))
}
