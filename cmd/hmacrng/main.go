package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rayozzie/hmacrng"
	"github.com/rayozzie/hmacrng/pkg/trace"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  hmacrng [-n BYTES] [-hex] [-verbose]

Options:
  -n BYTES   Number of random bytes to generate (default: 32)
  -hex       Write output as lowercase hex instead of raw bytes
  -verbose   Enable detailed (debug/trace) output
`)
	os.Exit(1)
}

func main() {
	flag.Usage = usage
	count := flag.Int("n", 32, "number of random bytes to generate")
	hexOut := flag.Bool("hex", false, "write output as hex instead of raw bytes")
	verbose := flag.Bool("verbose", false, "enable detailed (debug/trace) output")
	flag.Parse()

	if *count < 0 {
		log.Fatalf("Error: byte count must not be negative, got %d", *count)
	}

	level := trace.LogLevelNormal
	if *verbose {
		level = trace.LogLevelVerbose
	}
	tracer := trace.NewTracer("HMACRNG", level)
	ctx := trace.WithContext(context.Background(), tracer)

	g := hmacrng.NewDefault()
	defer g.Close()

	g.Reseed(ctx)
	if !g.IsSeeded() {
		log.Fatalf("Error: %s failed to gather enough entropy to seed", g.Name())
	}
	tracer.Debugf("seeded %s", g.Name())

	// Generate in bounded chunks so large requests do not buffer in memory.
	buf := make([]byte, 64*1024)
	remaining := *count
	for remaining > 0 {
		chunk := buf
		if remaining < len(buf) {
			chunk = buf[:remaining]
		}
		if err := g.Randomize(ctx, chunk); err != nil {
			log.Fatalf("Error: %v", err)
		}
		if *hexOut {
			fmt.Print(hex.EncodeToString(chunk))
		} else {
			if _, err := os.Stdout.Write(chunk); err != nil {
				log.Fatalf("Error: failed to write output: %v", err)
			}
		}
		remaining -= len(chunk)
	}
	if *hexOut {
		fmt.Println()
	}
}
