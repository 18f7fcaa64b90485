// Command aethersense-replay drives the pipeline over a bounded fixture
// file and prints one JSON Decision per line to stdout, for offline
// replay against golden CSI captures.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli"

	"github.com/aethersense/aethersense/internal/aetherr"
	"github.com/aethersense/aethersense/internal/config"
	"github.com/aethersense/aethersense/internal/metrics"
	"github.com/aethersense/aethersense/internal/pipeline"
	"github.com/aethersense/aethersense/internal/stream"
)

func main() {
	myApp := cli.NewApp()
	myApp.Name = "aethersense-replay"
	myApp.Usage = "replay a bounded CSI fixture file and print decisions as JSONL"
	myApp.Flags = []cli.Flag{
		cli.StringFlag{Name: "input,i", Usage: "path to the fixture file"},
		cli.StringFlag{Name: "format", Value: "csv", Usage: "record format: csv, jsonl"},
		cli.StringFlag{Name: "c", Value: "", Usage: "config from json file, which will override the command from shell"},
	}
	myApp.Action = run
	if err := myApp.Run(os.Args); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(c *cli.Context) error {
	cfg := config.Default()
	cfg.IO.Format = c.String("format")
	cfg.IO.Mode = "file"
	cfg.IO.StartPosition = "begin"

	if c.String("c") != "" {
		if err := config.Load(&cfg, c.String("c")); err != nil {
			return err
		}
	}
	if err := config.Validate(&cfg); err != nil {
		return err
	}

	input := c.String("input")
	if input == "" {
		return cli.NewExitError("an --input path is required", 2)
	}

	reader, err := stream.Open(cfg.IO, input)
	if err != nil {
		return err
	}
	defer reader.Close()

	m := metrics.New()
	pl := pipeline.New(cfg.DSP, cfg.Decision)
	out := json.NewEncoder(os.Stdout)

	for {
		res, err := reader.Next()
		if err != nil {
			return err
		}
		if res.EOF {
			break
		}
		if res.Frame == nil {
			continue
		}

		decision, err := pl.Process(res.Frame, m)
		if err != nil {
			if aetherr.Is(err, aetherr.InvalidArgument) {
				continue
			}
			return err
		}
		if decision != nil {
			if err := out.Encode(decision); err != nil {
				return err
			}
		}
	}

	stats := reader.Stats()
	fmt.Fprintf(os.Stderr, "records_total=%d records_corrupt_total=%d\n", stats.RecordsTotal, stats.RecordsCorruptTotal)
	return nil
}
