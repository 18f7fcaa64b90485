package main

import (
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli"

	"github.com/aethersense/aethersense/internal/aetherr"
	"github.com/aethersense/aethersense/internal/config"
	"github.com/aethersense/aethersense/internal/metrics"
	"github.com/aethersense/aethersense/internal/model"
	"github.com/aethersense/aethersense/internal/pipeline"
	"github.com/aethersense/aethersense/internal/queue"
	"github.com/aethersense/aethersense/internal/stream"
)

// VERSION is populated via build flags when packaging official binaries.
var VERSION = "SELFBUILD"

const (
	exitOK = iota
	_
	exitUsage
	exitConfigLoad
	exitConfigValidation
	exitReaderOpen
	exitRead
	exitPipeline
)

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	myApp := cli.NewApp()
	myApp.Name = "aethersense"
	myApp.Usage = "streaming CSI presence-detection daemon"
	myApp.Version = VERSION
	myApp.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "input,i",
			Usage: "path to the CSI record file to read or tail",
		},
		cli.StringFlag{
			Name:  "format",
			Value: "csv",
			Usage: "record format: csv, jsonl",
		},
		cli.StringFlag{
			Name:  "mode",
			Value: "file",
			Usage: "io mode: file (read-to-EOF), tail (follow + rotation aware)",
		},
		cli.StringFlag{
			Name:  "checkpoint",
			Value: "",
			Usage: "checkpoint sidecar path; empty disables checkpointing",
		},
		cli.StringFlag{
			Name:  "c",
			Value: "",
			Usage: "config from json file, which will override the command from shell",
		},
		cli.StringFlag{
			Name:  "log",
			Value: "",
			Usage: "specify a log file to output, default goes to stderr",
		},
		cli.StringFlag{
			Name:  "metricscsv",
			Value: "",
			Usage: "collect runtime metrics to a rolling CSV file, aware of timeformat in golang",
		},
	}
	myApp.Action = run
	if err := myApp.Run(os.Args); err != nil {
		log.Printf("%+v\n", err)
		os.Exit(exitUsage)
	}
}

func run(c *cli.Context) error {
	cfg := config.Default()
	cfg.IO.Format = c.String("format")
	cfg.IO.Mode = c.String("mode")
	cfg.IO.CheckpointPath = c.String("checkpoint")
	if cfg.IO.CheckpointPath != "" {
		cfg.IO.StartPosition = "checkpoint"
	}

	if c.String("c") != "" {
		if err := config.Load(&cfg, c.String("c")); err != nil {
			log.Printf("%+v\n", err)
			os.Exit(exitConfigLoad)
		}
	}

	if c.String("log") != "" {
		f, err := os.OpenFile(c.String("log"), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Printf("%+v\n", err)
			os.Exit(exitConfigLoad)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := config.Validate(&cfg); err != nil {
		log.Printf("%+v\n", err)
		os.Exit(exitConfigValidation)
	}

	if cfg.IO.MaxCorruptRatio > 0.5 {
		color.Red("warning: io.max_corrupt_ratio %.2f is unusually permissive", cfg.IO.MaxCorruptRatio)
	}
	if cfg.DSP.Resampling.RejectJitterRatio > 1.0 {
		color.Red("warning: dsp.resampling.reject_jitter_ratio %.2f rarely rejects anything", cfg.DSP.Resampling.RejectJitterRatio)
	}

	input := c.String("input")
	if input == "" {
		log.Println("an --input path is required")
		os.Exit(exitUsage)
	}

	log.Println("version:", VERSION)
	log.Println("input:", input)
	log.Println("format:", cfg.IO.Format)
	log.Println("mode:", cfg.IO.Mode)
	log.Println("window_frames:", cfg.DSP.WindowFrames)
	log.Println("topk_subcarriers:", cfg.DSP.TopKSubcarriers)
	log.Println("checkpoint_path:", cfg.IO.CheckpointPath)
	log.Println("backpressure:", cfg.Runtime.Backpressure)

	reader, err := stream.Open(cfg.IO, input)
	if err != nil {
		log.Printf("%+v\n", err)
		os.Exit(exitReaderOpen)
	}
	defer reader.Close()

	m := metrics.New()
	stop := make(chan struct{})
	if c.String("metricscsv") != "" {
		go metrics.ReportCSV(m, c.String("metricscsv"), time.Duration(cfg.Runtime.ReportEverySeconds)*time.Second, stop)
		defer close(stop)
	}

	pl := pipeline.New(cfg.DSP, cfg.Decision)

	if cfg.IO.Mode == "tail" {
		return runSplit(reader, pl, m, cfg)
	}
	return runInline(reader, pl, m)
}

// runInline implements the in-line configuration of spec.md §5: a single
// goroutine pulls from the reader and calls Process directly.
func runInline(reader *stream.Reader, pl *pipeline.Pipeline, m *metrics.RuntimeMetrics) error {
	for {
		res, err := reader.Next()
		if err != nil {
			log.Printf("%+v\n", err)
			os.Exit(exitRead)
		}
		if res.EOF {
			return nil
		}
		if res.Frame == nil {
			continue
		}
		m.IncFramesRead()

		decision, err := pl.Process(res.Frame, m)
		if err != nil {
			if !aetherr.Is(err, aetherr.InvalidArgument) {
				log.Printf("%+v\n", err)
				os.Exit(exitPipeline)
			}
			continue
		}
		if decision != nil {
			log.Printf("decision ts=%d present=%v motion=%.4f breathing=%.4f",
				decision.TimestampNs, decision.Present, decision.EnergyMotion, decision.EnergyBreathing)
		}
	}
}

// runSplit implements the split configuration of spec.md §5: a producer
// goroutine runs the reader and pushes frames into the Bounded Queue; a
// consumer goroutine pops and calls Process. The queue is the sole
// synchronization boundary.
func runSplit(reader *stream.Reader, pl *pipeline.Pipeline, m *metrics.RuntimeMetrics, cfg config.Config) error {
	policy := queue.Block
	switch cfg.Runtime.Backpressure {
	case "drop_oldest":
		policy = queue.DropOldest
	case "drop_newest":
		policy = queue.DropNewest
	}

	q := queue.NewBounded[*model.Frame](cfg.Runtime.RingBufferCapacityFrames)
	done := make(chan error, 1)

	go func() {
		for {
			res, err := reader.Next()
			if err != nil {
				done <- err
				return
			}
			if res.EOF {
				done <- nil
				return
			}
			if res.Frame == nil {
				continue
			}
			m.IncFramesRead()
			if !q.Push(res.Frame, policy, 0) {
				m.IncFramesDropped()
			}
		}
	}()

	for {
		select {
		case err := <-done:
			if err != nil {
				log.Printf("%+v\n", err)
				os.Exit(exitRead)
			}
			return nil
		default:
		}

		frame, err := q.PopBlocking(time.Second)
		if err != nil {
			continue
		}
		decision, err := pl.Process(frame, m)
		if err != nil {
			if !aetherr.Is(err, aetherr.InvalidArgument) {
				log.Printf("%+v\n", err)
				os.Exit(exitPipeline)
			}
			continue
		}
		if decision != nil {
			log.Printf("decision ts=%d present=%v motion=%.4f breathing=%.4f",
				decision.TimestampNs, decision.Present, decision.EnergyMotion, decision.EnergyBreathing)
		}
	}
}
