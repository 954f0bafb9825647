package main

import (
	"flag"
	"log"
	"os"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "scenario path (default: tuning input_path, input.txt)")
		outputPath = flag.String("output", "", "report path (default: tuning output_path, output.txt)")
		tuningPath = flag.String("tuning", "./configs/tuning.yaml", "path to tuning.yaml (optional)")
		format     = flag.String("format", "", "input format: text|json (default: from file extension)")
		dataDir    = flag.String("data", "", "runtime data directory for turn logs, snapshots and the index (empty to disable)")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite run index")
		fromSnap   = flag.String("from_snapshot", "", "load the setup from a snapshot instead of -input")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[antsim] ", log.LstdFlags|log.Lmicroseconds)

	err := run(runConfig{
		InputPath:    *inputPath,
		OutputPath:   *outputPath,
		TuningPath:   *tuningPath,
		Format:       *format,
		DataDir:      *dataDir,
		DisableDB:    *disableDB,
		SnapshotPath: *fromSnap,
	}, logger)
	if err != nil {
		logger.Printf("%v", err)
		os.Exit(1)
	}
}
