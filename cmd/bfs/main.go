package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/TarekAS/bfs-pim/internal/config"
	"github.com/TarekAS/bfs-pim/internal/types"
	"github.com/TarekAS/bfs-pim/internal/util"
	"github.com/TarekAS/bfs-pim/pkg/engine"
	"github.com/TarekAS/bfs-pim/pkg/graphio"
)

var log = util.New("bfs")

const usage = "usage: bfs [-config <file>] [-n <units>] [-a <top|bot|edge>] [-p <row|col|2d>] [-o <output_file>] <input_file>"

func main() {
	configPath := flag.String("config", "", "path to engine configuration file")
	numUnits := flag.Int("n", 0, "number of compute units (multiple of 8; default from config)")
	algName := flag.String("a", "top", "algorithm: top | bot | edge")
	prtName := flag.String("p", "", "partitioning: row | col | 2d (default depends on algorithm)")
	outPath := flag.String("o", "", "output file (default discards output)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Error().Err(err).Msg("failed to load configuration")
			os.Exit(1)
		}
	}
	util.SetLevel(cfg.Logging.Level)

	alg, err := types.ParseAlgorithm(*algName)
	if err != nil {
		log.Error().Err(err).Msg("incorrect -a argument")
		os.Exit(1)
	}

	prt := alg.DefaultPartition()
	if *prtName != "" {
		prt, err = types.ParsePartition(*prtName)
		if err != nil {
			log.Error().Err(err).Msg("incorrect -p argument")
			os.Exit(1)
		}
	}

	units := cfg.Engine.Units
	if *numUnits != 0 {
		units = *numUnits
	}
	if units <= 0 || units%8 != 0 {
		log.Error().Int("n", units).Msg("number of compute units must be a multiple of 8")
		os.Exit(1)
	}

	if flag.NArg() != 1 {
		if flag.NArg() > 1 {
			log.Error().Msg("too many arguments")
		} else {
			log.Error().Msg("too few arguments: please provide the adjacency-list file")
		}
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	inPath := flag.Arg(0)

	var out io.Writer = io.Discard
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Error().Err(err).Msg("failed to create output file")
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	log.Info().
		Int("units", units).
		Str("algorithm", alg.String()).
		Str("partitioning", prt.String()).
		Msg("starting")

	coo, err := graphio.LoadEdgeList(inPath, units)
	if err != nil {
		log.Error().Err(err).Msg("failed to load graph")
		os.Exit(1)
	}

	eng := engine.New(engine.Options{
		Units:     units,
		Algorithm: alg,
		Partition: prt,
		Timing:    cfg.Engine.Timing,
	})
	res, err := eng.Run(coo)
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}

	if err := res.Write(out); err != nil {
		log.Error().Err(err).Msg("failed to write node levels")
		os.Exit(1)
	}

	log.Info().Msg("done")
}
