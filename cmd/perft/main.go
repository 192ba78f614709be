// Command perft is a standalone perft driver: parse a position, count the
// leaf nodes to a given depth, optionally fan the root out across workers,
// optionally run the conformance suite, and optionally persist results
// across runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/op/go-logging"
	"github.com/pkg/profile"

	"github.com/codingjerk/marcusgo/internal/config"
	"github.com/codingjerk/marcusgo/internal/perft"
	"github.com/codingjerk/marcusgo/internal/store"
)

var log = logging.MustGetLogger("perft")

var (
	fenFlag       = flag.String("fen", "", "position to run perft against (default: standard start position)")
	depthFlag     = flag.Int("depth", 6, "perft search depth")
	workersFlag   = flag.Int("workers", 0, "number of root-level parallel workers (0: use config/default, 1: sequential driver)")
	cacheBitsFlag = flag.Int("cache-bits", 0, "transposition cache size in bits (0: use config/default)")
	cpuprofile    = flag.String("cpuprofile", "", "write a CPU profile to this file")
	configFlag    = flag.String("config", "", "path to a TOML config file")
	suiteFlag     = flag.Bool("suite", false, "run the conformance suite instead of a single perft call")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	setupLogging(cfg.LogLevel)

	if *cpuprofile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuprofile)).Stop()
	}

	if *suiteFlag {
		runSuite(cfg)
		return
	}

	runSingle(cfg)
}

func setupLogging(level logging.Level) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	format := logging.MustStringFormatter(`%{time:15:04:05.000} %{shortpkg:-8.8s} %{level:-7.7s} %{message}`)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
}

func runSingle(cfg config.Config) {
	fen := cfg.StartFEN
	if *fenFlag != "" {
		fen = *fenFlag
	}
	cacheBits := cfg.CacheBits
	if *cacheBitsFlag > 0 {
		cacheBits = *cacheBitsFlag
	}
	workers := cfg.Workers
	if *workersFlag > 0 {
		workers = *workersFlag
	}

	start := time.Now()
	var nodes uint64
	var err error

	if workers == 1 {
		nodes, err = perft.PerftWithCacheBits(fen, *depthFlag, cacheBits)
	} else {
		nodes, err = perft.Parallel(context.Background(), fen, *depthFlag, perft.Options{
			Workers:   workers,
			CacheBits: cacheBits,
		})
	}
	if err != nil {
		log.Fatalf("perft(%q, %d): %v", fen, *depthFlag, err)
	}
	elapsed := time.Since(start)

	fmt.Printf("Perft is %d\n", nodes)
	log.Debugf("perft(%q, %d) = %d nodes in %s", fen, *depthFlag, nodes, elapsed)

	recordResult(cfg, fen, *depthFlag, nodes, elapsed)
}

// conformanceCase mirrors internal/perft's own suite; it is duplicated here
// (rather than exported from internal/perft) because the CLI's reporting
// format — pass/fail per line, continuing past failures — is a presentation
// concern, not a test assertion.
type conformanceCase struct {
	name  string
	fen   string
	depth int
	nodes uint64
}

var conformanceSuite = []conformanceCase{
	{"startpos", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 5, 4865609},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 4, 4085603},
	{"cpw_position_3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 5, 674624},
	{"cpw_position_4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 4, 422333},
	{"cpw_position_5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 4, 2103487},
	{"cpw_position_6", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", 4, 3894594},
}

func runSuite(cfg config.Config) {
	failures := 0
	for _, c := range conformanceSuite {
		start := time.Now()
		got, err := perft.PerftWithCacheBits(c.fen, c.depth, cfg.CacheBits)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("FAIL %-16s depth=%d error: %v\n", c.name, c.depth, err)
			failures++
			continue
		}
		if got != c.nodes {
			fmt.Printf("FAIL %-16s depth=%d got=%d want=%d\n", c.name, c.depth, got, c.nodes)
			failures++
			continue
		}
		fmt.Printf("ok   %-16s depth=%d nodes=%d (%s)\n", c.name, c.depth, got, elapsed)
		recordResult(cfg, c.fen, c.depth, got, elapsed)
	}

	if failures > 0 {
		fmt.Printf("%d/%d positions failed\n", failures, len(conformanceSuite))
		os.Exit(1)
	}
}

// recordResult persists a completed result in the on-disk result store.
// Nothing in this command reads the store back, so every run, -suite
// included, recomputes its results. A store that can't be opened is logged
// and skipped — the persistent cache is a convenience, never a requirement
// for perft to run.
func recordResult(cfg config.Config, fen string, depth int, nodes uint64, elapsed time.Duration) {
	dir, err := store.DefaultDir()
	if err != nil {
		log.Warningf("could not resolve result store directory: %v", err)
		return
	}
	s, err := store.Open(dir)
	if err != nil {
		log.Warningf("could not open result store: %v", err)
		return
	}
	defer s.Close()

	if err := s.Put(fen, depth, nodes, elapsed); err != nil {
		log.Warningf("could not persist result: %v", err)
	}
}
