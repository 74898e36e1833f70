// Public domain.

// Package nuprog is the nuscan command: it wires configuration, event
// catalog, reference sample, logging and the scan together and prints
// the per-candidate results.
package nuprog

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog"
	"github.com/soniakeys/exit"

	"github.com/soniakeys/nuscan/internal/nucat"
	"github.com/soniakeys/nuscan/internal/nuscan"
	"github.com/soniakeys/nuscan/internal/nusim"
)

const versionString = "nuscan version 0.2 Go source."
const copyrightString = "Public domain."

func Main() {
	defer exit.Handler()

	cl := parseCommandLine()

	// the diagnostics sink is created here, passed explicitly to the
	// analysis, and lives until the program ends.  there is no global
	// logger state.
	level := zerolog.InfoLevel
	if cl.debug {
		level = zerolog.DebugLevel
	} else if cl.quiet {
		level = zerolog.WarnLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	cfg, err := nuscan.LoadConfig(cl.fnConfig)
	if err != nil {
		exit.Log(err)
	}
	events, err := nucat.ReadFile(cl.fnEvents)
	if err != nil {
		exit.Log(err)
	}
	sample, err := nusim.ReadFile(cl.fnSample)
	if err != nil {
		exit.Log(err)
	}

	scan, err := nuscan.NewMapScan(cfg, &events, &sample, log)
	if err != nil {
		exit.Log(err)
	}
	if err = scan.ApplyCuts(); err != nil {
		exit.Log(err)
	}
	res, err := scan.PerformScan()
	if err != nil {
		exit.Log(err)
	}
	if cl.fnWriteConfig != "" {
		if err = scan.WriteConfig(cl.fnWriteConfig); err != nil {
			exit.Log(err)
		}
	}
	printResults(res)
}

func printResults(res *nuscan.Results) {
	fmt.Println(versionString)
	fmt.Printf("%6s %8s %8s %9s %7s %7s", "Pix", "RA", "Dec", "TS", "Gamma", "+/-")
	for _, p := range res.Periods {
		fmt.Printf(" %10s %7s", "ns "+p, "+/-")
	}
	fmt.Println()
	deg := 180 / math.Pi
	for c := range res.TS {
		fmt.Printf("%6d %8.3f %8.3f %9.3f %7.3f %7.3f",
			c, res.RA[c]*deg, res.Dec[c]*deg, res.TS[c],
			res.Gamma[c], res.GammaErr[c])
		for k := range res.Periods {
			fmt.Printf(" %10.3f %7.3f", res.Ns[c][k], res.NsErr[c][k])
		}
		if res.Failed[c] {
			fmt.Print(" fit failed")
		}
		fmt.Println()
	}
}

type commandLine struct {
	fnConfig      string
	fnEvents      string
	fnSample      string
	fnWriteConfig string
	quiet, debug  bool
}

func parseCommandLine() *commandLine {
	var cl commandLine
	dh := flag.Bool("h", false, "")
	dv := flag.Bool("v", false, "")
	flag.StringVar(&cl.fnConfig, "c", "", "")
	flag.StringVar(&cl.fnEvents, "e", nucat.Efn, "")
	flag.StringVar(&cl.fnSample, "s", nusim.Sfn, "")
	flag.StringVar(&cl.fnWriteConfig, "w", "", "")
	flag.BoolVar(&cl.quiet, "q", false, "")
	flag.BoolVar(&cl.debug, "d", false, "")
	flag.Usage = func() {
		os.Stderr.WriteString(`
Usage: nuscan -c <config-file> [options]   scan for point sources
       nuscan -h                           display help
       nuscan -v                           display version and copyright

Options:
       -c <config-file>   analysis configuration, YAML (required)
       -e <event-file>    event catalog (default ` + nucat.Efn + `)
       -s <sample-file>   reference energy sample (default ` + nusim.Sfn + `)
       -w <config-file>   write the configuration used back out
       -q                 log warnings only
       -d                 log debug detail
`)
	}
	flag.Parse()
	switch {
	case *dh:
		printHelp()
		os.Exit(0)
	case *dv:
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		os.Exit(0)
	case cl.fnConfig == "" || flag.NArg() != 0:
		flag.Usage()
		os.Exit(1)
	}
	return &cl
}

func printHelp() {
	fmt.Println(`
Nuscan computes a test statistic for an astrophysical neutrino point
source at every candidate position of a sky map.  Input is a gob event
catalog and a gob reference energy sample, both created by the mknu
command, plus a YAML analysis configuration.  Output is one row per
candidate with the test statistic, best fit signal counts, and best fit
spectral index.

Config file sections:
   sources      nside, npix, or explicit ras/decs
   data         periods and per-band energy cuts
   likelihood   detector angular resolution
   policy       declination policy boundaries

For full documentation:
   go doc github.com/soniakeys/nuscan`)
}
