// Public domain.

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	xrand "golang.org/x/exp/rand"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/exit"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/nuscan/internal/nucat"
	"github.com/soniakeys/nuscan/internal/nulike"
	"github.com/soniakeys/nuscan/internal/nusim"
)

const versionString = "mknu version 0.2 Go source."
const copyrightString = "Public domain."

func main() {
	defer exit.Handler()

	periods := flag.String("periods", "IC86_I", "comma separated period names")
	n := flag.Int("n", 1000, "background events per period")
	nsim := flag.Int("nsim", 100000, "reference sample events per period")
	simIndex := flag.Float64("sim-index", 1.5, "reference sample spectral index")
	sigma := flag.Float64("sigma", 1, "angular uncertainty to record, degrees")
	fnSample := flag.String("s", nusim.Sfn, "reference sample output file")
	fnEvents := flag.String("e", nucat.Efn, "event catalog output file")
	repeatable := flag.Bool("repeatable", false, "fixed random seed")
	injN := flag.Int("inject-n", 0, "signal events to inject")
	injRA := flag.Float64("inject-ra", 0, "injected source ra, degrees")
	injDec := flag.Float64("inject-dec", 0, "injected source dec, degrees")
	injIndex := flag.Float64("inject-index", 2, "injected source spectral index")
	injRadius := flag.Float64("inject-radius", 1, "injection cluster radius, degrees")
	vers := flag.Bool("v", false, "display version and copyright")
	flag.Usage = func() {
		os.Stderr.WriteString(
			"Usage: mknu [options]   build reference sample and synthetic catalog\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *vers {
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		os.Exit(0)
	}
	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(1)
	}

	ps := strings.Split(*periods, ",")
	for i := range ps {
		ps[i] = strings.TrimSpace(ps[i])
	}

	rnd := xrand.New(&xrand.PCGSource{})
	if *repeatable {
		rnd.Seed(3)
	} else {
		rnd.Seed(uint64(time.Now().UnixNano()))
	}

	sample := nusim.GenerateSample(rnd, ps, *nsim, *simIndex)
	if err := sample.WriteFile(*fnSample); err != nil {
		exit.Log(err)
	}
	fmt.Printf("%s: %d periods, %d reference events each, index %g\n",
		*fnSample, len(ps), *nsim, *simIndex)

	cat := nusim.GenerateBackground(rnd, ps, *n,
		nulike.BgIndex, unit.AngleFromDeg(*sigma))
	if *injN > 0 {
		src := coord.Equa{
			RA:  unit.RAFromDeg(*injRA),
			Dec: unit.AngleFromDeg(*injDec),
		}
		nusim.InjectSource(rnd, cat, ps[0], src, *injN, *injIndex,
			unit.AngleFromDeg(*injRadius), unit.AngleFromDeg(*sigma))
		fmt.Printf("injected %d events of index %g within %g deg of (%g, %g)\n",
			*injN, *injIndex, *injRadius, *injRA, *injDec)
	}
	if err := cat.WriteFile(*fnEvents); err != nil {
		exit.Log(err)
	}
	fmt.Printf("%s: %d events total\n", *fnEvents, cat.Len())
}
