package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/dharmasatrya/flightscheduler/internal/csvio"
	"github.com/dharmasatrya/flightscheduler/internal/network"
	"github.com/dharmasatrya/flightscheduler/internal/shell"
)

func main() {
	locations := flag.String("locations", "", "CSV file of locations to load at startup")
	flights := flag.String("flights", "", "CSV file of flights to load at startup")
	verbose := flag.Bool("v", false, "log network changes to stderr")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	flightNet := network.New(network.DefaultConfig())
	sh := shell.New(flightNet, os.Stdout)

	if *locations != "" {
		if _, err := csvio.ImportLocationsFile(*locations, flightNet); err != nil {
			fail(err)
		}
	}
	if *flights != "" {
		if _, err := csvio.ImportFlightsFile(*flights, flightNet); err != nil {
			fail(err)
		}
	}

	if err := sh.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		fail(err)
	}
}

func fail(err error) {
	os.Stderr.WriteString("scheduler: " + err.Error() + "\n")
	os.Exit(1)
}
