// Command inibp runs an integration-by-parts reduction over one
// topology described by a YAML config file.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/chiyutuci/inibp/config"
	"github.com/chiyutuci/inibp/driver"
	"github.com/chiyutuci/inibp/family"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Error: usage: inibp <config.yaml>")
		os.Exit(1)
	}

	if err := run(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	doc, err := config.Load(path)
	if err != nil {
		return err
	}

	spec, err := doc.Family()
	if err != nil {
		return err
	}

	fam, err := family.New(spec)
	if err != nil {
		return err
	}

	reduceSpec, err := doc.Reduce(fam.NumPropagators())
	if err != nil {
		return err
	}

	return driver.Run(fam, reduceSpec, driver.Options{Logger: log})
}
