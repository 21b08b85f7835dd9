// Command tabularstat analyzes a delimited tabular text file (optionally
// gzip/bzip2/xz compressed) and prints a JSON description of its inferred
// structure and per-column statistics. Its flag/command shape follows
// other_examples/bitjungle-gopca's urfave/cli/v2 "analyze" command.
package main

import (
	"fmt"
	"log"
	"os"

	tabularstat "github.com/ini-bdds/tabularstat"
	"github.com/ini-bdds/tabularstat/internal/openx"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "tabularstat",
		Usage:     "infer the structure of a delimited tabular text file and summarize its columns",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "abridged",
				Usage: "emit the abridged JSON profile (label-set hashes instead of full labels) instead of the exhaustive one",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg := tabularstat.NewConfigFromEnv()

	if c.Args().Len() == 0 {
		td, err := tabularstat.Scan(os.Stdin, cfg, nil)
		return emit(c, td, err)
	}

	path := c.Args().First()
	r, err := openx.Open(path)
	if err != nil {
		return fmt.Errorf("tabularstat: %w", err)
	}
	defer r.Close()

	td, scanErr := tabularstat.Scan(r, cfg, nil)
	return emit(c, td, scanErr)
}

func emit(c *cli.Context, td *tabularstat.TableDescription, scanErr error) error {
	var raw []byte
	var err error
	if c.Bool("abridged") {
		raw, err = tabularstat.MarshalAbridged(td)
	} else {
		raw, err = tabularstat.MarshalExhaustive(td)
	}
	if err != nil {
		return fmt.Errorf("tabularstat: encoding result: %w", err)
	}
	fmt.Println(string(raw))

	if scanErr != nil {
		return cli.Exit(scanErr.Error(), exitCodeFor(td.Status))
	}
	return nil
}

func exitCodeFor(s tabularstat.Status) int {
	switch s {
	case tabularstat.StatusOK:
		return 0
	case tabularstat.StatusUtf8Prefix, tabularstat.StatusUtf8Suffix:
		return 2
	case tabularstat.StatusNoTerminatorFound:
		return 3
	default:
		return 1
	}
}
