// Seedtool builds the offline product bundle shipped with the app:
//
//	seedtool fetch  -url <export url> -o export.csv.gz
//	seedtool filter -src export.csv.gz -o clean.csv -countries portugal,spain
//	seedtool build  -src clean.csv -o products.db
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"nutridiary/internal/logging"
	"nutridiary/internal/off"
)

const defaultExportURL = "https://static.openfoodfacts.org/data/en.openfoodfacts.org.products.csv.gz"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	log := logging.NewTextLogger(os.Stderr, false)

	var err error
	switch cmd := os.Args[1]; cmd {
	case "fetch":
		err = runFetch(ctx, os.Args[2:], log)
	case "filter":
		err = runFilter(ctx, os.Args[2:], log)
	case "build":
		err = runBuild(ctx, os.Args[2:], log)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Error(ctx, "seedtool failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: seedtool <fetch|filter|build> [flags]")
}

func runFetch(ctx context.Context, args []string, log logging.Logger) error {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	url := fs.String("url", defaultExportURL, "export URL")
	out := fs.String("o", "export.csv.gz", "destination file")
	fs.Parse(args)

	client := &http.Client{Timeout: 2 * time.Hour}
	return off.Fetch(ctx, client, *url, *out, log)
}

func runFilter(ctx context.Context, args []string, log logging.Logger) error {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	src := fs.String("src", "export.csv.gz", "downloaded export")
	out := fs.String("o", "clean.csv", "clean CSV destination")
	countries := fs.String("countries", "portugal,spain", "comma-separated country filter")
	fs.Parse(args)

	opts := off.FilterOptions{Countries: strings.Split(*countries, ",")}
	_, err := off.FilterFile(ctx, *src, *out, opts, log)
	return err
}

func runBuild(ctx context.Context, args []string, log logging.Logger) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	src := fs.String("src", "clean.csv", "clean CSV")
	out := fs.String("o", "products.db", "seed database destination")
	fs.Parse(args)

	_, err := off.Build(ctx, *src, *out, log)
	return err
}
