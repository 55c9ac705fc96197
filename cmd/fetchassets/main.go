// Command fetchassets downloads an asset pack for the server's -assets flag.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"
)

func main() {
	var (
		url = flag.String("url", "", "asset pack source (any go-getter URL, e.g. git::https://host/repo.git//assets)")
		out = flag.String("o", "./assets", "output dir path")
	)
	flag.Parse()

	if *url == "" {
		log.Fatal("-url required")
	}
	if *out == "" {
		log.Fatal("-o required")
	}

	if err := os.RemoveAll(*out); err != nil {
		log.Fatal(err)
	}

	log.Default().Printf("start downloading assets %s", *url)

	if err := get.Get(*out, *url); err != nil {
		log.Fatal(err)
	}

	wood := filepath.Join(*out, "worldproperties", "block", "wood.json")
	if _, err := os.Stat(wood); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s missing, the server will use built-in wood variants\n", wood)
	}

	log.Default().Printf("done downloading assets %s", *out)
}
