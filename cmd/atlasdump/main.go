package main

import (
	"flag"
	"fmt"
	"os"

	"microraster/internal/atlas"
)

func main() {
	imagePath := flag.String("image", "atlas.png", "Output PNG path")
	tablePath := flag.String("table", "atlas.json", "Output rect table path")
	check := flag.String("check", "", "Load an existing atlas PNG (or JPEG/TGA) plus -table and validate it instead of dumping")
	flag.Parse()

	if *check != "" {
		a, err := atlas.Load(*check, *tablePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERR %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("OK  %s  %dx%d, %d entries, line height %d\n",
			*check, a.Width, a.Height, len(a.IDs()), a.LineHeight)
		return
	}

	a := atlas.Default()
	if err := atlas.Save(a, *imagePath, *tablePath); err != nil {
		fmt.Fprintf(os.Stderr, "ERR %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK  %s + %s  (%dx%d, %d entries)\n",
		*imagePath, *tablePath, a.Width, a.Height, len(a.IDs()))
}
