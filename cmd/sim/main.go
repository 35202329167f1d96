package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/ThomScottW/particlesim/internal/loop"
	"github.com/ThomScottW/particlesim/internal/scene"
)

func main() {
	scenePath := flag.String("scene", "", "path to a YAML scene file (random scene when empty)")
	flag.Parse()

	sc := scene.Default()
	if *scenePath != "" {
		loaded, err := scene.Load(*scenePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load scene: %v\n", err)
			os.Exit(1)
		}
		sc = loaded
	}

	world, err := sc.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build scene: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(reader, os.Stdout, world, loop.Options{Title: sc.Name}); err != nil {
		fmt.Fprintf(os.Stderr, "simulation error: %v\n", err)
		os.Exit(1)
	}
}
