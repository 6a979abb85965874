package main

import (
	"log"
	"os"
)

func main() {
	defer func() {
		os.Exit(0) // closures are not reported
	}()

	if len(os.Args) > 1 {
		os.Exit(1) // want `do not call os.Exit directly in main`
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	return nil
}

func helper() {
	os.Exit(2) // only main.main is checked
}
