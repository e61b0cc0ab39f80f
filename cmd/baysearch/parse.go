package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/baysearch"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	html, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	result, err := deps.Parser.ParseSearch(string(html), c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", baysearch.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
