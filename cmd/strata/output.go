package main

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// printOutput renders v to stdout in the selected output format.
func printOutput(v any) {
	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode output: %v\n", err)
			return
		}
		fmt.Println(string(data))
	default:
		data, err := yaml.Marshal(v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode output: %v\n", err)
			return
		}
		fmt.Print(string(data))
	}
}
