package main

import (
	"encoding/json"
	"fmt"
	"os"
)

func writeOutput(path string, payload any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if path == "" {
		if _, err := os.Stdout.Write(encoded); err != nil {
			return err
		}
		_, err := fmt.Fprintln(os.Stdout)
		return err
	}
	return os.WriteFile(path, append(encoded, '\n'), 0o644)
}
