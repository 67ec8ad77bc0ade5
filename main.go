package main

import (
	"fmt"
	"os"

	"github.com/jobmatchpro/backend/cmd"
)

// @title JobMatch API
// @version 1.0
// @description Résumé to job listing matching: profile extraction, multi-source search and ranking.

// @contact.name API Support

// @host localhost:8080
// @BasePath /

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
