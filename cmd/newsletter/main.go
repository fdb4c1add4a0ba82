package main

import (
	"fmt"
	"os"
	_ "time/tzdata" // NEWSLETTER_TIMEZONE must resolve in scratch images

	"github.com/theboringdotapp/newsletter-builder/cmd/newsletter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ newsletter: %v\n", err)
		os.Exit(1)
	}
}
