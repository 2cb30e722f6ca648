// Command shopcore is a small CLI: optionally seeds example data, then
// prints the active users.
package main

import (
	"flag"
	"fmt"
	"os"

	"shopcore/pkg/commerce"
	"shopcore/pkg/logger"
	"shopcore/pkg/tasks"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("shopcore", flag.ContinueOnError)
	seed := fs.Bool("seed", false, "create example users if the store is empty")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := logger.NewNop()
	store := commerce.NewStore()
	repo := commerce.NewRepository(store)
	svc := commerce.NewService(repo, log)
	analytics := commerce.NewAnalytics(repo, svc)

	if *seed {
		runner := tasks.NewRunner(svc, analytics, nil, log)
		if err := runner.SeedExampleData(); err != nil {
			fmt.Fprintln(os.Stderr, "seed:", err)
			return 1
		}
	}
	for _, u := range svc.ActiveUsers() {
		fmt.Printf("%d: %s <%s>\n", u.ID, u.Name, u.Email)
	}
	return 0
}
