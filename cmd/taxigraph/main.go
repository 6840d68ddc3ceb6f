package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dd0wney/taxigraph/pkg/graph"
	"github.com/dd0wney/taxigraph/pkg/routing"
	"github.com/dd0wney/taxigraph/pkg/store"
	"github.com/dd0wney/taxigraph/pkg/validation"
)

const usage = `taxigraph - airport taxi route graph admin tool

Usage:
  taxigraph <command> [flags]

Commands:
  stats      Show node and edge counts for an airport
  validate   Run the structural check battery over an airport
  path       Find a taxi route between two nodes
  airports   List airports present in the snapshot
  clear      Drop an airport's subgraph (or everything)

Run 'taxigraph <command> -h' for command flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "stats":
		err = runStats(os.Args[2:])
	case "validate":
		err = runValidate(os.Args[2:])
	case "path":
		err = runPath(os.Args[2:])
	case "airports":
		err = runAirports(os.Args[2:])
	case "clear":
		err = runClear(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n%s", os.Args[1], usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

// openService loads the snapshot into a fresh in-memory store.
func openService(snapshotPath string) (*graph.Service, *store.MemoryStore, error) {
	st := store.NewMemoryStore()
	if _, err := os.Stat(snapshotPath); err != nil {
		return nil, nil, fmt.Errorf("snapshot %s not found", snapshotPath)
	}
	if err := st.LoadSnapshot(snapshotPath); err != nil {
		return nil, nil, err
	}
	return graph.NewService(st), st, nil
}

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	snapshot := fs.String("snapshot", "data/taxigraph.snap", "snapshot file to read")
	airport := fs.String("airport", "", "ICAO code to scope to (empty for all)")
	fs.Parse(args)

	service, _, err := openService(*snapshot)
	if err != nil {
		return err
	}
	stats, err := service.Stats(*airport)
	if err != nil {
		return err
	}

	scope := stats.Airport
	if scope == "" {
		scope = "all airports"
	}
	fmt.Printf("📊 Stats for %s\n", scope)
	fmt.Printf("   Nodes: %d\n", stats.Nodes)
	fmt.Printf("   Edges: %d\n", stats.Edges)
	for kind, count := range stats.NodesByKind {
		fmt.Printf("   %-22s %d\n", kind, count)
	}
	return nil
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	snapshot := fs.String("snapshot", "data/taxigraph.snap", "snapshot file to read")
	airport := fs.String("airport", "", "ICAO code to validate")
	fs.Parse(args)

	if *airport == "" {
		return fmt.Errorf("-airport is required")
	}

	service, _, err := openService(*snapshot)
	if err != nil {
		return err
	}
	report, err := service.Validate(*airport)
	if err != nil {
		return err
	}

	if report.Clean() {
		fmt.Printf("✅ %s: no findings\n", *airport)
		return nil
	}
	fmt.Printf("Validation report for %s: %d error(s), %d warning(s)\n",
		*airport, report.Errors(), report.Warnings())
	for _, f := range report.Findings {
		marker := "⚠️ "
		if f.Severity == validation.SeverityError {
			marker = "❌"
		}
		fmt.Printf("%s [%s] %s\n", marker, f.Code, f.Message)
	}
	if report.Errors() > 0 {
		os.Exit(2)
	}
	return nil
}

func runPath(args []string) error {
	fs := flag.NewFlagSet("path", flag.ExitOnError)
	snapshot := fs.String("snapshot", "data/taxigraph.snap", "snapshot file to read")
	airport := fs.String("airport", "", "ICAO code")
	from := fs.String("from", "", "start node id")
	to := fs.String("to", "", "destination node id")
	fs.Parse(args)

	if *airport == "" || *from == "" || *to == "" {
		return fmt.Errorf("-airport, -from, and -to are required")
	}

	service, _, err := openService(*snapshot)
	if err != nil {
		return err
	}
	path, err := service.FindPath(*airport, *from, *to)
	if err == routing.ErrNoRoute {
		return fmt.Errorf("no route from %s to %s", *from, *to)
	}
	if err != nil {
		return err
	}

	fmt.Printf("🛫 Route %s → %s (distance %.1f, %d hold-short crossing(s))\n",
		*from, *to, path.TotalDistance, path.HoldCount())
	for i, id := range path.NodeIDs {
		switch {
		case i == 0:
			fmt.Printf("   %s (%s)\n", path.NodeNames[i], id)
		case path.Holds[i]:
			fmt.Printf("   ⛔ HOLD SHORT, then via %s to %s (%s)\n", path.Vias[i-1], path.NodeNames[i], id)
		default:
			fmt.Printf("   via %s to %s (%s)\n", path.Vias[i-1], path.NodeNames[i], id)
		}
	}
	return nil
}

func runAirports(args []string) error {
	fs := flag.NewFlagSet("airports", flag.ExitOnError)
	snapshot := fs.String("snapshot", "data/taxigraph.snap", "snapshot file to read")
	fs.Parse(args)

	service, _, err := openService(*snapshot)
	if err != nil {
		return err
	}
	airports, err := service.ListAirports()
	if err != nil {
		return err
	}
	if len(airports) == 0 {
		fmt.Println("No airports in snapshot")
		return nil
	}
	for _, a := range airports {
		fmt.Println(a)
	}
	return nil
}

func runClear(args []string) error {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	snapshot := fs.String("snapshot", "data/taxigraph.snap", "snapshot file to read")
	airport := fs.String("airport", "", "ICAO code to clear (empty clears everything)")
	yes := fs.Bool("yes", false, "confirm the clear")
	fs.Parse(args)

	if !*yes {
		return fmt.Errorf("refusing to clear without -yes")
	}

	service, st, err := openService(*snapshot)
	if err != nil {
		return err
	}
	if err := service.Clear(*airport); err != nil {
		return err
	}
	if err := st.SaveSnapshot(*snapshot); err != nil {
		return err
	}
	if *airport == "" {
		fmt.Println("✅ Cleared all airports")
	} else {
		fmt.Printf("✅ Cleared %s\n", *airport)
	}
	return nil
}
