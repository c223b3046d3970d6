// Command cottontail is a thin process wrapper around package cottontail:
// it opens a database at -data, optionally runs a demo query against a
// freshly created entity, and exits. Wire dispatch (gRPC/HTTP) is out of
// scope (spec.md §1) — this only makes the core reachable as a running
// process, the way the teacher's own cmd/ entry points are thin flag
// parsers in front of vecgo.New.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gabuzi/cottontaildb"
	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/value"
	"github.com/gabuzi/cottontaildb/wire"
)

func main() {
	var (
		dataDir  = flag.String("data", "./data", "data directory root")
		pageSize = flag.Int("page-size", 4096, "column page size in bytes")
		logLevel = flag.String("log-level", "info", "log level: debug, info, warn, error")
		demo     = flag.Bool("demo", false, "create a demo entity, insert sample rows, and run a kNN query")
	)
	flag.Parse()

	level, err := parseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx := context.Background()
	db, err := cottontail.Open(ctx, *dataDir,
		cottontail.WithPageSize(*pageSize),
		cottontail.WithTextLogging(level),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cottontail: open:", err)
		os.Exit(1)
	}
	defer db.Close()

	if *demo {
		if err := runDemo(ctx, db); err != nil {
			fmt.Fprintln(os.Stderr, "cottontail: demo:", err)
			os.Exit(1)
		}
	}
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid -log-level %q: %w", s, err)
	}
	return l, nil
}

func runDemo(ctx context.Context, db *cottontail.Database) error {
	db.CreateSchema("demo")
	err := db.CreateEntity("demo", "points", []catalogue.ColumnDef{
		{Name: "id", Kind: value.Long},
		{Name: "embedding", Kind: value.Float, Vector: true, LogicalSize: 3},
	})
	if err != nil {
		return err
	}

	for i := 0; i < 10; i++ {
		_, err := db.Insert(ctx, "demo", "points", map[string]value.Value{
			"id":        value.NewLong(int64(i)),
			"embedding": value.NewFloatVector([]float32{float32(i), float32(i), float32(i)}),
		})
		if err != nil {
			return err
		}
	}

	rs, err := db.Query(ctx, &wire.Query{
		ID:     "demo-1",
		Schema: "demo",
		Entity: "points",
		Knn: &wire.KnnSpec{
			Column:   "embedding",
			K:        3,
			Distance: "L2",
			Queries:  []value.Value{value.NewFloatVector([]float32{4, 4, 4})},
		},
		Limit: -1,
	})
	if err != nil {
		return err
	}

	for _, r := range rs.Records {
		fmt.Printf("tuple %d distance %v\n", r.TupleID, r.Values[0].Double())
	}
	return nil
}
