package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	activerecord "github.com/jay-hwang/active-record"
	"github.com/jay-hwang/active-record/dialects/sqlite"
)

func main() {
	// --- Flags ---
	dsn := flag.String("db", sqlite.MemoryDSN, "SQLite database file, e.g.: motorcycles.db")
	schemaFile := flag.String("schema", "", "Schema file run when the database is created or reset, e.g.: motorcycles.sql")
	reset := flag.Bool("reset", false, "Recreate the database from the schema file before querying")
	modelName := flag.String("model", "", "Model name, e.g.: Motorcycle")
	table := flag.String("table", "", "Table name override, e.g.: humans")
	where := flag.String("where", "", "Equality criteria, e.g.: name:Yamaha R1,owner_id:1")
	id := flag.Int64("find", 0, "Primary key to find")

	flag.Parse()

	if *modelName == "" {
		fmt.Println("Use : activerecord --db motorcycles.db --schema motorcycles.sql --model Motorcycle --where owner_id:2")
		return
	}

	var opts []sqlite.Option
	if *schemaFile != "" {
		opts = append(opts, sqlite.WithSchemaFile(*schemaFile))
	}
	if *reset {
		opts = append(opts, sqlite.WithResetOnOpen())
	}

	db, err := activerecord.Open(sqlite.Open(*dsn, opts...), activerecord.ConfigFromEnv())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	var modelOpts []activerecord.ModelOption
	if *table != "" {
		modelOpts = append(modelOpts, activerecord.WithTable(*table))
	}

	ctx := context.Background()
	model := db.Model(*modelName, modelOpts...)
	if err := model.Finalize(ctx); err != nil {
		log.Fatal("Failed to load columns:", err)
	}

	records, err := query(ctx, model, *id, *where)
	if err != nil {
		log.Fatal(err)
	}

	columns, err := model.Columns(ctx)
	if err != nil {
		log.Fatal(err)
	}
	printRecords(columns, records)
}

func query(ctx context.Context, model *activerecord.Model, id int64, where string) ([]*activerecord.Record, error) {
	switch {
	case id != 0:
		record, err := model.Find(ctx, id)
		if err != nil || record == nil {
			return nil, err
		}
		return []*activerecord.Record{record}, nil
	case where != "":
		return model.Where(ctx, parseCriteria(where)...)
	default:
		return model.All(ctx)
	}
}

// --- Helpers ---
func parseCriteria(where string) activerecord.Fields {
	var fields activerecord.Fields
	for _, c := range strings.Split(where, ",") {
		parts := strings.SplitN(c, ":", 2)
		if len(parts) != 2 {
			log.Fatalf("Criterion format is invalid: %s", c)
		}
		fields = append(fields, activerecord.Field{Column: parts[0], Value: parts[1]})
	}
	return fields
}

func printRecords(columns []string, records []*activerecord.Record) {
	fmt.Fprintln(os.Stdout, strings.Join(columns, "\t"))
	for _, record := range records {
		values := make([]string, 0, len(columns))
		for _, column := range columns {
			values = append(values, record.String(column))
		}
		fmt.Fprintln(os.Stdout, strings.Join(values, "\t"))
	}
	fmt.Printf("(%d rows)\n", len(records))
}
