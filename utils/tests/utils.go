package tests

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	activerecord "github.com/jay-hwang/active-record"
	"github.com/jay-hwang/active-record/dialects/sqlite"
	"github.com/jay-hwang/active-record/logger"
)

// OpenDB opens a db over a fresh in-memory copy of Schema, closed when the test ends.
// PRINT_QUERIES=true traces statements.
func OpenDB(t testing.TB) (*activerecord.DB, *Recorder) {
	t.Helper()

	recorder := &Recorder{Dialector: sqlite.Open(sqlite.MemoryDSN, sqlite.WithSchema(Schema))}

	config := &activerecord.Config{Logger: logger.Discard}
	if os.Getenv("PRINT_QUERIES") == "true" {
		config = activerecord.ConfigFromEnv()
	}

	db, err := activerecord.Open(recorder, config)
	if err != nil {
		t.Fatalf("failed to open db, got error %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close db, got error %v", err)
		}
	})
	return db, recorder
}

// Recorder dialector whose gateway records every executed statement
type Recorder struct {
	activerecord.Dialector

	mu         sync.Mutex
	statements []Statement
}

// Statement executed statement
type Statement struct {
	SQL  string
	Vars []interface{}
}

func (recorder *Recorder) Open(ctx context.Context) (activerecord.Gateway, error) {
	gateway, err := recorder.Dialector.Open(ctx)
	if err != nil {
		return nil, err
	}
	return &recordingGateway{Gateway: gateway, recorder: recorder}, nil
}

// Statements executed statements, oldest first
func (recorder *Recorder) Statements() []Statement {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]Statement(nil), recorder.statements...)
}

// Last most recent statement
func (recorder *Recorder) Last() Statement {
	statements := recorder.Statements()
	if len(statements) == 0 {
		return Statement{}
	}
	return statements[len(statements)-1]
}

// Count number of executed statements starting with prefix
func (recorder *Recorder) Count(prefix string) int {
	var count int
	for _, stmt := range recorder.Statements() {
		if strings.HasPrefix(stmt.SQL, prefix) {
			count++
		}
	}
	return count
}

// Clear forgets recorded statements
func (recorder *Recorder) Clear() {
	recorder.mu.Lock()
	recorder.statements = nil
	recorder.mu.Unlock()
}

type recordingGateway struct {
	activerecord.Gateway
	recorder *Recorder
}

func (gateway *recordingGateway) Execute(ctx context.Context, sql string, vars ...interface{}) (*activerecord.Rows, error) {
	gateway.recorder.mu.Lock()
	gateway.recorder.statements = append(gateway.recorder.statements, Statement{SQL: sql, Vars: vars})
	gateway.recorder.mu.Unlock()

	return gateway.Gateway.Execute(ctx, sql, vars...)
}

// AssertFields checks record holds exactly expected, in order
func AssertFields(t testing.TB, record *activerecord.Record, expected activerecord.Fields) {
	t.Helper()

	if record == nil {
		t.Errorf("expects record with %v, got nil", spew.Sdump(expected))
		return
	}

	got := record.Attributes().Fields()
	if len(got) != len(expected) {
		t.Errorf("expects fields %v, got %v", spew.Sdump(expected), spew.Sdump(got))
		return
	}

	for idx, field := range expected {
		if got[idx].Column != field.Column || got[idx].Value != field.Value {
			t.Errorf("field #%d expects %v, got %v", idx, spew.Sdump(field), spew.Sdump(got[idx]))
		}
	}
}
