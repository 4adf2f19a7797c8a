package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Simplici0/framequote/internal/db"
	"github.com/Simplici0/framequote/internal/estimate"
	"github.com/Simplici0/framequote/internal/store"
)

type cli struct {
	t      *testing.T
	dbPath string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	for _, k := range []string{"DB_PATH", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	return &cli{t: t, dbPath: filepath.Join(t.TempDir(), "cli.db")}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--db", c.dbPath, "--env-file", ""}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	if err != nil {
		c.t.Fatalf("estimator %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestOpen_CreatesDefaultPriceTable(t *testing.T) {
	c := newCLI(t)
	c.mustRun("prices", "list")

	conn, err := db.Open(c.dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer conn.Close()
	raw, err := store.NewSQLStore(conn).Load(context.Background(), store.PricesKey)
	if err != nil {
		t.Fatalf("load price table: %v", err)
	}
	if string(raw) != "{}" {
		t.Fatalf("price table = %q, want {}", raw)
	}
}

func TestQuote_Text(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("quote", "--width", "40", "--length", "50", "--name", "shed")

	for _, expected := range []string{"Quote: shed", "FRAMING", "2000 sq ft", "FINAL PRICE:"} {
		if !strings.Contains(out, expected) {
			t.Fatalf("expected output to contain %q, got: %s", expected, out)
		}
	}
}

func TestQuote_JSONPostFrame(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("quote", "--width", "40", "--length", "50", "--frame", "post", "--format", "json")

	var v estimate.View
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if v.Frame.FrameType != "post" {
		t.Fatalf("frame type = %s, want post", v.Frame.FrameType)
	}
	if v.Rollup.Totals.FinalPrice.IsZero() {
		t.Fatalf("expected a priced quote")
	}
}

func TestQuote_RejectsBadFrame(t *testing.T) {
	c := newCLI(t)
	if _, err := c.run("quote", "--frame", "log"); err == nil {
		t.Fatalf("expected an error for an unknown frame type")
	}
	if _, err := c.run("quote", "--format", "doc"); err == nil {
		t.Fatalf("expected an error for an unknown format")
	}
}

func TestProjectFlow(t *testing.T) {
	c := newCLI(t)
	events := filepath.Join(t.TempDir(), "events.json")
	if err := os.WriteFile(events, []byte(`[{"type":"toggleItem","itemId":14}]`), 0o600); err != nil {
		t.Fatalf("write events: %v", err)
	}

	c.mustRun("quote", "--width", "40", "--length", "50", "--name", "shed", "--events", events, "--save")
	c.mustRun("quote", "--width", "20", "--length", "20", "--name", "coop", "--save")

	if got := c.mustRun("project", "list"); got != "coop\nshed\n" {
		t.Fatalf("project list = %q", got)
	}
	if out := c.mustRun("project", "show", "shed"); strings.Contains(out, "Door Handles") {
		t.Fatalf("disabled row shown: %s", out)
	}

	pdfPath := filepath.Join(t.TempDir(), "shed.pdf")
	c.mustRun("project", "export", "shed", "--format", "pdf", "--out", pdfPath)
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("expected a PDF file")
	}

	promote := filepath.Join(t.TempDir(), "promote.json")
	if err := os.WriteFile(promote, []byte(`[{"type":"setUnitPrice","itemId":5,"price":"3.10"},{"type":"promoteToDefault","itemId":5}]`), 0o600); err != nil {
		t.Fatalf("write events: %v", err)
	}
	c.mustRun("project", "apply", "coop", promote)
	if out := c.mustRun("prices", "list"); !strings.Contains(out, "$3.10") {
		t.Fatalf("promoted price missing: %s", out)
	}
	c.mustRun("prices", "clear", "5")
	if _, err := c.run("prices", "clear", "5"); err == nil {
		t.Fatalf("expected an error clearing a missing price")
	}

	c.mustRun("project", "delete", "coop")
	if _, err := c.run("project", "show", "coop"); err == nil {
		t.Fatalf("expected an error for a deleted project")
	}
}
