package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/karmayogi/riddlequest/internal/lookup"
	"github.com/karmayogi/riddlequest/internal/model"
)

const testTriples = `{
  "Dog": [
    {"triple": "Dog has an acute sense of hearing", "label": "topic_marker"},
    {"triple": "Dog can bark loudly", "label": "topic_marker"},
    {"triple": "Dog has webbed paws", "label": "topic_marker"},
    {"triple": "Dog is a mammal", "label": "common", "neighboring_concepts": ["Cat"]}
  ],
  "Cat": [
    {"triple": "Cat has retractable claws", "label": "topic_marker"},
    {"triple": "Cat has slit pupils", "label": "topic_marker"},
    {"triple": "Cat can purr softly", "label": "topic_marker"}
  ]
}`

func testPipelineConfig(t *testing.T) *model.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := model.DefaultConfig()
	cfg.Generator.Seed = 42
	cfg.Paths.Triples = filepath.Join(dir, "triples_class.json")
	cfg.Paths.Lookup = filepath.Join(dir, "lookup.json")
	cfg.Paths.Riddles = filepath.Join(dir, "riddles.json")
	cfg.Paths.Validated = filepath.Join(dir, "riddles_validated.json")
	return cfg
}

func TestRun_EndToEnd(t *testing.T) {
	cfg := testPipelineConfig(t)
	if err := os.WriteFile(cfg.Paths.Triples, []byte(testTriples), 0644); err != nil {
		t.Fatalf("write triples: %v", err)
	}

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Report.Concepts != 2 {
		t.Errorf("Report.Concepts = %d, want 2", result.Report.Concepts)
	}
	if result.Riddles == 0 {
		t.Fatal("no riddles generated")
	}
	if result.Validated != result.Riddles {
		t.Errorf("Validated = %d, Riddles = %d, want equal", result.Validated, result.Riddles)
	}

	// All three artifacts must exist and parse.
	if _, _, err := lookup.BuildFromFile(cfg.Paths.Triples); err != nil {
		t.Errorf("triples artifact unreadable: %v", err)
	}
	if _, err := lookup.Load(cfg.Paths.Lookup); err != nil {
		t.Errorf("lookup artifact unreadable: %v", err)
	}

	data, err := os.ReadFile(cfg.Paths.Riddles)
	if err != nil {
		t.Fatalf("read riddles artifact: %v", err)
	}
	var batch model.RiddleBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		t.Fatalf("parse riddles artifact: %v", err)
	}
	if len(batch.Riddles) != result.Riddles {
		t.Errorf("artifact has %d riddles, result says %d", len(batch.Riddles), result.Riddles)
	}

	data, err = os.ReadFile(cfg.Paths.Validated)
	if err != nil {
		t.Fatalf("read validated artifact: %v", err)
	}
	var validated validatedBatch
	if err := json.Unmarshal(data, &validated); err != nil {
		t.Fatalf("parse validated artifact: %v", err)
	}
	for _, v := range validated.Riddles {
		if v.Answer == nil {
			t.Errorf("%s %s: no answer", v.Concept, v.Version)
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	read := func(t *testing.T) []byte {
		cfg := testPipelineConfig(t)
		if err := os.WriteFile(cfg.Paths.Triples, []byte(testTriples), 0644); err != nil {
			t.Fatalf("write triples: %v", err)
		}
		p, err := NewPipeline(cfg)
		if err != nil {
			t.Fatalf("NewPipeline failed: %v", err)
		}
		if _, err := p.Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		data, err := os.ReadFile(cfg.Paths.Riddles)
		if err != nil {
			t.Fatalf("read riddles: %v", err)
		}
		return data
	}

	if string(read(t)) != string(read(t)) {
		t.Error("two runs with the same seed produced different riddles")
	}
}

func TestRun_MissingTriples(t *testing.T) {
	cfg := testPipelineConfig(t)

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	_, err = p.Run(context.Background())
	var missing *lookup.MissingInputError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingInputError", err)
	}
}

func TestNewPipeline_BadTemplates(t *testing.T) {
	cfg := testPipelineConfig(t)
	cfg.Paths.Templates = filepath.Join(t.TempDir(), "templates.yaml")
	if err := os.WriteFile(cfg.Paths.Templates, []byte("v1:\n  - \"no placeholder here\"\n"), 0644); err != nil {
		t.Fatalf("write templates: %v", err)
	}

	if _, err := NewPipeline(cfg); err == nil {
		t.Fatal("expected error for template without {prop}")
	}
}

func TestExtract_EndToEnd(t *testing.T) {
	article := func(subject, extra string) string {
		return `<html><body><p>` + subject + ` is a mammal kept by people everywhere.</p>
<p>` + subject + ` ` + extra + `</p></body></html>`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			http.NotFound(w, r)
		case "/wiki/Dog":
			_, _ = w.Write([]byte(article("Dog", "has an acute sense of hearing and barks.")))
		case "/wiki/Cat":
			_, _ = w.Write([]byte(article("Cat", "has retractable claws and purrs.")))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	cfg := testPipelineConfig(t)
	cfg.HTTP.BaseURL = server.URL + "/wiki"
	cfg.Cache.Enabled = false

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	result, err := p.Extract(context.Background(), []string{"Dog", "Cat", "Unicorn"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if result.Concepts != 2 {
		t.Errorf("Concepts = %d, want 2", result.Concepts)
	}
	if len(result.Failed) != 1 {
		t.Errorf("Failed = %v, want one entry for Unicorn", result.Failed)
	}
	if _, ok := result.Failed["Unicorn"]; !ok {
		t.Errorf("Failed missing Unicorn: %v", result.Failed)
	}

	// The written triples must round-trip through the index builder, and the
	// shared "mammal kept by people everywhere" sentence must come out common.
	ix, report, err := lookup.BuildFromFile(cfg.Paths.Triples)
	if err != nil {
		t.Fatalf("triples artifact unreadable: %v", err)
	}
	if report.Concepts != 2 {
		t.Errorf("indexed %d concepts, want 2", report.Concepts)
	}

	shared := ""
	for _, fact := range ix.Facts("Dog") {
		if fact.Label == model.LabelCommon {
			shared = fact.Phrase
		}
	}
	if shared == "" {
		t.Fatalf("no common fact for Dog: %+v", ix.Facts("Dog"))
	}
}
