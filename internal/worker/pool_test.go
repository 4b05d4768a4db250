package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/karmayogi/riddlequest/internal/lookup"
	"github.com/karmayogi/riddlequest/internal/model"
)

// mockResult implements Result
type mockResult struct {
	err error
}

func (r *mockResult) GetError() error {
	return r.err
}

// mockJob implements Job
type mockJob struct {
	shouldErr bool
	executed  *int32 // atomic counter
}

func (j *mockJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.shouldErr {
		return &mockResult{err: errors.New("job error")}
	}
	return &mockResult{err: nil}
}

func TestNewPool_DefaultsToOneWorker(t *testing.T) {
	if p := NewPool(0); p.workers != 1 {
		t.Errorf("expected 1 worker for 0 input, got %d", p.workers)
	}
	if p := NewPool(-1); p.workers != 1 {
		t.Errorf("expected 1 worker for negative input, got %d", p.workers)
	}
}

func TestPool_Execution(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	var executed int32
	count := 50 // deliberately larger than the channel buffers

	go func() {
		for i := 0; i < count; i++ {
			pool.Submit(&mockJob{executed: &executed})
		}
		pool.Close()
	}()

	results := pool.Wait()

	if len(results) != count {
		t.Errorf("expected %d results, got %d", count, len(results))
	}
	if atomic.LoadInt32(&executed) != int32(count) {
		t.Errorf("expected %d executed jobs, got %d", count, executed)
	}
}

func TestPool_ErrorHandling(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&mockJob{shouldErr: true})
	pool.Submit(&mockJob{shouldErr: false})
	pool.Close()

	results := pool.Wait()
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	failures := 0
	for _, res := range results {
		if res.GetError() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("expected 1 error, got %d", failures)
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown()

	// Submit after shutdown should not panic or block
	done := make(chan struct{})
	go func() {
		pool.Submit(&mockJob{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Submit after shutdown blocked")
	}
}

func testIndex(t *testing.T) *lookup.Index {
	t.Helper()

	ix, _, err := lookup.Build(map[string][]model.Entry{
		"Dog": {
			{Triple: "has an acute sense of hearing", Label: model.LabelTopicMarker},
			{Triple: "can bark loudly", Label: model.LabelTopicMarker},
			{Triple: "has webbed paws", Label: model.LabelTopicMarker},
		},
		"Cat": {
			{Triple: "has retractable claws", Label: model.LabelTopicMarker},
			{Triple: "has slit pupils", Label: model.LabelTopicMarker},
			{Triple: "can purr softly", Label: model.LabelTopicMarker},
		},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return ix
}

func TestGenerate_CoversAllConcepts(t *testing.T) {
	ix := testIndex(t)

	riddles := Generate(ix, nil, 42, 4)
	if len(riddles) != 2 {
		t.Fatalf("got %d riddles, want 2 (one v1 per concept): %+v", len(riddles), riddles)
	}

	var concepts []string
	for _, r := range riddles {
		concepts = append(concepts, r.Concept)
		if r.Version != model.V1 {
			t.Errorf("unexpected version %q for %s", r.Version, r.Concept)
		}
	}
	if !reflect.DeepEqual(concepts, []string{"Cat", "Dog"}) {
		t.Errorf("concept order = %v, want [Cat Dog]", concepts)
	}
}

func TestGenerate_DeterministicForSeed(t *testing.T) {
	ix := testIndex(t)

	first := Generate(ix, nil, 7, 1)
	second := Generate(ix, nil, 7, 8)

	if !reflect.DeepEqual(first, second) {
		t.Error("same seed across different worker counts produced different riddles")
	}
}

func TestReadConceptsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concepts.txt")
	content := "Dog\n# comment\n\nCat\nDog\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	concepts, err := ReadConceptsFromFile(path)
	if err != nil {
		t.Fatalf("ReadConceptsFromFile failed: %v", err)
	}
	if !reflect.DeepEqual(concepts, []string{"Dog", "Cat"}) {
		t.Errorf("concepts = %v, want [Dog Cat]", concepts)
	}
}

func TestReadConceptsFromFile_Missing(t *testing.T) {
	if _, err := ReadConceptsFromFile("no-such-file.txt"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
