package store

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/matzehuels/flowlayout/pkg/document"
	"github.com/matzehuels/flowlayout/pkg/errors"
)

func sampleLayout() document.Layout {
	return document.Layout{
		Width: 90, Height: 50, ContentWidth: 90, ContentHeight: 50,
		Rows: []document.Row{
			{Index: 0, UsedWidth: 90, Height: 20, Items: []string{"go", "rust"}},
			{Index: 1, Y: 30, UsedWidth: 40, Height: 20, Items: []string{"zig"}},
		},
		Items: []document.Placed{
			{ID: "go", Width: 40, Height: 20},
			{ID: "rust", X: 50, Width: 40, Height: 20},
			{ID: "zig", Row: 1, Y: 30, Width: 40, Height: 20},
		},
	}
}

// testStore runs the behavior every Store must have.
func testStore(t *testing.T, s Store) {
	ctx := context.Background()
	l := sampleLayout()

	before := time.Now().Add(-time.Second)
	id, err := s.Save(ctx, "chips.json", l)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("id %q is not a uuid: %v", id, err)
	}

	rec, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.ID != id || rec.Source != "chips.json" {
		t.Errorf("record = %+v", rec)
	}
	if diff := cmp.Diff(l, rec.Layout); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}
	if rec.CreatedAt.Before(before) || rec.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt = %v", rec.CreatedAt)
	}

	other, err := s.Save(ctx, "", l)
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if other == id {
		t.Error("ids should be unique")
	}

	_, err = s.Get(ctx, uuid.NewString())
	if !errors.Is(err, errors.ErrCodeLayoutNotFound) {
		t.Errorf("missing id: err = %v, want LAYOUT_NOT_FOUND", err)
	}
	_, err = s.Get(ctx, "../etc")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad id: err = %v, want INVALID_INPUT", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	testStore(t, s)
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	id, _ := s.Save(ctx, "", sampleLayout())

	rec, _ := s.Get(ctx, id)
	rec.Source = "changed"

	again, _ := s.Get(ctx, id)
	if again.Source != "" {
		t.Error("mutating a returned record should not change the store")
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := s.Save(ctx, fmt.Sprintf("doc-%d", i), sampleLayout())
			if err != nil {
				t.Errorf("Save: %v", err)
				return
			}
			if _, err := s.Get(ctx, id); err != nil {
				t.Errorf("Get: %v", err)
			}
		}(i)
	}
	wg.Wait()
	if s.Len() != 20 {
		t.Errorf("Len = %d, want 20", s.Len())
	}
}

func TestMemoryStoreClosed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Close(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(ctx, "", sampleLayout()); err == nil {
		t.Error("Save on a closed store should fail")
	}
}

// MongoDB tests run against a live server named by FLOWLAYOUT_TEST_MONGO.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("FLOWLAYOUT_TEST_MONGO")
	if uri == "" {
		t.Skip("FLOWLAYOUT_TEST_MONGO not set")
	}
	ctx := context.Background()
	s, err := NewMongoStore(ctx, uri, "flowlayout_test")
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Drop(ctx)
		_ = s.Close(ctx)
	})
	testStore(t, s)
}
