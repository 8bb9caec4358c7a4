package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/xuri/excelize/v2"

	"datavista/internal/dataset"
)

func csvSource(t *testing.T) *dataset.Source {
	t.Helper()
	src, err := dataset.Open("data.csv", []byte("x,y\n1,2\n"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return src
}

func workbookSource(t *testing.T, sheets ...string) *dataset.Source {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, name := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("Failed to rename sheet: %v", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("Failed to add sheet: %v", err)
			}
		}
		row := []interface{}{"col"}
		if err := f.SetSheetRow(name, "A1", &row); err != nil {
			t.Fatalf("Failed to set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to serialize workbook: %v", err)
	}
	src, err := dataset.Open("book.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return src
}

func TestCreateCSVSessionHasDataset(t *testing.T) {
	store := NewStore()
	sess, err := store.Create(csvSource(t))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sess.ID == "" {
		t.Error("Expected a session id")
	}
	if sess.Dataset == nil {
		t.Fatal("Expected CSV session to have an active dataset")
	}
	if got := store.Get(sess.ID); got != sess {
		t.Error("Expected Get to return the created session")
	}
}

func TestCreateMultiSheetSessionDefersSelection(t *testing.T) {
	store := NewStore()
	sess, err := store.Create(workbookSource(t, "One", "Two"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sess.Dataset != nil {
		t.Error("Expected multi-sheet session to wait for a sheet selection")
	}

	ds, err := store.SelectSheet(sess.ID, "Two")
	if err != nil {
		t.Fatalf("SelectSheet failed: %v", err)
	}
	if ds.Name != "Two" {
		t.Errorf("Expected dataset from sheet Two, got %q", ds.Name)
	}
	if sess.Dataset == nil {
		t.Error("Expected selection to populate the session dataset")
	}
}

func TestSingleSheetWorkbookLoadsImmediately(t *testing.T) {
	store := NewStore()
	sess, err := store.Create(workbookSource(t, "Only"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sess.Dataset == nil {
		t.Error("Expected single-sheet workbook to load its dataset at upload")
	}
}

func TestActiveDataset(t *testing.T) {
	store := NewStore()
	sess, err := store.Create(workbookSource(t, "One", "Two"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, ds := store.ActiveDataset(sess.ID)
	if got == nil {
		t.Fatal("Expected the session to be found")
	}
	if ds != nil {
		t.Error("Expected no active dataset before a sheet selection")
	}

	if _, err := store.SelectSheet(sess.ID, "One"); err != nil {
		t.Fatalf("SelectSheet failed: %v", err)
	}
	if _, ds = store.ActiveDataset(sess.ID); ds == nil || ds.Name != "One" {
		t.Errorf("Expected active dataset from sheet One, got %v", ds)
	}

	if got, ds = store.ActiveDataset("nope"); got != nil || ds != nil {
		t.Error("Expected nothing for an unknown session id")
	}
}

func TestSheetSelectionDuringReads(t *testing.T) {
	store := NewStore()
	sess, err := store.Create(workbookSource(t, "One", "Two"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := store.SelectSheet(sess.ID, "Two"); err != nil {
				t.Errorf("SelectSheet failed: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			store.ActiveDataset(sess.ID)
		}()
	}
	wg.Wait()

	if _, ds := store.ActiveDataset(sess.ID); ds == nil || ds.Name != "Two" {
		t.Errorf("Expected active dataset from sheet Two, got %v", ds)
	}
}

func TestSelectSheetUnknownSession(t *testing.T) {
	store := NewStore()
	if _, err := store.SelectSheet("nope", "One"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	store := NewStore()
	sess, err := store.Create(csvSource(t))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !store.Delete(sess.ID) {
		t.Error("Expected Delete to report the session existed")
	}
	if store.Get(sess.ID) != nil {
		t.Error("Expected deleted session to be gone")
	}
	if store.Len() != 0 {
		t.Errorf("Expected empty store, got %d sessions", store.Len())
	}
	if store.Delete(sess.ID) {
		t.Error("Expected Delete of an already removed session to report false")
	}
}
