package store

import (
	"context"
	"testing"

	"github.com/hdupoux/inventaire/internal/db"
)

func TestInsertAndGetObject(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	obj, err := InsertObject(ctx, database, "AHO-001", 2021, "Laptop", 500)
	if err != nil {
		t.Fatalf("InsertObject: %v", err)
	}
	if obj.AhoID != "AHO-001" {
		t.Errorf("expected aho_id 'AHO-001', got %q", obj.AhoID)
	}
	if obj.Scanned {
		t.Error("new object should be unscanned")
	}
	if obj.Archived() {
		t.Error("new object should be active")
	}
}

func TestGetObjectMissing(t *testing.T) {
	database := db.NewTestDB(t)

	obj, err := GetObject(context.Background(), database, "AHO-404")
	if err != nil {
		t.Fatalf("GetObject: %v", err)
	}
	if obj != nil {
		t.Errorf("expected nil for missing object, got %+v", obj)
	}
}

func TestListObjectsActiveVsArchived(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	InsertObject(ctx, database, "AHO-001", 2021, "Laptop", 500)
	InsertObject(ctx, database, "AHO-002", 2020, "Projector", 900)

	_, err := UpdateObject(ctx, database, "AHO-002", Fields{
		"removal_year":      2022,
		"removal_reason_id": int64(1),
	})
	if err != nil {
		t.Fatalf("UpdateObject: %v", err)
	}

	active, _ := ListObjects(ctx, database, false)
	if len(active) != 1 || active[0].AhoID != "AHO-001" {
		t.Errorf("expected only AHO-001 active, got %v", active)
	}

	archived, _ := ListObjects(ctx, database, true)
	if len(archived) != 1 || archived[0].AhoID != "AHO-002" {
		t.Fatalf("expected only AHO-002 archived, got %v", archived)
	}
	if archived[0].RemovalReason != "Lost" {
		t.Errorf("expected joined reason label 'Lost', got %q", archived[0].RemovalReason)
	}
}

func TestUpdateObjectPartialFields(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	InsertObject(ctx, database, "AHO-001", 2021, "Laptop", 500)

	affected, err := UpdateObject(ctx, database, "AHO-001", Fields{"name": "Laptop 2"})
	if err != nil {
		t.Fatalf("UpdateObject: %v", err)
	}
	if affected != 1 {
		t.Errorf("expected 1 row affected, got %d", affected)
	}

	obj, _ := GetObject(ctx, database, "AHO-001")
	if obj.Name != "Laptop 2" {
		t.Errorf("expected updated name, got %q", obj.Name)
	}
	if obj.Price != 500 {
		t.Errorf("price should be untouched, got %v", obj.Price)
	}
}

func TestUpdateObjectEmptyDiff(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	InsertObject(ctx, database, "AHO-001", 2021, "Laptop", 500)

	affected, err := UpdateObject(ctx, database, "AHO-001", Fields{})
	if err != nil {
		t.Fatalf("UpdateObject: %v", err)
	}
	if affected != 0 {
		t.Errorf("expected 0 rows for empty diff, got %d", affected)
	}
}

func TestUpdateObjectHalfArchiveRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	InsertObject(ctx, database, "AHO-001", 2021, "Laptop", 500)

	// Setting only the year would leave the row half-archived; the schema
	// CHECK must refuse it.
	_, err := UpdateObject(ctx, database, "AHO-001", Fields{"removal_year": 2022})
	if err == nil {
		t.Error("expected constraint error for removal year without reason")
	}
}

func TestSetObjectScannedIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	InsertObject(ctx, database, "AHO-001", 2021, "Laptop", 500)

	first, err := SetObjectScanned(ctx, database, "AHO-001")
	if err != nil {
		t.Fatalf("SetObjectScanned: %v", err)
	}
	if first != 1 {
		t.Errorf("expected 1 row on first scan, got %d", first)
	}

	second, err := SetObjectScanned(ctx, database, "AHO-001")
	if err != nil {
		t.Fatalf("SetObjectScanned: %v", err)
	}
	if second != 0 {
		t.Errorf("expected 0 rows on repeat scan, got %d", second)
	}

	obj, _ := GetObject(ctx, database, "AHO-001")
	if !obj.Scanned {
		t.Error("object should be scanned")
	}
}

func TestInsertObjectDuplicateAho(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := InsertObject(ctx, database, "AHO-001", 2021, "Laptop", 500); err != nil {
		t.Fatalf("InsertObject: %v", err)
	}
	if _, err := InsertObject(ctx, database, "AHO-001", 2022, "Other", 10); err == nil {
		t.Error("expected unique constraint error for duplicate aho_id")
	}
}
