package drill

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/primefit-labs/training-scheduler/internal/audit"
	"github.com/primefit-labs/training-scheduler/internal/models"
)

// stubStore collects created drills in memory; names in failOn error out.
type stubStore struct {
	created []models.Drill
	failOn  map[string]bool
}

func (s *stubStore) CreateDrill(_ context.Context, d *models.Drill) error {
	if s.failOn[d.Name] {
		return errors.New("constraint violation")
	}
	s.created = append(s.created, *d)
	return nil
}

func testDispatcher(t *testing.T) *audit.Dispatcher {
	t.Helper()
	dir := t.TempDir()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := gdb.AutoMigrate(&models.AuditLog{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return audit.NewDispatcher(audit.New(gdb))
}

const header = "name,category,description,video_url,difficulty,tags,equipment,focus_areas\n"

// TestImport_PartialFailure verifies the per-row independence of the
// importer: one malformed row fails alone, every other row still lands,
// and the result accounts for all data rows.
func TestImport_PartialFailure(t *testing.T) {
	store := &stubStore{}
	uc := NewImport(store, testDispatcher(t))

	csv := header +
		"Ladder Shuffle,agility,Fast feet through the ladder,https://www.youtube.com/watch?v=abc12345678,beginner,footwork;speed,ladder,agility\n" +
		"Broken Row,strength\n" + // only 2 of the 4 required fields
		"Box Jump,plyometrics,Explosive jump onto a box,https://youtu.be/def45678901,intermediate,power,box,legs\n"

	result, err := uc.Execute(context.Background(), 7, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if result.Total != 3 {
		t.Errorf("expected total 3, got %d", result.Total)
	}
	if result.Created != 2 {
		t.Errorf("expected 2 created, got %d", result.Created)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly 1 row error, got %d: %+v", len(result.Errors), result.Errors)
	}
	if result.Errors[0].Row != 3 {
		t.Errorf("error should point at file row 3, got %d", result.Errors[0].Row)
	}
	if len(store.created) != 2 {
		t.Fatalf("store should hold the 2 good rows, got %d", len(store.created))
	}
	if store.created[0].Name != "Ladder Shuffle" || store.created[1].Name != "Box Jump" {
		t.Errorf("unexpected drills: %+v", store.created)
	}
}

// TestImport_RowValidation checks the per-row rejections: blank name and
// a video URL that is not a YouTube link.
func TestImport_RowValidation(t *testing.T) {
	store := &stubStore{}
	uc := NewImport(store, testDispatcher(t))

	csv := header +
		",agility,No name here,https://www.youtube.com/watch?v=abc12345678\n" +
		"Wall Sit,strength,Static hold,https://vimeo.com/12345\n"

	result, err := uc.Execute(context.Background(), 7, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if result.Created != 0 {
		t.Errorf("expected nothing created, got %d", result.Created)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 row errors, got %+v", result.Errors)
	}
}

// TestImport_StoreFailure verifies that an insert error fails only its
// own row.
func TestImport_StoreFailure(t *testing.T) {
	store := &stubStore{failOn: map[string]bool{"Cursed Drill": true}}
	uc := NewImport(store, testDispatcher(t))

	csv := header +
		"Fine Drill,agility,desc,\n" +
		"Cursed Drill,agility,desc,\n" +
		"Also Fine,agility,desc,\n"

	result, err := uc.Execute(context.Background(), 7, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if result.Created != 2 || len(result.Errors) != 1 {
		t.Fatalf("expected 2 created / 1 error, got %d / %d", result.Created, len(result.Errors))
	}
	if result.Errors[0].Row != 3 {
		t.Errorf("store failure should be reported on row 3, got %d", result.Errors[0].Row)
	}
}

// TestImport_FieldCleanup verifies trimming, category lowercasing and
// semicolon-list normalization.
func TestImport_FieldCleanup(t *testing.T) {
	store := &stubStore{}
	uc := NewImport(store, testDispatcher(t))

	csv := header +
		"  Cone Weave  , AGILITY ,desc,, beginner , speed; ;footwork ,cones, \n"

	result, err := uc.Execute(context.Background(), 7, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("expected 1 created, got %+v", result)
	}

	d := store.created[0]
	if d.Name != "Cone Weave" {
		t.Errorf("name not trimmed: %q", d.Name)
	}
	if d.Category != "agility" {
		t.Errorf("category not lowercased: %q", d.Category)
	}
	if d.Tags != "speed;footwork" {
		t.Errorf("tags not normalized: %q", d.Tags)
	}
	if d.CreatedByID != 7 {
		t.Errorf("creator not recorded: %d", d.CreatedByID)
	}
}
