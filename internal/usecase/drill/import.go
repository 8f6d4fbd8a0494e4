package drill

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/primefit-labs/training-scheduler/internal/audit"
	"github.com/primefit-labs/training-scheduler/internal/dto"
	"github.com/primefit-labs/training-scheduler/internal/models"
	"github.com/primefit-labs/training-scheduler/internal/validators"
)

// Store is the single write the importer needs; the gorm repository
// satisfies it, tests swap in a failing stub.
type Store interface {
	CreateDrill(ctx context.Context, d *models.Drill) error
}

// Expected column order. Rows shorter than the four required columns are
// rejected per row; trailing optional columns may be absent.
//
//	name,category,description,video_url[,difficulty,tags,equipment,focus_areas]
const requiredColumns = 4

// ======================================================
// USE CASE
// ======================================================

type Import struct {
	store Store
	audit *audit.Dispatcher
}

func NewImport(store Store, audit *audit.Dispatcher) *Import {
	return &Import{store: store, audit: audit}
}

// Execute reads a CSV stream (header row first) and creates one drill per
// valid data row. Rows fail independently: a malformed or rejected row is
// recorded and the run continues, so the result always accounts for every
// data row in the file.
func (uc *Import) Execute(
	ctx context.Context,
	actorID uint,
	r io.Reader,
) (*dto.DrillImportResult, error) {

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	result := &dto.DrillImportResult{}
	rowNum := 1

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.Total++
			result.Errors = append(result.Errors, dto.DrillImportError{
				Row: rowNum, Message: "unreadable row: " + err.Error(),
			})
			continue
		}

		result.Total++

		if len(row) < requiredColumns {
			result.Errors = append(result.Errors, dto.DrillImportError{
				Row: rowNum, Message: fmt.Sprintf("expected at least %d fields, got %d", requiredColumns, len(row)),
			})
			continue
		}

		d := rowToDrill(row, actorID)

		if d.Name == "" {
			result.Errors = append(result.Errors, dto.DrillImportError{
				Row: rowNum, Message: "name is required",
			})
			continue
		}

		if d.VideoURL != "" && !validators.IsYouTubeURL(d.VideoURL) {
			result.Errors = append(result.Errors, dto.DrillImportError{
				Row: rowNum, Message: "invalid video url: " + d.VideoURL,
			})
			continue
		}

		if err := uc.store.CreateDrill(ctx, d); err != nil {
			result.Errors = append(result.Errors, dto.DrillImportError{
				Row: rowNum, Message: "insert failed: " + err.Error(),
			})
			continue
		}

		result.Created++
	}

	uc.audit.Dispatch(audit.Event{
		ActorID: &actorID,
		Action:  "drills_imported",
		Entity:  "drill",
		Metadata: map[string]int{
			"total":   result.Total,
			"created": result.Created,
			"errors":  len(result.Errors),
		},
	})

	return result, nil
}

func rowToDrill(row []string, actorID uint) *models.Drill {
	col := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	return &models.Drill{
		CreatedByID: actorID,
		Name:        col(0),
		Category:    strings.ToLower(col(1)),
		Description: col(2),
		VideoURL:    col(3),
		Difficulty:  strings.ToLower(col(4)),
		Tags:        normalizeList(col(5)),
		Equipment:   normalizeList(col(6)),
		FocusAreas:  normalizeList(col(7)),
	}
}

// normalizeList cleans a semicolon-separated multi-value field, dropping
// empty segments.
func normalizeList(raw string) string {
	if raw == "" {
		return ""
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return strings.Join(out, ";")
}
