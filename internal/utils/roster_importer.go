package utils

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/giveawayhq/sweepstakes-backend/internal/models"
	"github.com/giveawayhq/sweepstakes-backend/internal/repositories"
)

// RosterImportResult summarises a CSV roster import
type RosterImportResult struct {
	TotalRows int      `json:"totalRows"`
	Imported  int      `json:"imported"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors,omitempty"`
}

// RosterImporter bulk-loads participants from CSV exports of the campaign
// signup form. Column headers are matched loosely so exports from different
// tools work without reshaping.
type RosterImporter struct {
	participantRepo repositories.ParticipantRepository
}

// NewRosterImporter creates a new RosterImporter
func NewRosterImporter(participantRepo repositories.ParticipantRepository) *RosterImporter {
	return &RosterImporter{participantRepo: participantRepo}
}

// Import reads the CSV stream and inserts the valid rows in one batch.
// Rows without an email are skipped and reported, not fatal.
func (i *RosterImporter) Import(ctx context.Context, r io.Reader) (*RosterImportResult, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	nameIdx := findColumnIndex(header, []string{"Name", "Full Name", "Participant"})
	emailIdx := findColumnIndex(header, []string{"Email", "Email Address", "E-mail"})
	countryIdx := findColumnIndex(header, []string{"Country", "Country Code"})
	qualityIdx := findColumnIndex(header, []string{"Quality Score", "Quality", "Score"})
	engagementIdx := findColumnIndex(header, []string{"Engagement", "Engagement Score"})
	entriesIdx := findColumnIndex(header, []string{"Entries", "Entry Count", "Tickets"})
	statusIdx := findColumnIndex(header, []string{"Status", "Account Status"})

	if emailIdx == -1 {
		return nil, fmt.Errorf("email column not found in CSV")
	}

	result := &RosterImportResult{}
	var batch []*models.Participant

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("error reading row: %v", err))
			continue
		}
		result.TotalRows++

		email := strings.TrimSpace(row[emailIdx])
		if email == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: no email", result.TotalRows))
			continue
		}

		participant := &models.Participant{
			Email:        strings.ToLower(email),
			Name:         columnValue(row, nameIdx),
			Country:      columnValue(row, countryIdx),
			QualityScore: columnInt(row, qualityIdx, 0),
			Engagement:   columnInt(row, engagementIdx, 0),
			Entries:      columnInt(row, entriesIdx, 1),
			Status:       models.ParticipantStatusActive,
		}
		if strings.EqualFold(columnValue(row, statusIdx), string(models.ParticipantStatusBlocked)) {
			participant.Status = models.ParticipantStatusBlocked
		}
		batch = append(batch, participant)
	}

	if len(batch) > 0 {
		if err := i.participantRepo.CreateMany(ctx, batch); err != nil {
			return nil, fmt.Errorf("failed to insert participants: %w", err)
		}
	}
	result.Imported = len(batch)
	return result, nil
}

// findColumnIndex finds the first header matching any of the candidate names
// (case-insensitive).
func findColumnIndex(header []string, candidates []string) int {
	for idx, col := range header {
		for _, name := range candidates {
			if strings.EqualFold(strings.TrimSpace(col), name) {
				return idx
			}
		}
	}
	return -1
}

func columnValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func columnInt(row []string, idx, fallback int) int {
	v := columnValue(row, idx)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
