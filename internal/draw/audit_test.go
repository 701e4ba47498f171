package draw

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/giveawayhq/sweepstakes-backend/internal/models"
)

func TestAuditLog(t *testing.T) {
	t.Run("Entries ordered most recent first", func(t *testing.T) {
		log := &AuditLog{}
		log.Append(models.AuditActionDraw, "first", nil, 1)
		log.Append(models.AuditActionReroll, "second", nil, 1)
		log.Append(models.AuditActionClaimUpdate, "third", nil, 1)

		entries := log.Entries()
		if len(entries) != 3 {
			t.Fatalf("Expected 3 entries, got %d", len(entries))
		}
		if entries[0].Detail != "third" || entries[2].Detail != "first" {
			t.Errorf("Expected newest-first ordering, got %q .. %q", entries[0].Detail, entries[2].Detail)
		}
	})

	t.Run("Every entry gets a unique id", func(t *testing.T) {
		log := &AuditLog{}
		id := primitive.NewObjectID()
		a := log.Append(models.AuditActionDraw, "a", &id, 1)
		b := log.Append(models.AuditActionDraw, "b", &id, 2)
		if a.ID == "" || b.ID == "" {
			t.Fatal("Expected non-empty entry ids")
		}
		if a.ID == b.ID {
			t.Error("Expected distinct ids for distinct entries")
		}
	})

	t.Run("Entries returns a copy", func(t *testing.T) {
		log := &AuditLog{}
		log.Append(models.AuditActionDraw, "only", nil, 1)
		entries := log.Entries()
		entries[0] = nil
		if log.Entries()[0] == nil {
			t.Error("Mutating the returned slice leaked into the log")
		}
		if log.Len() != 1 {
			t.Errorf("Expected length 1, got %d", log.Len())
		}
	})
}
