package services

import (
	"encoding/json"
	"testing"

	"github.com/Shiva143-debug/backend-exp/internal/models"
	"github.com/Shiva143-debug/backend-exp/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	t.Run("records_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)

		svc.Log(7, "CREATE", "expense", 12, "10.0.0.1", map[string]any{"cost": "300"})

		var entry models.AuditLog
		testutil.AssertNoError(t, db.First(&entry).Error)
		if entry.UserID != 7 || entry.ResourceID != 12 || entry.IPAddress != "10.0.0.1" {
			t.Errorf("unexpected entry %+v", entry)
		}
		var changes map[string]any
		testutil.AssertNoError(t, json.Unmarshal([]byte(entry.Changes), &changes))
		if changes["cost"] != "300" {
			t.Errorf("unexpected changes %s", entry.Changes)
		}
	})

	t.Run("failure_does_not_panic", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAuditService(db)
		testutil.TeardownTestDB(t, db)

		svc.Log(7, "DELETE", "expense", 12, "", nil)
	})
}
