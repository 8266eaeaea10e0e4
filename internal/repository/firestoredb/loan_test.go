package firestoredb

import (
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/domain"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/repository"
)

func findUpdate(t *testing.T, updates []firestore.Update, path string) *firestore.Update {
	t.Helper()
	for i := range updates {
		if updates[i].Path == path {
			return &updates[i]
		}
	}
	return nil
}

func TestPatchUpdates(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Empty", func(t *testing.T) {
		assert.Nil(t, patchUpdates(&repository.LoanPatch{}))
	})

	t.Run("ScalarFields", func(t *testing.T) {
		name := "Ali Khan"
		amount := 750.0
		patch := &repository.LoanPatch{BorrowerName: &name, Amount: &amount}

		updates := patchUpdates(patch)
		require.Len(t, updates, 2)
		assert.Equal(t, "Ali Khan", findUpdate(t, updates, "borrowerName").Value)
		assert.Equal(t, 750.0, findUpdate(t, updates, "amount").Value)
	})

	t.Run("EmptyPhoneStoresNull", func(t *testing.T) {
		empty := ""
		filled := "+92 3001234567"
		patch := &repository.LoanPatch{Phone: &empty, PhoneCountry: &filled}

		updates := patchUpdates(patch)
		assert.Nil(t, findUpdate(t, updates, "phone").Value)
		assert.Equal(t, filled, findUpdate(t, updates, "phoneCountry").Value)
	})

	t.Run("ClearRepaidAtDeletesField", func(t *testing.T) {
		patch := &repository.LoanPatch{ClearRepaidAt: true}

		updates := patchUpdates(patch)
		require.Len(t, updates, 1)
		assert.Equal(t, firestore.Delete, updates[0].Value)
	})

	t.Run("ClearRepaidAtWinsOverValue", func(t *testing.T) {
		patch := &repository.LoanPatch{ClearRepaidAt: true, RepaidAt: &now}

		updates := patchUpdates(patch)
		require.Len(t, updates, 1)
		assert.Equal(t, firestore.Delete, updates[0].Value)
	})

	t.Run("ClearDeletedAtStoresNull", func(t *testing.T) {
		patch := &repository.LoanPatch{ClearDeletedAt: true}

		updates := patchUpdates(patch)
		require.Len(t, updates, 1)
		assert.Equal(t, "deletedAt", updates[0].Path)
		assert.Nil(t, updates[0].Value)
	})

	t.Run("ExtensionAppendsViaArrayUnion", func(t *testing.T) {
		ext := domain.Extension{ExtendedFrom: now, ExtendedTo: now.AddDate(0, 1, 0), ExtendedAt: now}
		patch := &repository.LoanPatch{AppendExtension: &ext}

		updates := patchUpdates(patch)
		require.Len(t, updates, 1)
		assert.Equal(t, "extensionHistory", updates[0].Path)
		assert.Equal(t, firestore.ArrayUnion(ext), updates[0].Value)
	})

	t.Run("StatusStoredAsString", func(t *testing.T) {
		late := domain.LoanStatusLate
		patch := &repository.LoanPatch{Status: &late}

		updates := patchUpdates(patch)
		require.Len(t, updates, 1)
		assert.Equal(t, "late", updates[0].Value)
	})
}

func TestDecodeLoose(t *testing.T) {
	created := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)

	t.Run("MixedLegacyShapes", func(t *testing.T) {
		data := map[string]any{
			"ownerUid":     "user-1",
			"borrowerName": "Ali Khan",
			"amount":       int64(1500),
			"currency":     "PKR",
			"status":       "pending",
			// Legacy records store dates as epoch millis or strings.
			"takenAt":   created.UnixMilli(),
			"dueDate":   "2025-02-10",
			"createdAt": created,
			"paymentHistory": []any{
				map[string]any{
					"_id":    "p1",
					"type":   "partial",
					"amount": 500.0,
					"paidAt": created.AddDate(0, 0, 5).UnixMilli(),
				},
				"garbage entry",
			},
			"extensionHistory": []any{
				map[string]any{
					"extendedFrom": "2025-02-01",
					"extendedTo":   "2025-02-10",
					"extendedAt":   created.UnixMilli(),
				},
			},
		}

		loan := decodeLoose(data)

		assert.Equal(t, "user-1", loan.OwnerUID)
		assert.Equal(t, 1500.0, loan.Amount)
		assert.Equal(t, domain.LoanStatusPending, loan.Status)
		assert.True(t, loan.TakenAt.Equal(created))
		assert.Equal(t, 2025, loan.DueDate.Year())
		assert.Nil(t, loan.RepaidAt)
		assert.Nil(t, loan.DeletedAt)

		require.Len(t, loan.PaymentHistory, 1)
		assert.Equal(t, "p1", loan.PaymentHistory[0].ID)
		assert.Equal(t, domain.PaymentTypePartial, loan.PaymentHistory[0].Type)

		require.Len(t, loan.ExtensionHistory, 1)
		assert.Equal(t, 2025, loan.ExtensionHistory[0].ExtendedTo.Year())
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		loan := decodeLoose(map[string]any{})
		assert.Empty(t, loan.BorrowerName)
		assert.True(t, loan.DueDate.IsZero())
		assert.Nil(t, loan.PaymentHistory)
	})
}
