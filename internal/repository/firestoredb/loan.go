package firestoredb

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/domain"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/logger"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/repository"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/utils"
)

const loansCollection = "loans"

type loanRepo struct {
	client *firestore.Client
}

func (r *loanRepo) loans() *firestore.CollectionRef {
	return r.client.Collection(loansCollection)
}

func (r *loanRepo) Create(ctx context.Context, loan *domain.Loan) error {
	ref, _, err := r.loans().Add(ctx, loan)
	if err != nil {
		return fmt.Errorf("create loan: %w", err)
	}
	loan.ID = ref.ID
	return nil
}

func (r *loanRepo) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	snap, err := r.loans().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, repository.ErrLoanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get loan %s: %w", id, err)
	}
	return decodeLoan(snap), nil
}

func (r *loanRepo) Update(ctx context.Context, id string, patch *repository.LoanPatch) error {
	updates := patchUpdates(patch)
	if len(updates) == 0 {
		return nil
	}
	_, err := r.loans().Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return repository.ErrLoanNotFound
	}
	if err != nil {
		return fmt.Errorf("update loan %s: %w", id, err)
	}
	return nil
}

func (r *loanRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.loans().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete loan %s: %w", id, err)
	}
	return nil
}

func (r *loanRepo) ListOverduePending(ctx context.Context, ownerUID string, asOf time.Time) ([]domain.Loan, error) {
	q := r.loans().
		Where("status", "==", string(domain.LoanStatusPending)).
		Where("dueDate", "<", asOf).
		Where("deletedAt", "==", nil)
	if ownerUID != "" {
		q = q.Where("ownerUid", "==", ownerUID)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var loans []domain.Loan
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list overdue pending loans: %w", err)
		}
		loans = append(loans, *decodeLoan(snap))
	}
	return loans, nil
}

func (r *loanRepo) MarkLate(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(ids))
	for _, id := range ids {
		job, err := bw.Update(r.loans().Doc(id), []firestore.Update{
			{Path: "status", Value: string(domain.LoanStatusLate)},
		})
		if err != nil {
			bw.End()
			return fmt.Errorf("queue late update for loan %s: %w", id, err)
		}
		jobs = append(jobs, job)
	}
	bw.End()
	for i, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("mark loan %s late: %w", ids[i], err)
		}
	}
	return nil
}

func (r *loanRepo) WatchActive(ctx context.Context, ownerUID string) (<-chan []domain.Loan, func(), error) {
	q := r.loans().
		Where("ownerUid", "==", ownerUID).
		Where("deletedAt", "==", nil)
	ctx, stop := context.WithCancel(ctx)
	// The active view has no server-side order; snapshots are re-sorted by
	// creation time before delivery.
	return r.watch(ctx, q, true), stop, nil
}

func (r *loanRepo) WatchTrash(ctx context.Context, ownerUID string) (<-chan []domain.Loan, func(), error) {
	q := r.loans().
		Where("ownerUid", "==", ownerUID).
		Where("deletedAt", "!=", nil).
		OrderBy("deletedAt", firestore.Desc)
	ctx, stop := context.WithCancel(ctx)
	return r.watch(ctx, q, false), stop, nil
}

// watch adapts Firestore's snapshot stream to a channel of full snapshots.
// Each delivery replaces the previous view; a pending undelivered snapshot
// is dropped when a newer one arrives. The stream ends when ctx is
// cancelled.
func (r *loanRepo) watch(ctx context.Context, q firestore.Query, sortByCreated bool) <-chan []domain.Loan {
	ch := make(chan []domain.Loan, 1)
	snaps := q.Snapshots(ctx)

	go func() {
		defer close(ch)
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if ctx.Err() == nil && status.Code(err) != codes.Canceled {
					logger.Error("loan snapshot stream failed", "error", err)
				}
				return
			}
			docs, err := snap.Documents.GetAll()
			if err != nil {
				logger.Error("read loan snapshot documents", "error", err)
				continue
			}
			loans := make([]domain.Loan, 0, len(docs))
			for _, doc := range docs {
				loans = append(loans, *decodeLoan(doc))
			}
			if sortByCreated {
				utils.SortByCreatedDesc(loans)
			}
			// Latest snapshot wins if the consumer is behind.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- loans:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// decodeLoan converts a document snapshot into a Loan. Records that fail
// strict decoding (legacy documents with mistyped fields) fall back to a
// field-by-field coercion so a single corrupt record never poisons a whole
// snapshot.
func decodeLoan(snap *firestore.DocumentSnapshot) *domain.Loan {
	var loan domain.Loan
	if err := snap.DataTo(&loan); err != nil {
		logger.Warn("loan document failed strict decode", "loan_id", snap.Ref.ID, "error", err)
		loan = decodeLoose(snap.Data())
	}
	loan.ID = snap.Ref.ID
	return &loan
}

func decodeLoose(data map[string]any) domain.Loan {
	loan := domain.Loan{
		OwnerUID:     asString(data["ownerUid"]),
		BorrowerName: asString(data["borrowerName"]),
		Phone:        asString(data["phone"]),
		PhoneCountry: asString(data["phoneCountry"]),
		Amount:       asFloat(data["amount"]),
		Currency:     asString(data["currency"]),
		Status:       domain.LoanStatus(asString(data["status"])),
	}
	if t, ok := utils.ToDate(data["takenAt"]); ok {
		loan.TakenAt = t
	}
	if t, ok := utils.ToDate(data["dueDate"]); ok {
		loan.DueDate = t
	}
	if t, ok := utils.ToDate(data["createdAt"]); ok {
		loan.CreatedAt = t
	}
	if t, ok := utils.ToDate(data["originalDueDate"]); ok {
		loan.OriginalDueDate = &t
	}
	if t, ok := utils.ToDate(data["repaidAt"]); ok {
		loan.RepaidAt = &t
	}
	if t, ok := utils.ToDate(data["deletedAt"]); ok {
		loan.DeletedAt = &t
	}
	if entries, ok := data["paymentHistory"].([]any); ok {
		for _, raw := range entries {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			payment := domain.PaymentEntry{
				ID:     asString(entry["_id"]),
				Type:   domain.PaymentType(asString(entry["type"])),
				Amount: asFloat(entry["amount"]),
			}
			if t, ok := utils.ToDate(entry["paidAt"]); ok {
				payment.PaidAt = t
			}
			loan.PaymentHistory = append(loan.PaymentHistory, payment)
		}
	}
	if entries, ok := data["extensionHistory"].([]any); ok {
		for _, raw := range entries {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			var ext domain.Extension
			if t, ok := utils.ToDate(entry["extendedFrom"]); ok {
				ext.ExtendedFrom = t
			}
			if t, ok := utils.ToDate(entry["extendedTo"]); ok {
				ext.ExtendedTo = t
			}
			if t, ok := utils.ToDate(entry["extendedAt"]); ok {
				ext.ExtendedAt = t
			}
			loan.ExtensionHistory = append(loan.ExtensionHistory, ext)
		}
	}
	return loan
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

// patchUpdates translates a LoanPatch into Firestore field updates,
// including the two null-vs-delete cases the patch distinguishes.
func patchUpdates(p *repository.LoanPatch) []firestore.Update {
	if p.IsEmpty() {
		return nil
	}
	var updates []firestore.Update
	addValue := func(path string, value any) {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	if p.BorrowerName != nil {
		addValue("borrowerName", *p.BorrowerName)
	}
	if p.Phone != nil {
		addValue("phone", nullableString(*p.Phone))
	}
	if p.PhoneCountry != nil {
		addValue("phoneCountry", nullableString(*p.PhoneCountry))
	}
	if p.Amount != nil {
		addValue("amount", *p.Amount)
	}
	if p.Currency != nil {
		addValue("currency", *p.Currency)
	}
	if p.TakenAt != nil {
		addValue("takenAt", *p.TakenAt)
	}
	if p.DueDate != nil {
		addValue("dueDate", *p.DueDate)
	}
	if p.OriginalDueDate != nil {
		addValue("originalDueDate", *p.OriginalDueDate)
	}
	if p.AppendExtension != nil {
		addValue("extensionHistory", firestore.ArrayUnion(*p.AppendExtension))
	}
	if p.Status != nil {
		addValue("status", string(*p.Status))
	}
	switch {
	case p.ClearRepaidAt:
		addValue("repaidAt", firestore.Delete)
	case p.RepaidAt != nil:
		addValue("repaidAt", *p.RepaidAt)
	}
	if p.PaymentHistory != nil {
		addValue("paymentHistory", *p.PaymentHistory)
	}
	switch {
	case p.ClearDeletedAt:
		addValue("deletedAt", nil)
	case p.DeletedAt != nil:
		addValue("deletedAt", *p.DeletedAt)
	}
	return updates
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
