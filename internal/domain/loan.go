package domain

import (
	"sort"
	"time"
)

// LoanStatus is the persisted lifecycle stage of a loan. "Paid" is never
// stored as a status: settlement is derived from repaidAt and the payment
// ledger at read time.
type LoanStatus string

const (
	LoanStatusPending LoanStatus = "pending"
	LoanStatusLate    LoanStatus = "late"
	LoanStatusOnTime  LoanStatus = "on-time"
)

type PaymentType string

const (
	// PaymentTypePartial records an incremental repayment.
	PaymentTypePartial PaymentType = "partial"
	// PaymentTypeAdjustment records a manually edited paid figure. At most
	// one adjustment entry exists in a ledger at a time.
	PaymentTypeAdjustment PaymentType = "adjustment"
)

// PaymentEntry is one record in a loan's append-only payment ledger.
type PaymentEntry struct {
	ID     string      `firestore:"_id" json:"_id"`
	Type   PaymentType `firestore:"type" json:"type"`
	Amount float64     `firestore:"amount" json:"amount"`
	PaidAt time.Time   `firestore:"paidAt" json:"paid_at"`
}

// Extension records a single due-date extension.
type Extension struct {
	ExtendedFrom time.Time `firestore:"extendedFrom" json:"extended_from"`
	ExtendedTo   time.Time `firestore:"extendedTo" json:"extended_to"`
	ExtendedAt   time.Time `firestore:"extendedAt" json:"extended_at"`
}

// Loan is a tracked debt record: a principal, a due date, and a payment
// ledger, scoped to a single owning user. Optional lifecycle timestamps are
// pointers so a missing value is distinguishable from a zero one.
type Loan struct {
	ID               string         `firestore:"-" json:"id"`
	OwnerUID         string         `firestore:"ownerUid" json:"owner_uid"`
	BorrowerName     string         `firestore:"borrowerName" json:"borrower_name"`
	Phone            string         `firestore:"phone" json:"phone,omitempty"`
	PhoneCountry     string         `firestore:"phoneCountry" json:"phone_country,omitempty"`
	Amount           float64        `firestore:"amount" json:"amount"`
	Currency         string         `firestore:"currency" json:"currency"`
	TakenAt          time.Time      `firestore:"takenAt" json:"taken_at"`
	DueDate          time.Time      `firestore:"dueDate" json:"due_date"`
	OriginalDueDate  *time.Time     `firestore:"originalDueDate" json:"original_due_date,omitempty"`
	ExtensionHistory []Extension    `firestore:"extensionHistory" json:"extension_history,omitempty"`
	Status           LoanStatus     `firestore:"status" json:"status"`
	RepaidAt         *time.Time     `firestore:"repaidAt" json:"repaid_at,omitempty"`
	PaymentHistory   []PaymentEntry `firestore:"paymentHistory" json:"payment_history,omitempty"`
	DeletedAt        *time.Time     `firestore:"deletedAt" json:"deleted_at,omitempty"`
	CreatedAt        time.Time      `firestore:"createdAt,serverTimestamp" json:"created_at"`
}

// IsTrashed reports whether the loan is soft-deleted.
func (l *Loan) IsTrashed() bool {
	return l.DeletedAt != nil
}

// Partials returns the partial entries of a ledger, most recently paid first.
func Partials(history []PaymentEntry) []PaymentEntry {
	var out []PaymentEntry
	for _, entry := range history {
		if entry.Type == PaymentTypePartial {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PaidAt.After(out[j].PaidAt)
	})
	return out
}

// ReplaceAdjustment returns a copy of history with every adjustment entry
// removed and entry appended. This is the only way adjustments enter a
// ledger, which keeps the single-adjustment invariant.
func ReplaceAdjustment(history []PaymentEntry, entry PaymentEntry) []PaymentEntry {
	out := make([]PaymentEntry, 0, len(history)+1)
	for _, existing := range history {
		if existing.Type != PaymentTypeAdjustment {
			out = append(out, existing)
		}
	}
	entry.Type = PaymentTypeAdjustment
	return append(out, entry)
}
