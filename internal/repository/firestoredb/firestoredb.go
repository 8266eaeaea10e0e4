// Package firestoredb implements the repository contracts on Cloud
// Firestore. It is the only package that talks to the store; everything
// above it works with domain types and patches.
package firestoredb

import (
	"cloud.google.com/go/firestore"

	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/repository"
)

// Store bundles the Firestore-backed repositories.
type Store struct {
	LoanRepository repository.LoanRepository
}

// NewStore creates repositories sharing a single Firestore client.
func NewStore(client *firestore.Client) *Store {
	return &Store{
		LoanRepository: &loanRepo{client: client},
	}
}
