package accounts

import (
	"context"
	"fmt"
	"sync"
)

// MockService implements Service with in-memory balances for testing
type MockService struct {
	mu       sync.RWMutex
	players  map[string]*PlayerDetail // keyed by token
	debits   []DebitRequest
	credits  []CreditRequest
	txnSeq   int
	FailNext error // returned by the next Debit when set
}

// NewMockService creates a new mock ledger
func NewMockService() *MockService {
	return &MockService{players: make(map[string]*PlayerDetail)}
}

// AddPlayer registers a player resolvable by token (for testing)
func (s *MockService) AddPlayer(token string, detail PlayerDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[token] = &detail
}

func (s *MockService) FetchPlayer(ctx context.Context, token, gameID string) (*PlayerDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	detail, exists := s.players[token]
	if !exists {
		return nil, fmt.Errorf("unknown token")
	}
	copied := *detail
	return &copied, nil
}

func (s *MockService) Debit(ctx context.Context, req DebitRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailNext != nil {
		err := s.FailNext
		s.FailNext = nil
		return "", err
	}

	detail, exists := s.players[req.Token]
	if exists {
		detail.Balance -= req.Amount
	}

	s.debits = append(s.debits, req)
	s.txnSeq++
	return fmt.Sprintf("mock-txn-%d", s.txnSeq), nil
}

func (s *MockService) Credit(ctx context.Context, req CreditRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	detail, exists := s.players[req.Token]
	if exists {
		detail.Balance += req.Amount
	}

	s.credits = append(s.credits, req)
	return nil
}

// Debits returns a copy of all recorded debits
func (s *MockService) Debits() []DebitRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]DebitRequest(nil), s.debits...)
}

// Credits returns a copy of all recorded credits
func (s *MockService) Credits() []CreditRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]CreditRequest(nil), s.credits...)
}
