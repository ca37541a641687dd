// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/voxclone-client/internal/adapter"
	"github.com/MKhiriev/voxclone-client/internal/logger"
	"github.com/MKhiriev/voxclone-client/models"
)

type clientCreditService struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger

	mu       sync.RWMutex
	balance  models.CreditBalance
	revision uint64
	// cycle grows on Reset; answers requested in an older cycle are dropped.
	cycle uint64
}

// NewClientCreditService creates a ledger with a zero balance.
func NewClientCreditService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientCreditService {
	return &clientCreditService{
		adapter: serverAdapter,
		logger:  logger.Component("credits"),
	}
}

func (s *clientCreditService) FetchBalance(ctx context.Context) (models.CreditBalance, error) {
	cycle := s.currentCycle()
	credits, err := s.adapter.Credits(ctx)
	if err != nil {
		return s.Balance(), fmt.Errorf("fetch balance: %w", err)
	}

	s.mu.Lock()
	if s.cycle != cycle {
		s.mu.Unlock()
		s.logger.Debug().Msg("dropping balance of a finished session")
		return s.Balance(), fmt.Errorf("fetch balance: %w", ErrSessionSuperseded)
	}
	s.setLocked(credits.Credits)
	s.mu.Unlock()

	s.logger.Debug().Int64("credits", int64(credits.Credits)).Msg("balance fetched")
	return credits.Credits, nil
}

func (s *clientCreditService) FetchUsage(ctx context.Context) (models.UsageStats, error) {
	usage, err := s.adapter.Usage(ctx)
	if err != nil {
		return models.UsageStats{}, fmt.Errorf("fetch usage: %w", err)
	}
	return usage, nil
}

func (s *clientCreditService) FetchTransactions(ctx context.Context, limit, offset int) ([]models.CreditTransaction, error) {
	if limit < 1 || limit > MaxTransactionsPage || offset < 0 {
		return nil, ErrInvalidPage
	}

	txs, err := s.adapter.Transactions(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}
	return txs, nil
}

func (s *clientCreditService) DeductLocally(amount int64) models.CreditBalance {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.balance.Sub(amount)
	if next != s.balance {
		s.balance = next
		s.revision++
	}
	return s.balance
}

func (s *clientCreditService) Set(balance models.CreditBalance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(balance)
}

func (s *clientCreditService) setLocked(balance models.CreditBalance) {
	if balance < 0 {
		balance = 0
	}
	if balance != s.balance {
		s.balance = balance
		s.revision++
	}
}

func (s *clientCreditService) Balance() models.CreditBalance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balance
}

func (s *clientCreditService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycle++
	s.setLocked(0)
}

func (s *clientCreditService) currentCycle() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cycle
}

func (s *clientCreditService) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}
