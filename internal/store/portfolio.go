package store

import (
	"sort"
	"sync"
	"time"

	"github.com/xplaincrypto/risk-engine/pkg/models"
	"github.com/xplaincrypto/risk-engine/pkg/utils/errors"
	"github.com/xplaincrypto/risk-engine/pkg/utils/logger"
)

// PortfolioStore is an in-memory portfolio registry. Reads return deep
// copies so a running assessment always works on an immutable snapshot.
type PortfolioStore struct {
	portfolios map[string]models.Portfolio
	mu         sync.RWMutex
	log        *logger.Logger
}

// NewPortfolioStore creates an empty store.
func NewPortfolioStore() *PortfolioStore {
	return &PortfolioStore{
		portfolios: make(map[string]models.Portfolio),
		log:        logger.GetLogger("store.portfolio"),
	}
}

// Get returns a snapshot of the portfolio with the given ID.
func (s *PortfolioStore) Get(id string) (models.Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	portfolio, exists := s.portfolios[id]
	if !exists {
		return models.Portfolio{}, errors.NotFound("portfolio not found: " + id)
	}
	return snapshot(portfolio), nil
}

// List returns snapshots of all portfolios, ordered by ID.
func (s *PortfolioStore) List() []models.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()

	portfolios := make([]models.Portfolio, 0, len(s.portfolios))
	for _, p := range s.portfolios {
		portfolios = append(portfolios, snapshot(p))
	}
	sort.Slice(portfolios, func(i, j int) bool {
		return portfolios[i].ID < portfolios[j].ID
	})
	return portfolios
}

// Save inserts or replaces a portfolio.
func (s *PortfolioStore) Save(portfolio models.Portfolio) error {
	if portfolio.ID == "" {
		return errors.InvalidInput("portfolio ID cannot be empty")
	}
	for _, h := range portfolio.Holdings {
		if h.Quantity < 0 {
			return errors.InvalidInput("holding quantity cannot be negative: " + h.Symbol)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := s.portfolios[portfolio.ID]; ok {
		portfolio.Created = existing.Created
	} else {
		portfolio.Created = now
	}
	portfolio.Updated = now

	s.portfolios[portfolio.ID] = snapshot(portfolio)
	s.log.Debugf("saved portfolio %s with %d holdings", portfolio.ID, len(portfolio.Holdings))
	return nil
}

// Delete removes a portfolio by ID.
func (s *PortfolioStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.portfolios[id]; !exists {
		return errors.NotFound("portfolio not found: " + id)
	}
	delete(s.portfolios, id)
	return nil
}

func snapshot(p models.Portfolio) models.Portfolio {
	holdings := make([]models.Holding, len(p.Holdings))
	copy(holdings, p.Holdings)
	for i, h := range holdings {
		if len(h.Tags) > 0 {
			tags := make([]string, len(h.Tags))
			copy(tags, h.Tags)
			holdings[i].Tags = tags
		}
	}
	p.Holdings = holdings
	return p
}
