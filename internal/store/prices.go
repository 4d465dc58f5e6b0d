package store

import (
	"sync"

	"github.com/xplaincrypto/risk-engine/pkg/models"
	"github.com/xplaincrypto/risk-engine/pkg/utils/errors"
	"github.com/xplaincrypto/risk-engine/pkg/utils/logger"
)

// PriceStore holds materialized per-symbol price histories. Filling it is a
// collaborator's job (a sync process or the API); the engine only reads.
type PriceStore struct {
	data map[string]models.PriceData
	mu   sync.RWMutex
	log  *logger.Logger
}

// NewPriceStore creates an empty price store.
func NewPriceStore() *PriceStore {
	return &PriceStore{
		data: make(map[string]models.PriceData),
		log:  logger.GetLogger("store.prices"),
	}
}

// Set replaces the price history for a symbol. Points must already be in
// chronological order; records with non-positive prices are allowed in and
// filtered by the series adapter.
func (s *PriceStore) Set(symbol string, data models.PriceData) error {
	if symbol == "" {
		return errors.InvalidInput("symbol cannot be empty")
	}

	points := make([]models.PricePoint, len(data.Prices))
	copy(points, data.Prices)
	data.Prices = points

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[symbol] = data
	s.log.Debugf("stored %d price points for %s", len(points), symbol)
	return nil
}

// Get returns the price history for one symbol.
func (s *PriceStore) Get(symbol string) (models.PriceData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.data[symbol]
	if !exists {
		return models.PriceData{}, errors.NotFound("no price data for symbol: " + symbol)
	}
	return copyData(data), nil
}

// ForSymbols returns price data for the requested symbols. Unknown symbols
// are simply absent from the result; the engine treats them as insufficient
// data rather than failing the whole assessment.
func (s *PriceStore) ForSymbols(symbols []string) map[string]models.PriceData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]models.PriceData, len(symbols))
	for _, symbol := range symbols {
		if data, exists := s.data[symbol]; exists {
			out[symbol] = copyData(data)
		}
	}
	return out
}

func copyData(data models.PriceData) models.PriceData {
	points := make([]models.PricePoint, len(data.Prices))
	copy(points, data.Prices)
	data.Prices = points
	return data
}
