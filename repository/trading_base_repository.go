package repository

import (
	"github.com/amirphl/retail-inventory/models"
	"gorm.io/gorm"
)

// TradingBaseRepositoryImpl implements TradingBaseRepository interface
type TradingBaseRepositoryImpl struct {
	*BaseRepository[models.TradingBase, models.TradingBaseFilter]
}

// NewTradingBaseRepository creates a new trading base repository
func NewTradingBaseRepository(db *gorm.DB) TradingBaseRepository {
	return &TradingBaseRepositoryImpl{
		BaseRepository: NewBaseRepository[models.TradingBase](db, applyTradingBaseFilter, "trading_base_id ASC"),
	}
}

func applyTradingBaseFilter(query *gorm.DB, filter models.TradingBaseFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("trading_base_id = ?", *filter.ID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	return query
}
