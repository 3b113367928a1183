package service

import (
	"strconv"
	"strings"

	"github.com/storefront-dev/storefront-platform/internal/config"
	"github.com/storefront-dev/storefront-platform/internal/models"
)

// CurrencyService resolves currency codes to Currency value objects. The
// resolved value is passed down explicitly; nothing below this point reads
// a "selected currency" from anywhere ambient.
type CurrencyService struct {
	currencies map[string]models.Currency
	fallback   models.Currency
}

func NewCurrencyService(cfg *config.CurrencyConfig) *CurrencyService {

	currencies := make(map[string]models.Currency)

	for _, entry := range cfg.Supported {

		// "CODE:SYMBOL:MINOR_UNITS"
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) != 3 {
			continue
		}

		minorUnits, err := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 32)
		if err != nil {
			continue
		}

		code := strings.ToUpper(strings.TrimSpace(parts[0]))
		currencies[code] = models.Currency{Code: code, Symbol: parts[1], MinorUnits: int32(minorUnits)}
	}

	fallback, ok := currencies[strings.ToUpper(cfg.Default)]
	if !ok {
		fallback = models.Currency{Code: "USD", Symbol: "$", MinorUnits: 2}
		currencies[fallback.Code] = fallback
	}

	return &CurrencyService{currencies: currencies, fallback: fallback}
}

// Resolve maps a request-supplied code to a supported currency. Unknown or
// empty codes fall back to the default; last selected wins, nothing sticks.
func (s *CurrencyService) Resolve(code string) models.Currency {

	if currency, ok := s.currencies[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return currency
	}

	return s.fallback
}

func (s *CurrencyService) Supported() []models.Currency {

	supported := make([]models.Currency, 0, len(s.currencies))

	for _, currency := range s.currencies {
		supported = append(supported, currency)
	}

	return supported
}
