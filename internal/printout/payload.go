package printout

import (
	"encoding/json"

	"github.com/radwerk/intake-api/internal/domain"
)

func parseRim(data string) (*domain.RimDetails, error) {
	var d domain.RimDetails
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func parseTiresPurchase(data string) (*domain.TiresPurchaseDetails, error) {
	var d domain.TiresPurchaseDetails
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func parseTireService(data string) (*domain.TireServiceDetails, error) {
	var d domain.TireServiceDetails
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, err
	}
	return &d, nil
}
