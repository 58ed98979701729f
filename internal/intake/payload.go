package intake

import (
	"encoding/json"
	"fmt"

	"github.com/radwerk/intake-api/internal/domain"
)

// BuildPayload serializes the detail block of one selected service into the
// JSON stored on the service order. Irrelevant conditional fields are dropped
// before serializing so the stored payload only carries what the answers
// actually imply.
func BuildPayload(kind domain.ServiceType, req *domain.IntakeRequest) (string, error) {
	var v any
	switch kind {
	case domain.ServiceTypeRims:
		if req.Rims == nil {
			return "", fmt.Errorf("missing rim details")
		}
		v = compactRims(*req.Rims)
	case domain.ServiceTypeTiresPurchase:
		if req.TiresPurchase == nil {
			return "", fmt.Errorf("missing tire purchase details")
		}
		v = compactTiresPurchase(*req.TiresPurchase)
	case domain.ServiceTypeTireService:
		if req.TireService == nil {
			return "", fmt.Errorf("missing tire service details")
		}
		v = *req.TireService
	default:
		return "", fmt.Errorf("unknown service type: %s", kind)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to serialize %s payload: %w", kind, err)
	}
	return string(data), nil
}

func compactRims(d domain.RimDetails) domain.RimDetails {
	if d.HasBent != "ja" {
		d.DamagedCount = ""
	}
	switch domain.RimFinish(d.Finish) {
	case domain.RimFinishCombination:
		d.Color = ""
	case domain.RimFinishPolished:
		d.Color = ""
		d.Combination = ""
	default:
		d.Combination = ""
	}
	if domain.RimSticker(d.Sticker) != domain.RimStickerColored {
		d.StickerColor = ""
	}
	return d
}

func compactTiresPurchase(d domain.TiresPurchaseDetails) domain.TiresPurchaseDetails {
	if domain.BrandPreference(d.BrandPreference) != domain.BrandPreferenceTargeted {
		d.TargetBrand = ""
	}
	return d
}

// ParseRimPayload decodes a stored rim payload.
func ParseRimPayload(data string) (*domain.RimDetails, error) {
	var d domain.RimDetails
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, fmt.Errorf("failed to parse rim payload: %w", err)
	}
	return &d, nil
}

// ParseTiresPurchasePayload decodes a stored tire purchase payload.
func ParseTiresPurchasePayload(data string) (*domain.TiresPurchaseDetails, error) {
	var d domain.TiresPurchaseDetails
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, fmt.Errorf("failed to parse tire purchase payload: %w", err)
	}
	return &d, nil
}

// ParseTireServicePayload decodes a stored tire service payload.
func ParseTireServicePayload(data string) (*domain.TireServiceDetails, error) {
	var d domain.TireServiceDetails
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, fmt.Errorf("failed to parse tire service payload: %w", err)
	}
	return &d, nil
}
