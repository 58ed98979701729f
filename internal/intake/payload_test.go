package intake

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radwerk/intake-api/internal/domain"
)

func TestBuildPayload_DropsIrrelevantConditionals(t *testing.T) {
	req := &domain.IntakeRequest{
		Rims: &domain.RimDetails{
			Count:        "4",
			HasBent:      "nein",
			DamagedCount: "2",
			Finish:       string(domain.RimFinishGloss),
			Color:        "schwarz",
			Combination:  "sollte verschwinden",
			Sticker:      string(domain.RimStickerStandard),
			StickerColor: "rot",
		},
	}

	data, err := BuildPayload(domain.ServiceTypeRims, req)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(data), &m))
	assert.Equal(t, "4", m["count"])
	assert.Equal(t, "schwarz", m["color"])
	assert.NotContains(t, m, "damagedCount")
	assert.NotContains(t, m, "combination")
	assert.NotContains(t, m, "stickerColor")
}

func TestBuildPayload_CombinationFinishDropsColor(t *testing.T) {
	req := &domain.IntakeRequest{
		Rims: &domain.RimDetails{
			Count:        "4",
			HasBent:      "ja",
			DamagedCount: "1",
			Finish:       string(domain.RimFinishCombination),
			Color:        "schwarz",
			Combination:  "front poliert, bett glanz",
			Sticker:      string(domain.RimStickerNone),
		},
	}

	data, err := BuildPayload(domain.ServiceTypeRims, req)
	require.NoError(t, err)

	parsed, err := ParseRimPayload(data)
	require.NoError(t, err)
	assert.Empty(t, parsed.Color)
	assert.Equal(t, "front poliert, bett glanz", parsed.Combination)
	assert.Equal(t, "1", parsed.DamagedCount)
}

func TestBuildPayload_TiresPurchaseTargetBrand(t *testing.T) {
	req := &domain.IntakeRequest{
		TiresPurchase: &domain.TiresPurchaseDetails{
			Quantity:        "2",
			Size:            "205/55 R16",
			Usage:           string(domain.TireUsageWinter),
			BrandPreference: string(domain.BrandPreferencePremium),
			TargetBrand:     "Continental",
		},
	}

	data, err := BuildPayload(domain.ServiceTypeTiresPurchase, req)
	require.NoError(t, err)

	parsed, err := ParseTiresPurchasePayload(data)
	require.NoError(t, err)
	assert.Empty(t, parsed.TargetBrand)

	req.TiresPurchase.BrandPreference = string(domain.BrandPreferenceTargeted)
	data, err = BuildPayload(domain.ServiceTypeTiresPurchase, req)
	require.NoError(t, err)
	parsed, err = ParseTiresPurchasePayload(data)
	require.NoError(t, err)
	assert.Equal(t, "Continental", parsed.TargetBrand)
}

func TestBuildPayload_MissingDetails(t *testing.T) {
	req := &domain.IntakeRequest{}
	_, err := BuildPayload(domain.ServiceTypeRims, req)
	assert.Error(t, err)
	_, err = BuildPayload(domain.ServiceTypeTiresPurchase, req)
	assert.Error(t, err)
	_, err = BuildPayload(domain.ServiceTypeTireService, req)
	assert.Error(t, err)
	_, err = BuildPayload("detailing", req)
	assert.Error(t, err)
}

func TestBuildPayload_TireServiceRoundTrip(t *testing.T) {
	req := &domain.IntakeRequest{
		TireService: &domain.TireServiceDetails{MountService: "Räder umstecken", Notes: "bitte wuchten"},
	}
	data, err := BuildPayload(domain.ServiceTypeTireService, req)
	require.NoError(t, err)

	parsed, err := ParseTireServicePayload(data)
	require.NoError(t, err)
	assert.Equal(t, "Räder umstecken", parsed.MountService)
	assert.Equal(t, "bitte wuchten", parsed.Notes)
}
