package printout

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radwerk/intake-api/internal/domain"
)

func sampleInput() Input {
	return Input{
		Customer: domain.CustomerDTO{
			CustomerNumber: "C-2026-000007",
			FullName:       "Max Mustermann",
			FullAddress:    "Hauptstraße 1, 44135 Dortmund",
			Email:          "max@example.com",
			Phone:          "0231 123456",
			Notes:          "Abholung Freitag",
			CreatedAt:      "2026-03-01T10:00:00Z",
			Services: []domain.ServiceOrderDTO{
				{
					ServiceType: domain.ServiceTypeRims,
					Status:      domain.ServiceOrderStatusOpen,
					Data:        `{"count":"4","hasBent":"ja","damagedCount":"1","finish":"glanz","color":"anthrazit","sticker":"keine"}`,
				},
			},
		},
	}
}

func TestCompose_FullSheet(t *testing.T) {
	html, err := Compose(sampleInput())
	require.NoError(t, err)

	assert.Contains(t, html, "C-2026-000007")
	assert.Contains(t, html, "Max Mustermann")
	assert.Contains(t, html, "Felgenaufbereitung")
	assert.Contains(t, html, "Anzahl: 4")
	assert.Contains(t, html, "Farbe: anthrazit")
	assert.Contains(t, html, "Abholung Freitag")
	// Irrelevant payload fields never render.
	assert.NotContains(t, html, "Kombination")
}

func TestCompose_Deterministic(t *testing.T) {
	first, err := Compose(sampleInput())
	require.NoError(t, err)
	second, err := Compose(sampleInput())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompose_BlockToggles(t *testing.T) {
	in := sampleInput()
	in.Options = Options{HideContact: true, HideServices: true, HideDescription: true}

	html, err := Compose(in)
	require.NoError(t, err)

	assert.NotContains(t, html, "Max Mustermann")
	assert.NotContains(t, html, "Felgenaufbereitung")
	assert.NotContains(t, html, "Abholung Freitag")
	// The customer number always prints.
	assert.Contains(t, html, "C-2026-000007")
}

func TestCompose_ImageSelectionCappedAtFour(t *testing.T) {
	in := sampleInput()
	var ids []string
	for i := 0; i < 6; i++ {
		id := uuid.New()
		in.Files = append(in.Files, domain.CustomerFileDTO{
			ID:           id,
			Filename:     "felge.jpg",
			PreviewURL:   "/api/v2/files/" + id.String() + "/preview",
			DisplayOrder: i + 1,
		})
		ids = append(ids, id.String())
	}
	in.Options.ImageIDs = ids

	html, err := Compose(in)
	require.NoError(t, err)
	assert.Equal(t, MaxImages, strings.Count(html, "<img "))
}

func TestCompose_UnknownImageIDsIgnored(t *testing.T) {
	in := sampleInput()
	id := uuid.New()
	in.Files = []domain.CustomerFileDTO{{
		ID:         id,
		Filename:   "felge.jpg",
		PreviewURL: "/api/v2/files/" + id.String() + "/preview",
	}}
	in.Options.ImageIDs = []string{uuid.New().String(), id.String()}

	html, err := Compose(in)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(html, "<img "))
}

func TestCompose_EscapesUserContent(t *testing.T) {
	in := sampleInput()
	in.Customer.FullName = `<script>alert("x")</script>`

	html, err := Compose(in)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}
