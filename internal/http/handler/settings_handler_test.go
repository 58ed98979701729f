package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radwerk/intake-api/internal/repository"
	"github.com/radwerk/intake-api/internal/settings"
	"github.com/radwerk/intake-api/internal/testutil"
)

func newSettingsHandler(t *testing.T) (*SettingsHandler, *settings.Store) {
	t.Helper()

	db := testutil.NewTestDB(t)
	store := settings.NewStore(repository.NewSettingsRepository(db), zap.NewNop())
	require.NoError(t, store.Init(context.Background()))
	return NewSettingsHandler(store, zap.NewNop()), store
}

func TestSettingsHandler_Update(t *testing.T) {
	h, store := newSettingsHandler(t)

	body := `{"intake.enabled": "false", "banner.text": "Betriebsferien bis 7.1."}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v2/settings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "false", got[settings.KeyIntakeEnabled])
	assert.Equal(t, "Betriebsferien bis 7.1.", got[settings.KeyBannerText])
	assert.False(t, store.GetBoolDefault(settings.KeyIntakeEnabled, true))
}

func TestSettingsHandler_Update_UnknownKeyRejectedAtomically(t *testing.T) {
	h, store := newSettingsHandler(t)

	body := `{"intake.enabled": "false", "theme.color": "blau"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v2/settings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// The known key in the same request was not applied either.
	assert.True(t, store.GetBoolDefault(settings.KeyIntakeEnabled, true))
}

func TestSettingsHandler_Get(t *testing.T) {
	h, store := newSettingsHandler(t)
	require.NoError(t, store.Set(context.Background(), settings.KeyPublicUploads, "true"))

	req := httptest.NewRequest(http.MethodGet, "/api/v2/settings", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "true", got[settings.KeyPublicUploads])
}
