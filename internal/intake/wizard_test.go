package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/radwerk/intake-api/internal/domain"
)

func TestTotalSteps(t *testing.T) {
	tests := []struct {
		name     string
		selected []domain.ServiceType
		want     int
	}{
		{"no services", nil, 2},
		{"one service", []domain.ServiceType{domain.ServiceTypeRims}, 3},
		{"two services", []domain.ServiceType{domain.ServiceTypeRims, domain.ServiceTypeTireService}, 4},
		{"all services", []domain.ServiceType{domain.ServiceTypeRims, domain.ServiceTypeTiresPurchase, domain.ServiceTypeTireService}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalSteps(tt.selected))
		})
	}
}

func TestServiceForStep_CanonicalOrder(t *testing.T) {
	// Selection order must not matter, only the canonical order.
	selected := []domain.ServiceType{domain.ServiceTypeTireService, domain.ServiceTypeRims}

	svc, ok := ServiceForStep(selected, 3)
	assert.True(t, ok)
	assert.Equal(t, domain.ServiceTypeRims, svc)

	svc, ok = ServiceForStep(selected, 4)
	assert.True(t, ok)
	assert.Equal(t, domain.ServiceTypeTireService, svc)
}

func TestServiceForStep_NonServiceSteps(t *testing.T) {
	selected := []domain.ServiceType{domain.ServiceTypeRims}

	_, ok := ServiceForStep(selected, 1)
	assert.False(t, ok)
	_, ok = ServiceForStep(selected, 2)
	assert.False(t, ok)
	_, ok = ServiceForStep(selected, 4)
	assert.False(t, ok)
}

func TestWizard_Navigation(t *testing.T) {
	w := NewWizard([]domain.ServiceType{domain.ServiceTypeRims, domain.ServiceTypeTiresPurchase})

	assert.Equal(t, 1, w.Step())
	assert.Equal(t, 2, w.Next())
	assert.Equal(t, 3, w.Next())
	assert.Equal(t, 4, w.Next())
	assert.True(t, w.OnFinalStep())

	// Next on the final step stays put.
	assert.Equal(t, 4, w.Next())

	assert.Equal(t, 3, w.Back())
	assert.Equal(t, 2, w.Back())
	assert.Equal(t, 1, w.Back())
	// Back on the first step stays put.
	assert.Equal(t, 1, w.Back())
}

func TestWizard_SelectionShrinkClampsStep(t *testing.T) {
	w := NewWizard([]domain.ServiceType{domain.ServiceTypeRims, domain.ServiceTypeTiresPurchase, domain.ServiceTypeTireService})
	for i := 0; i < 4; i++ {
		w.Next()
	}
	assert.Equal(t, 5, w.Step())

	// Deselecting services after visiting later steps clamps the position.
	w.Selected = []domain.ServiceType{domain.ServiceTypeRims}
	assert.Equal(t, 3, w.Step())
	assert.True(t, w.OnFinalStep())

	svc, ok := w.CurrentService()
	assert.True(t, ok)
	assert.Equal(t, domain.ServiceTypeRims, svc)
}

func TestWizard_CurrentServiceOnContactStep(t *testing.T) {
	w := NewWizard([]domain.ServiceType{domain.ServiceTypeRims})
	_, ok := w.CurrentService()
	assert.False(t, ok)
}
