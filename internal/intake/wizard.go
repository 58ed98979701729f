// Package intake implements the multi-step customer intake workflow:
// step sequencing, two-tier validation, and service payload handling.
package intake

import (
	"github.com/radwerk/intake-api/internal/domain"
)

// Fixed steps before the per-service detail steps: contact data and
// service selection.
const baseSteps = 2

// TotalSteps computes the step count for a service selection. Each selected
// service contributes exactly one detail step.
func TotalSteps(selected []domain.ServiceType) int {
	return baseSteps + len(selected)
}

// ServiceForStep maps a step index onto the service whose detail step it is.
// Step baseSteps+1 maps to the first selected service in canonical order
// [rims, tires-purchase, tire-service], and so on. Returns false when the
// step is not a service step for this selection.
func ServiceForStep(selected []domain.ServiceType, step int) (domain.ServiceType, bool) {
	if step <= baseSteps {
		return "", false
	}
	ordered := orderedSelection(selected)
	idx := step - baseSteps - 1
	if idx < 0 || idx >= len(ordered) {
		return "", false
	}
	return ordered[idx], true
}

// ServiceSteps returns the selected services in the order their detail
// steps appear.
func ServiceSteps(selected []domain.ServiceType) []domain.ServiceType {
	return orderedSelection(selected)
}

func orderedSelection(selected []domain.ServiceType) []domain.ServiceType {
	chosen := make(map[domain.ServiceType]bool, len(selected))
	for _, s := range selected {
		chosen[s] = true
	}
	ordered := make([]domain.ServiceType, 0, len(chosen))
	for _, s := range domain.CanonicalServiceOrder {
		if chosen[s] {
			ordered = append(ordered, s)
		}
	}
	return ordered
}

// Wizard tracks the current position in the intake form. The step sequence
// is recomputed from the selection on every access, so a selection change
// after later steps were visited clamps the position instead of pointing
// past the end.
type Wizard struct {
	Selected []domain.ServiceType
	step     int
}

// NewWizard starts a wizard at the first step.
func NewWizard(selected []domain.ServiceType) *Wizard {
	return &Wizard{Selected: selected, step: 1}
}

// Step returns the current step, clamped to [1, TotalSteps].
func (w *Wizard) Step() int {
	total := TotalSteps(w.Selected)
	if w.step > total {
		return total
	}
	if w.step < 1 {
		return 1
	}
	return w.step
}

// OnFinalStep reports whether a forward transition would submit instead
// of advancing.
func (w *Wizard) OnFinalStep() bool {
	return w.Step() >= TotalSteps(w.Selected)
}

// Next advances by one step. On the final step the position is unchanged;
// the caller triggers submission instead. Returns the new current step.
func (w *Wizard) Next() int {
	if !w.OnFinalStep() {
		w.step = w.Step() + 1
	}
	return w.Step()
}

// Back moves one step back, floored at step 1.
func (w *Wizard) Back() int {
	w.step = w.Step() - 1
	if w.step < 1 {
		w.step = 1
	}
	return w.step
}

// CurrentService returns the service whose detail step is active, if any.
func (w *Wizard) CurrentService() (domain.ServiceType, bool) {
	return ServiceForStep(w.Selected, w.Step())
}
