package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/radwerk/intake-api/internal/domain"
)

func validContact() domain.ContactData {
	return domain.ContactData{
		FirstName:   "Max",
		LastName:    "Mustermann",
		Street:      "Hauptstraße",
		HouseNumber: "12a",
		ZipCode:     "44135",
		City:        "Dortmund",
		Email:       "max@example.com",
		Phone:       "+49 231 123456",
	}
}

func fields(errs []domain.FieldError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}

func TestValidateContact(t *testing.T) {
	t.Run("valid contact passes", func(t *testing.T) {
		c := validContact()
		assert.Empty(t, ValidateContact(&c))
	})

	t.Run("missing fields are all reported", func(t *testing.T) {
		c := domain.ContactData{}
		errs := ValidateContact(&c)
		assert.Len(t, errs, 8)
	})

	tests := []struct {
		name      string
		mutate    func(*domain.ContactData)
		wantField string
	}{
		{"email without tld", func(c *domain.ContactData) { c.Email = "max@example" }, "contact.email"},
		{"email without at", func(c *domain.ContactData) { c.Email = "max.example.com" }, "contact.email"},
		{"zip too short", func(c *domain.ContactData) { c.ZipCode = "123" }, "contact.zipCode"},
		{"zip with letters", func(c *domain.ContactData) { c.ZipCode = "44x35" }, "contact.zipCode"},
		{"phone with letters", func(c *domain.ContactData) { c.Phone = "call me" }, "contact.phone"},
		{"whitespace-only name", func(c *domain.ContactData) { c.FirstName = "   " }, "contact.firstName"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validContact()
			tt.mutate(&c)
			errs := ValidateContact(&c)
			assert.Contains(t, fields(errs), tt.wantField)
		})
	}

	t.Run("phone formats accepted", func(t *testing.T) {
		for _, phone := range []string{"+49 231 123456", "0231/123456", "(0231) 12 34 56", "0231-123456"} {
			c := validContact()
			c.Phone = phone
			assert.Empty(t, ValidateContact(&c), phone)
		}
	})
}

func TestValidateSelection(t *testing.T) {
	assert.NotEmpty(t, ValidateSelection(nil))
	assert.NotEmpty(t, ValidateSelection([]domain.ServiceType{"detailing"}))
	assert.NotEmpty(t, ValidateSelection([]domain.ServiceType{domain.ServiceTypeRims, domain.ServiceTypeRims}))
	assert.Empty(t, ValidateSelection([]domain.ServiceType{domain.ServiceTypeRims, domain.ServiceTypeTireService}))
}

func validRims() *domain.RimDetails {
	return &domain.RimDetails{
		Count:   "4",
		HasBent: "nein",
		Finish:  string(domain.RimFinishGloss),
		Color:   "anthrazit",
		Sticker: string(domain.RimStickerNone),
	}
}

func TestValidateRims(t *testing.T) {
	t.Run("valid details pass", func(t *testing.T) {
		assert.Empty(t, ValidateRims(validRims()))
	})

	t.Run("nil details rejected", func(t *testing.T) {
		assert.NotEmpty(t, ValidateRims(nil))
	})

	t.Run("damagedCount required only with hasBent ja", func(t *testing.T) {
		d := validRims()
		d.HasBent = "ja"
		errs := ValidateRims(d)
		assert.Contains(t, fields(errs), "rims.damagedCount")

		d.DamagedCount = "2"
		assert.Empty(t, ValidateRims(d))
	})

	t.Run("color required for plain finishes", func(t *testing.T) {
		d := validRims()
		d.Color = ""
		assert.Contains(t, fields(ValidateRims(d)), "rims.color")
	})

	t.Run("combination required for combination finish", func(t *testing.T) {
		d := validRims()
		d.Finish = string(domain.RimFinishCombination)
		d.Color = ""
		errs := ValidateRims(d)
		assert.Contains(t, fields(errs), "rims.combination")
		assert.NotContains(t, fields(errs), "rims.color")

		d.Combination = "glanz/matt schwarz"
		assert.Empty(t, ValidateRims(d))
	})

	t.Run("polished finish needs neither color nor combination", func(t *testing.T) {
		d := validRims()
		d.Finish = string(domain.RimFinishPolished)
		d.Color = ""
		assert.Empty(t, ValidateRims(d))
	})

	t.Run("stickerColor required only for colored stickers", func(t *testing.T) {
		d := validRims()
		d.Sticker = string(domain.RimStickerColored)
		assert.Contains(t, fields(ValidateRims(d)), "rims.stickerColor")

		d.StickerColor = "rot"
		assert.Empty(t, ValidateRims(d))
	})
}

func TestValidateTiresPurchase(t *testing.T) {
	valid := func() *domain.TiresPurchaseDetails {
		return &domain.TiresPurchaseDetails{
			Quantity:        "4",
			Size:            "225/45 R17",
			Usage:           string(domain.TireUsageSummer),
			BrandPreference: string(domain.BrandPreferencePremium),
		}
	}

	assert.Empty(t, ValidateTiresPurchase(valid()))
	assert.NotEmpty(t, ValidateTiresPurchase(nil))

	d := valid()
	d.BrandPreference = string(domain.BrandPreferenceTargeted)
	assert.Contains(t, fields(ValidateTiresPurchase(d)), "tiresPurchase.targetBrand")

	d.TargetBrand = "Michelin"
	assert.Empty(t, ValidateTiresPurchase(d))
}

func TestValidateTireService(t *testing.T) {
	assert.NotEmpty(t, ValidateTireService(nil))
	assert.NotEmpty(t, ValidateTireService(&domain.TireServiceDetails{}))
	assert.Empty(t, ValidateTireService(&domain.TireServiceDetails{MountService: "Umstecken inkl. Wuchten"}))
}

func TestValidatePhotos(t *testing.T) {
	photo := func(ct string, size int64) domain.PhotoMeta {
		return domain.PhotoMeta{Filename: "felge.jpg", ContentType: ct, Size: size}
	}

	t.Run("within limits passes", func(t *testing.T) {
		assert.Empty(t, ValidatePhotos([]domain.PhotoMeta{photo("image/jpeg", 1024)}))
	})

	t.Run("too many photos", func(t *testing.T) {
		photos := make([]domain.PhotoMeta, MaxPhotos+1)
		for i := range photos {
			photos[i] = photo("image/jpeg", 1024)
		}
		assert.Contains(t, fields(ValidatePhotos(photos)), "photos")
	})

	t.Run("non-image rejected", func(t *testing.T) {
		errs := ValidatePhotos([]domain.PhotoMeta{photo("application/pdf", 1024)})
		assert.Contains(t, fields(errs), "photos[0]")
	})

	t.Run("oversized rejected", func(t *testing.T) {
		errs := ValidatePhotos([]domain.PhotoMeta{photo("image/jpeg", MaxPhotoSize+1)})
		assert.Contains(t, fields(errs), "photos[0]")
	})
}

func TestValidateSubmission(t *testing.T) {
	req := &domain.IntakeRequest{
		Contact:          validContact(),
		SelectedServices: []domain.ServiceType{domain.ServiceTypeRims, domain.ServiceTypeTireService},
		Rims:             validRims(),
		TireService:      &domain.TireServiceDetails{MountService: "Montage auf Felge"},
	}
	assert.Empty(t, ValidateSubmission(req, nil))

	// Only selected services are validated.
	req.TiresPurchase = nil
	assert.Empty(t, ValidateSubmission(req, nil))

	// A selected service without its detail block fails.
	req.Rims = nil
	assert.NotEmpty(t, ValidateSubmission(req, nil))
}

func TestValidateStep(t *testing.T) {
	req := &domain.IntakeRequest{
		Contact:          validContact(),
		SelectedServices: []domain.ServiceType{domain.ServiceTypeTireService},
		TireService:      &domain.TireServiceDetails{},
	}

	assert.Empty(t, ValidateStep(req, 1))
	assert.Empty(t, ValidateStep(req, 2))
	// Step 3 is the tire service detail step for this selection.
	assert.NotEmpty(t, ValidateStep(req, 3))
	// Past the end: nothing to validate.
	assert.Empty(t, ValidateStep(req, 4))
}
