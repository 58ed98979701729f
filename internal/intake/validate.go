package intake

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/radwerk/intake-api/internal/domain"
)

// Upload constraints for intake photos.
const (
	MaxPhotos       = 5
	MaxPhotoSize    = 10 * 1024 * 1024
	photoMIMEPrefix = "image/"
)

var (
	// Deliberately simple local@domain.tld check; the mail provider is the
	// real authority on deliverability.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)
	// Permissive: digits, spaces, separators and a leading +.
	phonePattern = regexp.MustCompile(`^\+?[0-9 ()/.-]{5,}$`)
	zipPattern   = regexp.MustCompile(`^[0-9]{4,6}$`)
)

// ValidateContact checks the contact step. Returns an empty slice when valid.
func ValidateContact(c *domain.ContactData) []domain.FieldError {
	var errs []domain.FieldError

	errs = appendRequired(errs, "contact.firstName", c.FirstName, "Vorname ist erforderlich")
	errs = appendRequired(errs, "contact.lastName", c.LastName, "Nachname ist erforderlich")
	errs = appendRequired(errs, "contact.street", c.Street, "Straße ist erforderlich")
	errs = appendRequired(errs, "contact.houseNumber", c.HouseNumber, "Hausnummer ist erforderlich")
	errs = appendRequired(errs, "contact.city", c.City, "Ort ist erforderlich")

	switch zip := strings.TrimSpace(c.ZipCode); {
	case zip == "":
		errs = append(errs, domain.FieldError{Field: "contact.zipCode", Message: "Postleitzahl ist erforderlich"})
	case !zipPattern.MatchString(zip):
		errs = append(errs, domain.FieldError{Field: "contact.zipCode", Message: "Postleitzahl muss aus 4 bis 6 Ziffern bestehen"})
	}

	switch email := strings.TrimSpace(c.Email); {
	case email == "":
		errs = append(errs, domain.FieldError{Field: "contact.email", Message: "E-Mail ist erforderlich"})
	case !emailPattern.MatchString(email):
		errs = append(errs, domain.FieldError{Field: "contact.email", Message: "E-Mail-Adresse ist ungültig"})
	}

	switch phone := strings.TrimSpace(c.Phone); {
	case phone == "":
		errs = append(errs, domain.FieldError{Field: "contact.phone", Message: "Telefonnummer ist erforderlich"})
	case !phonePattern.MatchString(phone):
		errs = append(errs, domain.FieldError{Field: "contact.phone", Message: "Telefonnummer ist ungültig"})
	}

	return errs
}

// ValidateSelection checks the service selection step: non-empty and only
// known service kinds.
func ValidateSelection(selected []domain.ServiceType) []domain.FieldError {
	var errs []domain.FieldError
	if len(selected) == 0 {
		errs = append(errs, domain.FieldError{Field: "selectedServices", Message: "Mindestens eine Leistung muss ausgewählt werden"})
		return errs
	}
	seen := make(map[domain.ServiceType]bool, len(selected))
	for _, s := range selected {
		if !s.IsValid() {
			errs = append(errs, domain.FieldError{Field: "selectedServices", Message: fmt.Sprintf("Unbekannte Leistung: %s", s)})
		}
		if seen[s] {
			errs = append(errs, domain.FieldError{Field: "selectedServices", Message: fmt.Sprintf("Leistung doppelt ausgewählt: %s", s)})
		}
		seen[s] = true
	}
	return errs
}

// ValidateRims checks the rim refurbishment detail step, including the
// conditional fields governed by hasBent, finish and sticker.
func ValidateRims(d *domain.RimDetails) []domain.FieldError {
	if d == nil {
		return []domain.FieldError{{Field: "rims", Message: "Angaben zur Felgenaufbereitung fehlen"}}
	}
	var errs []domain.FieldError

	errs = appendRequired(errs, "rims.count", d.Count, "Anzahl der Felgen ist erforderlich")
	errs = appendRequired(errs, "rims.hasBent", d.HasBent, "Angabe zu Höhenschlag ist erforderlich")
	if d.HasBent == "ja" && strings.TrimSpace(d.DamagedCount) == "" {
		errs = append(errs, domain.FieldError{Field: "rims.damagedCount", Message: "Anzahl der beschädigten Felgen ist erforderlich"})
	}

	errs = appendRequired(errs, "rims.finish", d.Finish, "Oberfläche ist erforderlich")
	switch domain.RimFinish(d.Finish) {
	case domain.RimFinishCombination:
		if strings.TrimSpace(d.Combination) == "" {
			errs = append(errs, domain.FieldError{Field: "rims.combination", Message: "Kombination ist erforderlich"})
		}
	case domain.RimFinishGloss, domain.RimFinishMatte, domain.RimFinishSatin:
		if strings.TrimSpace(d.Color) == "" {
			errs = append(errs, domain.FieldError{Field: "rims.color", Message: "Farbe ist erforderlich"})
		}
	}

	errs = appendRequired(errs, "rims.sticker", d.Sticker, "Angabe zu Stickern ist erforderlich")
	if domain.RimSticker(d.Sticker) == domain.RimStickerColored && strings.TrimSpace(d.StickerColor) == "" {
		errs = append(errs, domain.FieldError{Field: "rims.stickerColor", Message: "Stickerfarbe ist erforderlich"})
	}

	return errs
}

// ValidateTiresPurchase checks the tire purchase detail step, including the
// targetBrand conditional.
func ValidateTiresPurchase(d *domain.TiresPurchaseDetails) []domain.FieldError {
	if d == nil {
		return []domain.FieldError{{Field: "tiresPurchase", Message: "Angaben zum Reifenkauf fehlen"}}
	}
	var errs []domain.FieldError

	errs = appendRequired(errs, "tiresPurchase.quantity", d.Quantity, "Anzahl ist erforderlich")
	errs = appendRequired(errs, "tiresPurchase.size", d.Size, "Reifengröße ist erforderlich")
	errs = appendRequired(errs, "tiresPurchase.usage", d.Usage, "Einsatzbereich ist erforderlich")
	errs = appendRequired(errs, "tiresPurchase.brandPreference", d.BrandPreference, "Markenwunsch ist erforderlich")
	if domain.BrandPreference(d.BrandPreference) == domain.BrandPreferenceTargeted && strings.TrimSpace(d.TargetBrand) == "" {
		errs = append(errs, domain.FieldError{Field: "tiresPurchase.targetBrand", Message: "Wunschmarke ist erforderlich"})
	}

	return errs
}

// ValidateTireService checks the tire service detail step.
func ValidateTireService(d *domain.TireServiceDetails) []domain.FieldError {
	if d == nil {
		return []domain.FieldError{{Field: "tireService", Message: "Angaben zum Reifenservice fehlen"}}
	}
	var errs []domain.FieldError
	errs = appendRequired(errs, "tireService.mountService", d.MountService, "Beschreibung der Montage ist erforderlich")
	return errs
}

// ValidatePhotos checks the attached photo batch: at most MaxPhotos files,
// image MIME types only, each at most MaxPhotoSize bytes.
func ValidatePhotos(photos []domain.PhotoMeta) []domain.FieldError {
	var errs []domain.FieldError
	if len(photos) > MaxPhotos {
		errs = append(errs, domain.FieldError{Field: "photos", Message: fmt.Sprintf("Höchstens %d Fotos erlaubt", MaxPhotos)})
	}
	for i, p := range photos {
		field := fmt.Sprintf("photos[%d]", i)
		if !strings.HasPrefix(p.ContentType, photoMIMEPrefix) {
			errs = append(errs, domain.FieldError{Field: field, Message: "Nur Bilddateien sind erlaubt"})
		}
		if p.Size > MaxPhotoSize {
			errs = append(errs, domain.FieldError{Field: field, Message: "Datei ist größer als 10 MB"})
		}
	}
	return errs
}

// ValidateSubmission runs the whole-form validation used before any write:
// contact, selection, the detail block of every selected service, and the
// photo batch. The result is data; submission is aborted when it is non-empty.
func ValidateSubmission(req *domain.IntakeRequest, photos []domain.PhotoMeta) []domain.FieldError {
	errs := ValidateContact(&req.Contact)
	errs = append(errs, ValidateSelection(req.SelectedServices)...)

	for _, s := range req.SelectedServices {
		switch s {
		case domain.ServiceTypeRims:
			errs = append(errs, ValidateRims(req.Rims)...)
		case domain.ServiceTypeTiresPurchase:
			errs = append(errs, ValidateTiresPurchase(req.TiresPurchase)...)
		case domain.ServiceTypeTireService:
			errs = append(errs, ValidateTireService(req.TireService)...)
		}
	}

	errs = append(errs, ValidatePhotos(photos)...)
	return errs
}

// ValidateStep validates a single step's local data for live feedback while
// the form is being filled in.
func ValidateStep(req *domain.IntakeRequest, step int) []domain.FieldError {
	switch step {
	case 1:
		return ValidateContact(&req.Contact)
	case 2:
		return ValidateSelection(req.SelectedServices)
	}
	service, ok := ServiceForStep(req.SelectedServices, step)
	if !ok {
		return nil
	}
	switch service {
	case domain.ServiceTypeRims:
		return ValidateRims(req.Rims)
	case domain.ServiceTypeTiresPurchase:
		return ValidateTiresPurchase(req.TiresPurchase)
	case domain.ServiceTypeTireService:
		return ValidateTireService(req.TireService)
	}
	return nil
}

func appendRequired(errs []domain.FieldError, field, value, message string) []domain.FieldError {
	if strings.TrimSpace(value) == "" {
		errs = append(errs, domain.FieldError{Field: field, Message: message})
	}
	return errs
}
