// Package printout renders the fixed single-page order sheet handed to the
// workshop with each wheel set. The layout is deterministic: same input,
// same markup, no clock and no network access during composition.
package printout

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/radwerk/intake-api/internal/domain"
)

// MaxImages caps how many images fit on the sheet.
const MaxImages = 4

// Options selects which blocks appear on the sheet. The zero value prints
// everything except images.
type Options struct {
	HideContact     bool
	HideServices    bool
	HideDescription bool
	ShowQRCode      bool
	// ImageIDs selects which of the customer's files to print, in order.
	// Unknown ids are ignored; at most MaxImages are used.
	ImageIDs []string
}

// Input is everything the sheet is rendered from.
type Input struct {
	Customer domain.CustomerDTO
	Files    []domain.CustomerFileDTO
	Options  Options
}

type sheetData struct {
	Number       string
	Date         string
	ShowContact  bool
	FullName     string
	FullAddress  string
	Email        string
	Phone        string
	ShowServices bool
	Services     []serviceLine
	ShowNotes    bool
	Notes        string
	ShowQR       bool
	QRPayload    string
	Images       []imageRef
}

type serviceLine struct {
	Label   string
	Status  string
	Details []string
}

type imageRef struct {
	URL     string
	Caption string
}

var serviceLabels = map[domain.ServiceType]string{
	domain.ServiceTypeRims:          "Felgenaufbereitung",
	domain.ServiceTypeTiresPurchase: "Reifenkauf",
	domain.ServiceTypeTireService:   "Reifenservice",
}

var sheetTemplate = template.Must(template.New("sheet").Parse(sheetHTML))

// Compose renders the order sheet. The result is self-contained HTML sized
// for one landscape A4 page; the browser print dialog does the rest.
func Compose(in Input) (string, error) {
	c := in.Customer
	opts := in.Options

	data := sheetData{
		Number:       c.CustomerNumber,
		Date:         c.CreatedAt,
		ShowContact:  !opts.HideContact,
		FullName:     c.FullName,
		FullAddress:  c.FullAddress,
		Email:        c.Email,
		Phone:        c.Phone,
		ShowServices: !opts.HideServices,
		ShowNotes:    !opts.HideDescription && strings.TrimSpace(c.Notes) != "",
		Notes:        c.Notes,
		ShowQR:       opts.ShowQRCode,
		QRPayload:    c.CustomerNumber,
		Images:       selectImages(in.Files, opts.ImageIDs),
	}

	if data.ShowServices {
		for _, svc := range c.Services {
			data.Services = append(data.Services, serviceLine{
				Label:   labelFor(svc.ServiceType),
				Status:  string(svc.Status),
				Details: detailLines(svc),
			})
		}
	}

	var buf bytes.Buffer
	if err := sheetTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render order sheet: %w", err)
	}
	return buf.String(), nil
}

func labelFor(t domain.ServiceType) string {
	if label, ok := serviceLabels[t]; ok {
		return label
	}
	return string(t)
}

// selectImages resolves the explicit selection against the customer's
// files, keeps the requested order and caps at MaxImages. Without a
// selection the first MaxImages files in display order are used.
func selectImages(files []domain.CustomerFileDTO, ids []string) []imageRef {
	byID := make(map[string]domain.CustomerFileDTO, len(files))
	for _, f := range files {
		byID[f.ID.String()] = f
	}

	var chosen []domain.CustomerFileDTO
	if len(ids) > 0 {
		for _, id := range ids {
			if f, ok := byID[id]; ok {
				chosen = append(chosen, f)
			}
		}
	} else {
		chosen = append(chosen, files...)
		sort.SliceStable(chosen, func(i, j int) bool {
			return chosen[i].DisplayOrder < chosen[j].DisplayOrder
		})
	}

	if len(chosen) > MaxImages {
		chosen = chosen[:MaxImages]
	}

	refs := make([]imageRef, len(chosen))
	for i, f := range chosen {
		refs[i] = imageRef{URL: f.PreviewURL, Caption: f.Filename}
	}
	return refs
}

// detailLines flattens a service payload into printable key/value lines.
func detailLines(svc domain.ServiceOrderDTO) []string {
	var lines []string
	add := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			lines = append(lines, label+": "+value)
		}
	}

	switch svc.ServiceType {
	case domain.ServiceTypeRims:
		d, err := parseRim(svc.Data)
		if err != nil {
			return nil
		}
		add("Anzahl", d.Count)
		add("Höhenschlag", d.HasBent)
		add("Beschädigt", d.DamagedCount)
		add("Oberfläche", d.Finish)
		add("Farbe", d.Color)
		add("Kombination", d.Combination)
		add("Sticker", d.Sticker)
		add("Stickerfarbe", d.StickerColor)
		add("Hinweise", d.Notes)
	case domain.ServiceTypeTiresPurchase:
		d, err := parseTiresPurchase(svc.Data)
		if err != nil {
			return nil
		}
		add("Anzahl", d.Quantity)
		add("Größe", d.Size)
		add("Einsatz", d.Usage)
		add("Markenwunsch", d.BrandPreference)
		add("Wunschmarke", d.TargetBrand)
		add("Hinweise", d.Notes)
	case domain.ServiceTypeTireService:
		d, err := parseTireService(svc.Data)
		if err != nil {
			return nil
		}
		add("Montage", d.MountService)
		add("Hinweise", d.Notes)
	}
	return lines
}
