package printout

// sheetHTML is the fixed landscape A4 layout. Styles are inline so the
// document prints identically without any external resources.
const sheetHTML = `<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<title>Auftrag {{.Number}}</title>
<style>
@page { size: A4 landscape; margin: 10mm; }
html, body { margin: 0; padding: 0; font-family: Arial, Helvetica, sans-serif; font-size: 11pt; color: #111; }
.sheet { width: 277mm; height: 190mm; overflow: hidden; display: flex; flex-direction: column; }
.head { display: flex; justify-content: space-between; align-items: baseline; border-bottom: 2px solid #111; padding-bottom: 4mm; }
.number { font-size: 20pt; font-weight: bold; }
.columns { display: flex; flex: 1; gap: 8mm; margin-top: 5mm; }
.col { flex: 1; min-width: 0; }
h2 { font-size: 12pt; margin: 0 0 2mm; border-bottom: 1px solid #888; }
.block { margin-bottom: 5mm; }
ul { margin: 1mm 0; padding-left: 5mm; }
.images { display: flex; gap: 4mm; margin-top: 3mm; }
.images figure { margin: 0; width: 60mm; }
.images img { width: 60mm; height: 45mm; object-fit: cover; border: 1px solid #888; }
figcaption { font-size: 8pt; color: #555; }
.qr { border: 1px dashed #888; width: 30mm; height: 30mm; display: flex; align-items: center; justify-content: center; font-size: 8pt; color: #555; text-align: center; }
</style>
</head>
<body>
<div class="sheet">
	<div class="head">
		<span class="number">{{.Number}}</span>
		<span>Eingang: {{.Date}}</span>
	</div>
	<div class="columns">
		<div class="col">
			{{if .ShowContact}}<div class="block">
				<h2>Kunde</h2>
				<p>{{.FullName}}<br>{{.FullAddress}}<br>{{.Email}}<br>{{.Phone}}</p>
			</div>{{end}}
			{{if .ShowNotes}}<div class="block">
				<h2>Anmerkungen</h2>
				<p>{{.Notes}}</p>
			</div>{{end}}
			{{if .ShowQR}}<div class="qr">{{.QRPayload}}</div>{{end}}
		</div>
		<div class="col">
			{{if .ShowServices}}<div class="block">
				<h2>Leistungen</h2>
				{{range .Services}}<div>
					<strong>{{.Label}}</strong> ({{.Status}})
					<ul>{{range .Details}}<li>{{.}}</li>{{end}}</ul>
				</div>{{end}}
			</div>{{end}}
			{{if .Images}}<div class="block">
				<h2>Bilder</h2>
				<div class="images">
					{{range .Images}}<figure><img src="{{.URL}}" alt="{{.Caption}}"><figcaption>{{.Caption}}</figcaption></figure>{{end}}
				</div>
			</div>{{end}}
		</div>
	</div>
</div>
</body>
</html>
`
