package models

import "math"

// Intervento is a unit of field or remote work for a client
type Intervento struct {
	ID                int64               `json:"id"`
	Numero            string              `json:"numero"`
	Cliente           *ClienteRef         `json:"cliente,omitempty"`
	Tecnico           *TecnicoRef         `json:"tecnico,omitempty"`
	TicketID          *int64              `json:"ticket_id,omitempty"`
	TipoIntervento    *TipoInterventoRef  `json:"tipo_intervento,omitempty"`
	Stato             *StatoInterventoRef `json:"stato,omitempty"`
	Origine           *CodeRef            `json:"origine,omitempty"`
	Oggetto           string              `json:"oggetto"`
	DescrizioneLavoro *string             `json:"descrizione_lavoro,omitempty"`
	NoteInterne       *string             `json:"note_interne,omitempty"`
	DataInizio        *string             `json:"data_inizio,omitempty"`
	DataFine          *string             `json:"data_fine,omitempty"`
	FirmaCliente      *string             `json:"firma_cliente,omitempty"`
	FirmaNome         *string             `json:"firma_nome,omitempty"`
	FirmaRuolo        *string             `json:"firma_ruolo,omitempty"`
	FirmaData         *string             `json:"firma_data,omitempty"`
	DurataMinuti      *int                `json:"durata_minuti,omitempty"`
	CreatedAt         string              `json:"created_at"`
	UpdatedAt         *string             `json:"updated_at,omitempty"`
}

// TipoInterventoRef is the intervention type embedded in an intervention
type TipoInterventoRef struct {
	ID              int64   `json:"id"`
	Codice          string  `json:"codice"`
	Descrizione     string  `json:"descrizione"`
	Colore          *string `json:"colore,omitempty"`
	RichiedeViaggio bool    `json:"richiede_viaggio"`
}

// StatoInterventoRef is the state embedded in an intervention
type StatoInterventoRef struct {
	ID          int64   `json:"id"`
	Codice      string  `json:"codice"`
	Descrizione string  `json:"descrizione"`
	Colore      *string `json:"colore,omitempty"`
	Finale      bool    `json:"finale"`
}

// CodeRef is a compact coded lookup reference, used for the intervention
// origin and for the type of a work session
type CodeRef struct {
	ID          int64  `json:"id"`
	Codice      string `json:"codice"`
	Descrizione string `json:"descrizione"`
}

// StatoCodice returns the state code or ""
func (i *Intervento) StatoCodice() string {
	if i.Stato == nil {
		return ""
	}
	return i.Stato.Codice
}

// ClienteID returns the id of the linked client, 0 when missing
func (i *Intervento) ClienteID() int64 {
	if i.Cliente == nil {
		return 0
	}
	return i.Cliente.ID
}

// RichiedeViaggio reports whether the intervention type involves travel
func (i *Intervento) RichiedeViaggio() bool {
	return i.TipoIntervento != nil && i.TipoIntervento.RichiedeViaggio
}

// InterventoListResponse is GET /interventions
type InterventoListResponse struct {
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	Interventi []Intervento `json:"interventi"`
}

// InterventoCreate is the body of POST /interventions
type InterventoCreate struct {
	ClienteID         int64   `json:"cliente_id" validate:"required"`
	TicketID          *int64  `json:"ticket_id,omitempty"`
	TecnicoID         int64   `json:"tecnico_id" validate:"required"`
	TipoInterventoID  int64   `json:"tipo_intervento_id" validate:"required"`
	StatoID           int64   `json:"stato_id" validate:"required"`
	OrigineID         int64   `json:"origine_id" validate:"required"`
	Oggetto           string  `json:"oggetto" validate:"required"`
	DescrizioneLavoro *string `json:"descrizione_lavoro,omitempty"`
	NoteInterne       *string `json:"note_interne,omitempty"`
}

// InterventoUpdate is the body of PATCH /interventions/{id}
type InterventoUpdate struct {
	TipoInterventoID  *int64  `json:"tipo_intervento_id,omitempty"`
	StatoID           *int64  `json:"stato_id,omitempty"`
	Oggetto           *string `json:"oggetto,omitempty"`
	DescrizioneLavoro *string `json:"descrizione_lavoro,omitempty"`
	NoteInterne       *string `json:"note_interne,omitempty"`
}

// InterventoStart is the body of POST /interventions/{id}/start
type InterventoStart struct {
	NoteAvvio *string `json:"note_avvio,omitempty"`
}

// InterventoComplete is the body of POST /interventions/{id}/complete
type InterventoComplete struct {
	DescrizioneLavoro string  `json:"descrizione_lavoro" validate:"required"`
	FirmaCliente      *string `json:"firma_cliente,omitempty"`
	FirmaNome         *string `json:"firma_nome,omitempty"`
	FirmaRuolo        *string `json:"firma_ruolo,omitempty"`
}

// AttivitaCreate is the body of POST /interventions/{id}/attivita
type AttivitaCreate struct {
	CategoriaID    int64    `json:"categoria_id" validate:"required"`
	Descrizione    string   `json:"descrizione" validate:"required"`
	Durata         int      `json:"durata" validate:"min=0"`
	PrezzoUnitario *float64 `json:"prezzo_unitario,omitempty"`
}

// Attivita is the activity created by POST /interventions/{id}/attivita
type Attivita struct {
	ID                   int64    `json:"id"`
	InterventoID         int64    `json:"intervento_id"`
	CategoriaID          int64    `json:"categoria_id"`
	CategoriaDescrizione string   `json:"categoria_descrizione"`
	Descrizione          string   `json:"descrizione"`
	Durata               int      `json:"durata"`
	PrezzoUnitario       *float64 `json:"prezzo_unitario,omitempty"`
	Totale               *float64 `json:"totale,omitempty"`
	CreatedAt            string   `json:"created_at"`
}

// SessioneLavoro is a dated work session within an intervention
type SessioneLavoro struct {
	ID                 int64       `json:"id"`
	InterventoID       int64       `json:"intervento_id"`
	Tecnico            *TecnicoRef `json:"tecnico,omitempty"`
	Data               string      `json:"data"`
	OraInizio          string      `json:"ora_inizio"`
	OraFine            *string     `json:"ora_fine,omitempty"`
	DurataMinuti       *int        `json:"durata_minuti,omitempty"`
	TipoIntervento     *CodeRef    `json:"tipo_intervento,omitempty"`
	KmPercorsi         *float64    `json:"km_percorsi,omitempty"`
	TempoViaggioMinuti *int        `json:"tempo_viaggio_minuti,omitempty"`
	Note               *string     `json:"note,omitempty"`
	CreatedAt          string      `json:"created_at"`
}

// SessioneCreate is the body of POST /interventions/{id}/sessions
type SessioneCreate struct {
	Data               string   `json:"data" validate:"required"`
	OraInizio          string   `json:"ora_inizio" validate:"required"`
	OraFine            *string  `json:"ora_fine,omitempty"`
	TipoInterventoID   int64    `json:"tipo_intervento_id" validate:"required"`
	KmPercorsi         *float64 `json:"km_percorsi,omitempty"`
	TempoViaggioMinuti *int     `json:"tempo_viaggio_minuti,omitempty"`
	Note               *string  `json:"note,omitempty"`
}

// SessioneUpdate is the body of PATCH /interventions/{id}/sessions/{sid}
type SessioneUpdate struct {
	Data               *string  `json:"data,omitempty"`
	OraInizio          *string  `json:"ora_inizio,omitempty"`
	OraFine            *string  `json:"ora_fine,omitempty"`
	TipoInterventoID   *int64   `json:"tipo_intervento_id,omitempty"`
	KmPercorsi         *float64 `json:"km_percorsi,omitempty"`
	TempoViaggioMinuti *int     `json:"tempo_viaggio_minuti,omitempty"`
	Note               *string  `json:"note,omitempty"`
}

// RigaAttivita is a billable line item of an intervention
type RigaAttivita struct {
	ID                int64   `json:"id"`
	InterventoID      int64   `json:"intervento_id"`
	NumeroRiga        int     `json:"numero_riga"`
	CategoriaID       int64   `json:"categoria_id"`
	Descrizione       string  `json:"descrizione"`
	Quantita          float64 `json:"quantita"`
	UnitaMisura       string  `json:"unita_misura"`
	PrezzoUnitario    float64 `json:"prezzo_unitario"`
	ScontoPercentuale float64 `json:"sconto_percentuale"`
	Fatturabile       bool    `json:"fatturabile"`
	InGaranzia        bool    `json:"in_garanzia"`
	InclusoContratto  bool    `json:"incluso_contratto"`
	Importo           float64 `json:"importo"`
	CreatedAt         string  `json:"created_at"`
}

// RigaAttivitaUpdate is the body of PATCH /interventions/{id}/rows/{rid}
type RigaAttivitaUpdate struct {
	CategoriaID       *int64   `json:"categoria_id,omitempty"`
	Descrizione       *string  `json:"descrizione,omitempty"`
	Quantita          *float64 `json:"quantita,omitempty"`
	UnitaMisura       *string  `json:"unita_misura,omitempty"`
	PrezzoUnitario    *float64 `json:"prezzo_unitario,omitempty"`
	ScontoPercentuale *float64 `json:"sconto_percentuale,omitempty"`
	Fatturabile       *bool    `json:"fatturabile,omitempty"`
	InGaranzia        *bool    `json:"in_garanzia,omitempty"`
	InclusoContratto  *bool    `json:"incluso_contratto,omitempty"`
}

// RowAmount computes quantity × unit price less the percentage discount,
// rounded to cents.
func RowAmount(quantita, prezzoUnitario, scontoPercentuale float64) float64 {
	return math.Round(quantita*prezzoUnitario*(1-scontoPercentuale/100)*100) / 100
}

// PreviewAmount is the amount shown while a row is being edited. Missing
// values count as zero. The backend value replaces it after save.
func (u *RigaAttivitaUpdate) PreviewAmount() float64 {
	var q, p, s float64
	if u.Quantita != nil {
		q = *u.Quantita
	}
	if u.PrezzoUnitario != nil {
		p = *u.PrezzoUnitario
	}
	if u.ScontoPercentuale != nil {
		s = *u.ScontoPercentuale
	}
	return RowAmount(q, p, s)
}

// DraftFromRow copies a row into an editable update payload
func DraftFromRow(r *RigaAttivita) RigaAttivitaUpdate {
	return RigaAttivitaUpdate{
		CategoriaID:       &r.CategoriaID,
		Descrizione:       &r.Descrizione,
		Quantita:          &r.Quantita,
		UnitaMisura:       &r.UnitaMisura,
		PrezzoUnitario:    &r.PrezzoUnitario,
		ScontoPercentuale: &r.ScontoPercentuale,
		Fatturabile:       &r.Fatturabile,
		InGaranzia:        &r.InGaranzia,
		InclusoContratto:  &r.InclusoContratto,
	}
}

// Intervention state codes used as form defaults and in calendar badges
const (
	InterventoStatoPianificato = "PIANIFICATO"
	InterventoStatoInCorso     = "IN_CORSO"
	InterventoStatoCompletato  = "COMPLETATO"
	OrigineSpontaneo           = "SPONTANEO"
)
