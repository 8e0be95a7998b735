package models

import "time"

// Cliente is a customer organization
type Cliente struct {
	ID               int64   `json:"id"`
	CodiceGestionale string  `json:"codice_gestionale"`
	RagioneSociale   string  `json:"ragione_sociale"`
	PartitaIVA       *string `json:"partita_iva,omitempty"`
	CodiceFiscale    *string `json:"codice_fiscale,omitempty"`
	Indirizzo        *string `json:"indirizzo,omitempty"`
	CAP              *string `json:"cap,omitempty"`
	Citta            *string `json:"citta,omitempty"`
	Provincia        *string `json:"provincia,omitempty"`
	Nazione          string  `json:"nazione"`
	Telefono         *string `json:"telefono,omitempty"`
	Email            *string `json:"email,omitempty"`
	PEC              *string `json:"pec,omitempty"`
	SitoWeb          *string `json:"sito_web,omitempty"`
	StatoCliente     *string `json:"stato_cliente,omitempty"`
	Classificazione  *string `json:"classificazione,omitempty"`
	ReferenteITID    *int64  `json:"referente_it_id,omitempty"`
	OrariServizio    *string `json:"orari_servizio,omitempty"`
	NomiAlternativi  *string `json:"nomi_alternativi,omitempty"`
	Note             *string `json:"note,omitempty"`
	UltimoSync       *string `json:"ultimo_sync,omitempty"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        *string `json:"updated_at,omitempty"`
	Attivo           bool    `json:"attivo"`
}

// ClienteDetail is GET /clients/{id}
type ClienteDetail struct {
	Cliente
	Contratti []Contratto `json:"contratti"`
	Referenti []Referente `json:"referenti"`
}

// ClienteListResponse is GET /clients
type ClienteListResponse struct {
	Total   int       `json:"total"`
	Page    int       `json:"page"`
	Limit   int       `json:"limit"`
	Clienti []Cliente `json:"clienti"`
}

// ClienteStats is GET /clients/{id}/stats
type ClienteStats struct {
	TotalTickets    int `json:"total_tickets"`
	OpenTickets     int `json:"open_tickets"`
	TotalInterventi int `json:"total_interventi"`
}

// Contratto is a service contract of a client
type Contratto struct {
	ID                   int64    `json:"id"`
	ClienteID            int64    `json:"cliente_id"`
	CodiceGestionale     string   `json:"codice_gestionale"`
	Descrizione          string   `json:"descrizione"`
	TipologiaDescrizione *string  `json:"tipologia_descrizione,omitempty"`
	DataInizio           *string  `json:"data_inizio,omitempty"`
	DataFine             *string  `json:"data_fine,omitempty"`
	OreIncluse           *float64 `json:"ore_incluse,omitempty"`
	OreUtilizzate        float64  `json:"ore_utilizzate"`
	Attivo               bool     `json:"attivo"`
	CreatedAt            string   `json:"created_at"`
}

// IsActive reports whether the contract is flagged active and its end date
// falls on or after the day of now. Contracts without an end date never count.
func (c *Contratto) IsActive(now time.Time) bool {
	if !c.Attivo || c.DataFine == nil {
		return false
	}
	end, ok := ParseTimestamp(*c.DataFine, now.Location())
	if !ok {
		return false
	}
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !endDay.Before(today)
}

// OreResidue returns the hours left on the contract, nil when unlimited
func (c *Contratto) OreResidue() *float64 {
	if c.OreIncluse == nil {
		return nil
	}
	left := *c.OreIncluse - c.OreUtilizzate
	return &left
}

// ActiveContract returns the first active contract in list order
func ActiveContract(contracts []Contratto, now time.Time) *Contratto {
	for i := range contracts {
		if contracts[i].IsActive(now) {
			return &contracts[i]
		}
	}
	return nil
}

// ActiveContracts filters contracts down to the active ones, keeping order
func ActiveContracts(contracts []Contratto, now time.Time) []Contratto {
	active := make([]Contratto, 0, len(contracts))
	for _, c := range contracts {
		if c.IsActive(now) {
			active = append(active, c)
		}
	}
	return active
}

// SedeCliente is a client site
type SedeCliente struct {
	ID            int64   `json:"id"`
	ClienteID     int64   `json:"cliente_id"`
	NomeSede      string  `json:"nome_sede"`
	CodiceSede    *string `json:"codice_sede,omitempty"`
	Indirizzo     string  `json:"indirizzo"`
	CAP           *string `json:"cap,omitempty"`
	Citta         string  `json:"citta"`
	Provincia     *string `json:"provincia,omitempty"`
	Nazione       string  `json:"nazione"`
	Telefono      *string `json:"telefono,omitempty"`
	Email         *string `json:"email,omitempty"`
	OrariServizio *string `json:"orari_servizio,omitempty"`
	Note          *string `json:"note,omitempty"`
	Attivo        bool    `json:"attivo"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     *string `json:"updated_at,omitempty"`
}

// Referente is a client contact person
type Referente struct {
	ID                 int64   `json:"id"`
	ClienteID          int64   `json:"cliente_id"`
	SedeID             *int64  `json:"sede_id,omitempty"`
	Nome               string  `json:"nome"`
	Cognome            string  `json:"cognome"`
	Ruolo              *string `json:"ruolo,omitempty"`
	Telefono           *string `json:"telefono,omitempty"`
	Cellulare          *string `json:"cellulare,omitempty"`
	InternoTelefonico  *string `json:"interno_telefonico,omitempty"`
	Email              *string `json:"email,omitempty"`
	ContattoPrincipale bool    `json:"contatto_principale"`
	RiceveNotifiche    bool    `json:"riceve_notifiche"`
	ReferenteIT        bool    `json:"referente_it"`
	Note               *string `json:"note,omitempty"`
	Attivo             bool    `json:"attivo"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          *string `json:"updated_at,omitempty"`
}

// FullName joins first and last name
func (r *Referente) FullName() string {
	return joinName(r.Nome, r.Cognome)
}
