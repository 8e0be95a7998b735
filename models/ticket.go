package models

// Ticket is a support request
type Ticket struct {
	ID               int64         `json:"id"`
	Numero           string        `json:"numero"`
	Oggetto          string        `json:"oggetto"`
	Descrizione      *string       `json:"descrizione,omitempty"`
	Cliente          *ClienteRef   `json:"cliente,omitempty"`
	Priorita         *PrioritaRef  `json:"priorita,omitempty"`
	Stato            *StatoRef     `json:"stato,omitempty"`
	Canale           *CanaleRef    `json:"canale,omitempty"`
	TecnicoAssegnato *TecnicoRef   `json:"tecnico_assegnato,omitempty"`
	Categoria        *CategoriaRef `json:"categoria,omitempty"`
	CreatedAt        string        `json:"created_at"`
	UpdatedAt        *string       `json:"updated_at,omitempty"`
	DataChiusura     *string       `json:"data_chiusura,omitempty"`
	TipoChiusura     *string       `json:"tipo_chiusura,omitempty"`
	NoteChiusura     *string       `json:"note_chiusura,omitempty"`
}

// PrioritaRef is the priority embedded in a ticket
type PrioritaRef struct {
	ID          int64  `json:"id"`
	Descrizione string `json:"descrizione"`
	Codice      string `json:"codice"`
	Livello     int    `json:"livello"`
}

// StatoRef is the state embedded in a ticket
type StatoRef struct {
	ID          int64  `json:"id"`
	Descrizione string `json:"descrizione"`
	Codice      string `json:"codice"`
}

// CanaleRef is the intake channel embedded in a ticket
type CanaleRef struct {
	ID     int64  `json:"id"`
	Nome   string `json:"nome"`
	Codice string `json:"codice"`
}

// CategoriaRef is the category embedded in a ticket
type CategoriaRef struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

// StatoCodice returns the state code or "" when the ticket carries no state
func (t *Ticket) StatoCodice() string {
	if t.Stato == nil {
		return ""
	}
	return t.Stato.Codice
}

// PrioritaCodice returns the priority code or ""
func (t *Ticket) PrioritaCodice() string {
	if t.Priorita == nil {
		return ""
	}
	return t.Priorita.Codice
}

// ClienteID returns the id of the linked client, 0 when missing
func (t *Ticket) ClienteID() int64 {
	if t.Cliente == nil {
		return 0
	}
	return t.Cliente.ID
}

// TicketListResponse is GET /tickets
type TicketListResponse struct {
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
	Tickets []Ticket `json:"tickets"`
}

// TicketCreate is the body of POST /tickets
type TicketCreate struct {
	Oggetto          string  `json:"oggetto" validate:"required"`
	Descrizione      *string `json:"descrizione,omitempty"`
	ClienteID        int64   `json:"cliente_id" validate:"required"`
	PrioritaID       *int64  `json:"priorita_id,omitempty" validate:"required,gt=0"`
	CanaleID         *int64  `json:"canale_id,omitempty" validate:"required,gt=0"`
	CategoriaID      *int64  `json:"categoria_id,omitempty"`
	RichiedenteNome  *string `json:"richiedente_nome,omitempty"`
	RichiedenteEmail *string `json:"richiedente_email,omitempty"`
	RichiedenteTel   *string `json:"richiedente_telefono,omitempty"`
	ReferenteID      *int64  `json:"referente_id,omitempty"`
	ReferenteNome    *string `json:"referente_nome,omitempty"`
	ContrattoID      *int64  `json:"contratto_id,omitempty"`
}

// TicketUpdate is the body of PATCH /tickets/{id}
type TicketUpdate struct {
	Oggetto            *string         `json:"oggetto,omitempty"`
	Descrizione        *string         `json:"descrizione,omitempty"`
	PrioritaID         *int64          `json:"priorita_id,omitempty"`
	CategoriaID        *int64          `json:"categoria_id,omitempty"`
	StatoID            *int64          `json:"stato_id,omitempty"`
	TecnicoAssegnatoID Nullable[int64] `json:"tecnico_assegnato_id,omitzero"`
}

// Ticket close outcomes
const (
	ChiusuraRisolto        = "RISOLTO"
	ChiusuraNonRisolvibile = "NON_RISOLVIBILE"
	ChiusuraDuplicato      = "DUPLICATO"
	ChiusuraNonPertinente  = "NON_PERTINENTE"
	ChiusuraAnnullato      = "ANNULLATO"
)

// TicketAssign is the body of POST /tickets/{id}/assign
type TicketAssign struct {
	TecnicoID int64 `json:"tecnico_id" validate:"required"`
}

// TicketClose is the body of POST /tickets/{id}/close
type TicketClose struct {
	TipoChiusura string  `json:"tipo_chiusura" validate:"required,oneof=RISOLTO NON_RISOLVIBILE DUPLICATO NON_PERTINENTE ANNULLATO"`
	NoteChiusura *string `json:"note_chiusura,omitempty"`
}

// TicketNote is the body of POST /tickets/{id}/notes
type TicketNote struct {
	Nota string `json:"nota" validate:"required"`
}

// TicketMessage is the body of POST /tickets/{id}/messages
type TicketMessage struct {
	Messaggio string `json:"messaggio" validate:"required"`
}

// CreateInterventionResult is returned by POST /tickets/{id}/create-intervention
type CreateInterventionResult struct {
	InterventoID int64  `json:"intervento_id"`
	TicketID     int64  `json:"ticket_id"`
	Message      string `json:"message"`
}

// ScheduleInterventionResult is returned by POST /tickets/{id}/schedule-intervention
type ScheduleInterventionResult struct {
	RichiestaID int64  `json:"richiesta_id"`
	TicketID    int64  `json:"ticket_id"`
	Message     string `json:"message"`
}

// Ticket states that exclude a ticket from new interventions
const (
	TicketStatoChiuso    = "CHIUSO"
	TicketStatoAnnullato = "ANNULLATO"
)

// IsOpen reports whether the ticket can still receive interventions
func (t *Ticket) IsOpen() bool {
	code := t.StatoCodice()
	return code != TicketStatoChiuso && code != TicketStatoAnnullato
}
