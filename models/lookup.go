package models

// LookupItem is the common shape of every reference list
type LookupItem struct {
	ID          int64  `json:"id"`
	Codice      string `json:"codice"`
	Descrizione string `json:"descrizione"`
	Attivo      bool   `json:"attivo"`
}

// Channel is an intake channel (email, phone, portal...)
type Channel struct {
	LookupItem
}

// Priority is a ticket priority
type Priority struct {
	LookupItem
	Livello int     `json:"livello"`
	Colore  *string `json:"colore,omitempty"`
}

// State is a ticket or intervention state
type State struct {
	LookupItem
	Colore *string `json:"colore,omitempty"`
	Finale bool    `json:"finale"`
}

// InterventionType is an intervention type
type InterventionType struct {
	LookupItem
	Colore          *string `json:"colore,omitempty"`
	RichiedeViaggio bool    `json:"richiede_viaggio"`
}

// ActivityCategory is a category of billable activity
type ActivityCategory struct {
	LookupItem
	PrezzoUnitarioDefault *float64 `json:"prezzo_unitario_default,omitempty"`
}

// InterventionOrigin tells how an intervention was originated
type InterventionOrigin struct {
	LookupItem
}

// Department is an internal department
type Department struct {
	LookupItem
	Email *string `json:"email,omitempty"`
}

// UserRole is a role of a staff member
type UserRole struct {
	LookupItem
}

// Coded is implemented by every lookup type
type Coded interface {
	GetID() int64
	GetCodice() string
}

func (l LookupItem) GetID() int64      { return l.ID }
func (l LookupItem) GetCodice() string { return l.Codice }

// PickDefault returns the id of the item with the preferred code, the first
// item when no code matches, or 0 for an empty list.
func PickDefault[T Coded](items []T, preferred string) int64 {
	if len(items) == 0 {
		return 0
	}
	if preferred != "" {
		for _, item := range items {
			if item.GetCodice() == preferred {
				return item.GetID()
			}
		}
	}
	return items[0].GetID()
}
