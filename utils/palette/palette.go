// Package palette maps status codes to badge classes. It is the single place
// where colors are decided; screens only pick a Kind.
package palette

import "daassist-web/models"

// Kind selects the table a code is looked up in
type Kind string

const (
	TicketPriority    Kind = "ticket_priority"
	TicketState       Kind = "ticket_state"
	InterventionState Kind = "intervention_state"
	InterventionType  Kind = "intervention_type"
	Travel            Kind = "travel"
	ClientState       Kind = "client_state"
	ClientClass       Kind = "client_class"
	CalendarState     Kind = "calendar_state"
)

// Travel codes
const (
	TravelRequired = "VIAGGIO"
	TravelNone     = "SEDE"
)

const (
	blue   = "bg-blue-100 text-blue-800 border-blue-200"
	red    = "bg-red-100 text-red-800 border-red-200"
	orange = "bg-orange-100 text-orange-800 border-orange-200"
	yellow = "bg-yellow-100 text-yellow-800 border-yellow-200"
	gray   = "bg-gray-100 text-gray-800 border-gray-200"
	green  = "bg-green-100 text-green-800 border-green-200"
	purple = "bg-purple-100 text-purple-800 border-purple-200"
	cyan   = "bg-cyan-100 text-cyan-800 border-cyan-200"
	amber  = "bg-amber-100 text-amber-800 border-amber-200"
)

type table struct {
	classes  map[string]string
	fallback string
}

var tables = map[Kind]table{
	TicketPriority: {
		classes: map[string]string{
			"CRITICA": red,
			"URGENTE": orange,
			"ALTA":    yellow,
			"NORMALE": blue,
			"BASSA":   gray,
		},
		fallback: blue,
	},
	TicketState: {
		classes: map[string]string{
			"NUOVO":          blue,
			"PRESO_CARICO":   purple,
			"IN_LAVORAZIONE": orange,
			"SCHEDULATO":     cyan,
			"CHIUSO":         green,
			"ANNULLATO":      red,
		},
		fallback: blue,
	},
	InterventionState: {
		classes: map[string]string{
			"PIANIFICATO": blue,
			"IN_CORSO":    orange,
			"COMPLETATO":  green,
			"ANNULLATO":   red,
		},
		fallback: gray,
	},
	InterventionType: {
		classes: map[string]string{
			"CLIENTE":     blue,
			"REMOTO":      green,
			"LABORATORIO": purple,
			"TELEFONICO":  orange,
		},
		fallback: gray,
	},
	Travel: {
		classes: map[string]string{
			TravelRequired: purple,
			TravelNone:     blue,
		},
		fallback: blue,
	},
	ClientState: {
		classes: map[string]string{
			"ATTIVO":   "text-green-600 bg-green-50",
			"SOSPESO":  "text-yellow-600 bg-yellow-50",
			"INATTIVO": "text-gray-600 bg-gray-50",
			"PROSPECT": "text-blue-600 bg-blue-50",
		},
		fallback: "text-gray-600 bg-gray-50",
	},
	ClientClass: {
		classes: map[string]string{
			"VIP":        "text-purple-600 bg-purple-50",
			"PREMIUM":    "text-pink-600 bg-pink-50",
			"ENTERPRISE": "text-emerald-600 bg-emerald-50",
			"STANDARD":   "text-blue-600 bg-blue-50",
			"BASIC":      "text-gray-600 bg-gray-50",
		},
		fallback: "text-gray-600 bg-gray-50",
	},
	CalendarState: {
		classes: map[string]string{
			"PIANIFICATO": blue,
			"IN_CORSO":    amber,
			"COMPLETATO":  purple,
			"CHIUSO":      green,
		},
		fallback: gray,
	},
}

// Class returns the badge class for code, or the fallback of kind when the
// code is unknown or empty. Unknown kinds get the neutral gray.
func Class(kind Kind, code string) string {
	t, ok := tables[kind]
	if !ok {
		return gray
	}
	if class, ok := t.classes[code]; ok {
		return class
	}
	return t.fallback
}

// Badge builds a badge for code, labelled with label or with the code itself
func Badge(kind Kind, code, label string) models.Badge {
	if label == "" {
		label = code
	}
	return models.Badge{Code: code, Label: label, Class: Class(kind, code)}
}

// OptionalBadge is Badge for optional codes: nil when code is nil
func OptionalBadge(kind Kind, code *string) *models.Badge {
	if code == nil || *code == "" {
		return nil
	}
	b := Badge(kind, *code, "")
	return &b
}

// TravelBadge labels an intervention by whether its type requires travel
func TravelBadge(requiresTravel bool) models.Badge {
	if requiresTravel {
		return Badge(Travel, TravelRequired, "Presso cliente")
	}
	return Badge(Travel, TravelNone, "In sede")
}
