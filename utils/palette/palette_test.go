package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassKnownCodes(t *testing.T) {
	assert.Equal(t, red, Class(TicketPriority, "CRITICA"))
	assert.Equal(t, cyan, Class(TicketState, "SCHEDULATO"))
	assert.Equal(t, orange, Class(InterventionState, "IN_CORSO"))
	assert.Equal(t, amber, Class(CalendarState, "IN_CORSO"))
	assert.Equal(t, purple, Class(InterventionType, "LABORATORIO"))
	assert.Equal(t, "text-pink-600 bg-pink-50", Class(ClientClass, "PREMIUM"))
}

func TestClassFallbacks(t *testing.T) {
	assert.Equal(t, Class(TicketPriority, "NORMALE"), Class(TicketPriority, "SCONOSCIUTA"))
	assert.Equal(t, Class(TicketState, "NUOVO"), Class(TicketState, ""))
	assert.Equal(t, gray, Class(InterventionState, "SOSPESO"))
	assert.Equal(t, gray, Class(CalendarState, "ANNULLATO"))
	assert.Equal(t, "text-gray-600 bg-gray-50", Class(ClientState, "BOH"))
	assert.Equal(t, gray, Class(Kind("unknown"), "X"))
}

func TestBadge(t *testing.T) {
	b := Badge(TicketState, "CHIUSO", "Chiuso")
	assert.Equal(t, "CHIUSO", b.Code)
	assert.Equal(t, "Chiuso", b.Label)
	assert.Equal(t, green, b.Class)

	assert.Equal(t, "ALTA", Badge(TicketPriority, "ALTA", "").Label)
}

func TestOptionalBadge(t *testing.T) {
	assert.Nil(t, OptionalBadge(ClientState, nil))
	empty := ""
	assert.Nil(t, OptionalBadge(ClientState, &empty))

	vip := "VIP"
	b := OptionalBadge(ClientClass, &vip)
	if assert.NotNil(t, b) {
		assert.Equal(t, "text-purple-600 bg-purple-50", b.Class)
	}
}

func TestTravelBadge(t *testing.T) {
	assert.Equal(t, purple, TravelBadge(true).Class)
	assert.Equal(t, blue, TravelBadge(false).Class)
	assert.NotEqual(t, TravelBadge(true).Label, TravelBadge(false).Label)
}
