package services

import "daassist-web/models"

// AppName is shown in the application header
const AppName = "DAAssist"

// Navigation is the main menu, in display order
var Navigation = []models.NavItem{
	{Name: "Dashboard", Href: "/"},
	{Name: "Ticket", Href: "/tickets"},
	{Name: "Interventi", Href: "/interventions"},
	{Name: "Calendario", Href: "/calendar"},
	{Name: "Clienti", Href: "/clients"},
	{Name: "Tecnici", Href: "/technicians"},
}

// Layout builds the application shell for the page at path. The active item
// is the one whose href equals path.
func Layout(state models.SessionState, path string) models.LayoutView {
	nav := make([]models.NavItem, len(Navigation))
	for i, item := range Navigation {
		item.Active = item.Href == path
		nav[i] = item
	}

	view := models.LayoutView{AppName: AppName, Navigation: nav, User: state.User}
	if state.User != nil {
		view.UserName = state.User.FullName()
	}
	return view
}
