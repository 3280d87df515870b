package render

// Help is the static command reference.
func Help() Embed {
	return Embed{
		Title:       "Beschikbare Commando's",
		Description: "Hier is een lijst van alle beschikbare commando's in de bot, met uitleg over wat ze doen:",
		Color:       ColorDefault,
		Fields: []Field{
			{Name: "/add-book", Value: "Voeg een nieuw boek toe aan de verbondsbibliotheek. Je kunt details zoals de titel, auteur, status en eigenaar invullen."},
			{Name: "/list-catalog", Value: "Toon een lijst van alle boeken in de verbondsbibliotheek. Geef optioneel een categorie, taal of auteur mee."},
			{Name: "/search-book", Value: "Zoek een boek op basis van verschillende filters zoals titel, auteur, status en meer."},
			{Name: "/update-status", Value: "Werk de status van een boek bij. Je kunt het boek als \"Beschikbaar\" of \"Uitgeleend\" markeren."},
			{Name: "/help", Value: "Toon deze lijst met beschikbare commando's."},
		},
		Footer: "Gebruik /help om deze lijst opnieuw te bekijken.",
	}
}
