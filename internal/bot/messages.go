package bot

import (
	"fmt"

	"bibliobot/internal/catalog"
)

const (
	msgLibraryEmpty     = "De bibliotheek is leeg."
	msgNoResults        = "Geen boeken gevonden met de opgegeven criteria."
	msgSearchHeader     = "Hier zijn de gevonden boeken:"
	msgNoCriteria       = "Je moet minimaal één parameter invullen om te zoeken."
	msgInvalidLoan      = "Een boek dat beschikbaar is kan niet uitgeleend zijn aan iemand."
	msgMissingLoanee    = "Vul het veld >uitgeleend_aan< in met de naam van de persoon waar je het boek aan hebt geleend."
	msgTooManyCovers    = "Je kunt maximaal twee omslagafbeeldingen opgeven."
	msgTooManyCategory  = "Je kunt maximaal twee categorieën opgeven."
	msgFetchFailed      = "Kan data niet ophalen uit de database."
	msgSearchFailed     = "Er is een fout opgetreden bij het zoeken naar boeken."
	msgAddFailed        = "Kan boek niet toevoegen aan de database."
	msgUpdateFailed     = "Er is een fout opgetreden bij het bijwerken van de status van het boek."
	msgUnexpectedFailed = "Er is een onverwachte fout opgetreden bij het verwerken van het commando."
)

func msgAdded(title string) string {
	return fmt.Sprintf("'%s' is succesvol toegevoegd aan de bibliotheek!", title)
}

func msgDuplicate(title string) string {
	return fmt.Sprintf("'%s' bestaat al in de bibliotheek!", title)
}

func msgOwnerRejected(owner string) string {
	return fmt.Sprintf("Eigenaar '%s' kan niet worden toegevoegd.", owner)
}

func msgInvalidStatus(status string) string {
	return fmt.Sprintf("Ongeldige status: '%s'. Status moet '%s' of '%s' zijn.", status, catalog.StatusAvailable, catalog.StatusLoaned)
}

func msgNotFound(title string) string {
	return fmt.Sprintf("Boek '%s' is niet gevonden in de bibliotheek.", title)
}

func msgMissingField(option string) string {
	return fmt.Sprintf("Vul het veld >%s< in.", option)
}

func msgInvalidCategory(category string) string {
	return fmt.Sprintf("Onbekende categorie: '%s'.", category)
}

func msgStatusUpdated(b *catalog.Book) string {
	msg := fmt.Sprintf("De status van '%s' is succesvol bijgewerkt naar '%s'", b.Title, b.Status)
	if b.Status == catalog.StatusLoaned {
		msg += fmt.Sprintf(" (uitgeleend aan %s)", b.LoanedTo)
	}
	return msg + "."
}
