package entity

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. English text is the key itself; %[1]s is the room name,
// %[2]s the videoconference room name and %[3]s the extra message.
const (
	msgTooltipConnected         = "Disconnect %[1]s from the videoconference room %[2]s"
	msgTooltipDisconnected      = "Connect %[1]s to the videoconference room %[2]s"
	msgTooltipWaitingConnect    = "Connecting %[1]s to the videoconference room %[2]s"
	msgTooltipWaitingDisconnect = "Disconnecting %[1]s from the videoconference room %[2]s"
	msgTooltipWaitingStatus     = "Waiting for information about %[1]s"
	msgTooltipErrorConnect      = "Unable to connect\n%[3]sPlease wait a moment and refresh to try again."
	msgTooltipErrorDisconnect   = "Unable to disconnect\n%[3]sPlease wait a moment and refresh to try again."
	msgTooltipErrorStatus       = "Unable to contact the room.\n%[3]sPlease wait a moment and refresh to try again."
	msgTooltipUnsupported       = "Unsupported provider: %[3]s"

	MsgAlreadyConnectedTitle = "%[1]s already connected"
	MsgForceConnect          = "Would you like to force the room %[1]s to connect to your videoconference room (%[2]s) ?"
	MsgForceDisconnect       = "Would you like to force the room %[1]s to disconnect?"
	MsgConnectFailed         = "The room %[1]s might already be connected to another videoconference room"
	MsgDisconnectFailed      = "The room %[1]s might already be disconnected or connected to another videoconference room"
	MsgReadyToJoin           = "Ready to join the conference room?"
	MsgJoinTitle             = "Connect %[1]s"
	MsgUnknownError          = "unknown error"
)

var french = map[string]string{
	msgTooltipConnected:         "Déconnecter %[1]s de la salle de visioconférence %[2]s",
	msgTooltipDisconnected:      "Connecter %[1]s à la salle de visioconférence %[2]s",
	msgTooltipWaitingConnect:    "Connexion de %[1]s à la salle de visioconférence %[2]s",
	msgTooltipWaitingDisconnect: "Déconnexion de %[1]s de la salle de visioconférence %[2]s",
	msgTooltipWaitingStatus:     "En attente d'informations sur %[1]s",
	msgTooltipErrorConnect:      "Connexion impossible\n%[3]sVeuillez patienter un moment puis rafraîchir pour réessayer.",
	msgTooltipErrorDisconnect:   "Déconnexion impossible\n%[3]sVeuillez patienter un moment puis rafraîchir pour réessayer.",
	msgTooltipErrorStatus:       "Impossible de contacter la salle.\n%[3]sVeuillez patienter un moment puis rafraîchir pour réessayer.",
	msgTooltipUnsupported:       "Fournisseur non pris en charge : %[3]s",
	MsgAlreadyConnectedTitle:    "%[1]s est déjà connectée",
	MsgForceConnect:             "Voulez-vous forcer la connexion de la salle %[1]s à votre salle de visioconférence (%[2]s) ?",
	MsgForceDisconnect:          "Voulez-vous forcer la déconnexion de la salle %[1]s ?",
	MsgConnectFailed:            "La salle %[1]s est peut-être déjà connectée à une autre salle de visioconférence",
	MsgDisconnectFailed:         "La salle %[1]s est peut-être déjà déconnectée ou connectée à une autre salle de visioconférence",
	MsgReadyToJoin:              "Prêt à rejoindre la salle de conférence ?",
	MsgJoinTitle:                "Connecter %[1]s",
	MsgUnknownError:             "erreur inconnue",
}

var messages = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range french {
		if err := b.SetString(language.French, key, msg); err != nil {
			panic(fmt.Sprintf("invalid french message %q: %v", key, err))
		}
	}
	return b
}

type Translator struct {
	lang    language.Tag
	printer *message.Printer
}

// NewTranslator returns a translator for lang. Unknown or malformed tags
// fall back to English.
func NewTranslator(lang string) *Translator {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Translator{
		lang:    tag,
		printer: message.NewPrinter(tag, message.Catalog(messages)),
	}
}

func (t *Translator) Language() string {
	return t.lang.String()
}

// Sprintf formats the translation of key. Arguments are dropped for keys
// without verbs so they never show up as EXTRA noise.
func (t *Translator) Sprintf(key string, args ...interface{}) string {
	if !strings.Contains(key, "%") {
		return t.printer.Sprintf(key)
	}
	return t.printer.Sprintf(key, args...)
}
