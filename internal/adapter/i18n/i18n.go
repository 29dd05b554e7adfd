package i18n

import (
	"fmt"
	"log/slog"

	"github.com/The-Gleb/advertisement_form/internal/domain/service"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var _ service.TranslatorProvider = new(translations)

var messages = map[language.Tag]map[string]string{
	language.English: {
		service.MsgAdvertisementCreated: "Advertisement created successfully",
		service.MsgAdvertisementUpdated: "Advertisement updated successfully",
		service.MsgCreateError:          "An error occurred while creating the advertisement",
		service.MsgEndDateBeforeStart:   "End date cannot be before the start date",
		service.MsgMissingIdentity:      "The advertisement to update has no id",
	},
	language.French: {
		service.MsgAdvertisementCreated: "Publicité créée avec succès",
		service.MsgAdvertisementUpdated: "Publicité mise à jour avec succès",
		service.MsgCreateError:          "Une erreur est survenue lors de la création de la publicité",
		service.MsgEndDateBeforeStart:   "La date de fin ne peut pas précéder la date de début",
		service.MsgMissingIdentity:      "La publicité à modifier n'a pas d'identifiant",
	},
	language.Spanish: {
		service.MsgAdvertisementCreated: "Anuncio creado con éxito",
		service.MsgAdvertisementUpdated: "Anuncio actualizado con éxito",
		service.MsgCreateError:          "Se produjo un error al crear el anuncio",
		service.MsgEndDateBeforeStart:   "La fecha de finalización no puede ser anterior a la fecha de inicio",
		service.MsgMissingIdentity:      "El anuncio a actualizar no tiene identificador",
	},
}

type translations struct {
	catalog  *catalog.Builder
	matcher  language.Matcher
	tags     []language.Tag
	fallback language.Tag
}

// NewTranslations builds the message catalog. fallback is used when
// Accept-Language names nothing supported.
func NewTranslations(fallback string) (*translations, error) {
	fallbackTag, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("invalid fallback language %q: %w", fallback, err)
	}

	// the first tag is what the matcher falls back to
	tags := []language.Tag{language.English, language.French, language.Spanish}
	_, index, _ := language.NewMatcher(tags).Match(fallbackTag)
	tags[0], tags[index] = tags[index], tags[0]

	b := catalog.NewBuilder(catalog.Fallback(tags[0]))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("failed to set message %s for %s: %w", key, tag, err)
			}
		}
	}

	return &translations{
		catalog:  b,
		matcher:  language.NewMatcher(tags),
		tags:     tags,
		fallback: tags[0],
	}, nil
}

// Translator picks the best supported language for an Accept-Language value.
func (t *translations) Translator(acceptLanguage string) service.Translator {
	tag := t.fallback
	if acceptLanguage != "" {
		desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err != nil {
			slog.Debug("invalid Accept-Language", "value", acceptLanguage, "error", err)
		} else if len(desired) > 0 {
			_, index, _ := t.matcher.Match(desired...)
			tag = t.tags[index]
		}
	}

	return &translator{
		printer: message.NewPrinter(tag, message.Catalog(t.catalog)),
	}
}

type translator struct {
	printer *message.Printer
}

func (t *translator) Translate(key string) string {
	return t.printer.Sprintf(key)
}
