package notify

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. English translations are identical to the keys.
const (
	keyEmptyURL         = "Please enter a product link."
	keyApplicationError = "Error: %s"
	keyTransportError   = "An error occurred during the analysis. Please check the logs."
)

// ErrUnsupportedLanguage is returned when a language has no catalog entry.
var ErrUnsupportedLanguage = errors.New("unsupported language: use en or tr")

// supported lists the catalog languages; the first entry is the fallback.
var supported = []language.Tag{language.English, language.Turkish}

var matcher = language.NewMatcher(supported)

func init() {
	translations := map[language.Tag]map[string]string{
		language.English: {
			keyEmptyURL:         keyEmptyURL,
			keyApplicationError: keyApplicationError,
			keyTransportError:   keyTransportError,
		},
		language.Turkish: {
			keyEmptyURL:         "Lütfen bir ürün linki girin.",
			keyApplicationError: "Hata: %s",
			keyTransportError:   "Analiz sırasında bir hata oluştu. Lütfen konsolu kontrol edin.",
		},
	}

	for tag, entries := range translations {
		for key, msg := range entries {
			if err := message.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("notify: failed to register %q for %s: %v", key, tag, err))
			}
		}
	}
}

// ParseLanguage resolves a BCP 47 tag such as "tr", "tr-TR" or "en-US"
// to a supported catalog language.
func ParseLanguage(s string) (language.Tag, error) {
	if s == "" {
		return language.English, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %w", ErrUnsupportedLanguage, err)
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Und, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, s)
	}
	return supported[index], nil
}

// Messages renders notification text in one language.
type Messages struct {
	tag     language.Tag
	printer *message.Printer
}

// NewMessages returns a Messages for tag. Unsupported tags fall back to English.
func NewMessages(tag language.Tag) Messages {
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		index = 0
	}
	resolved := supported[index]
	return Messages{tag: resolved, printer: message.NewPrinter(resolved)}
}

// Language returns the resolved catalog language.
func (m Messages) Language() language.Tag {
	return m.tag
}

// EmptyURL is the prompt shown when the URL input is blank.
func (m Messages) EmptyURL() string {
	return m.p().Sprintf(keyEmptyURL)
}

// ApplicationError formats the endpoint's error message.
func (m Messages) ApplicationError(msg string) string {
	return m.p().Sprintf(keyApplicationError, msg)
}

// TransportError is the generic notice for network and decoding failures.
func (m Messages) TransportError() string {
	return m.p().Sprintf(keyTransportError)
}

// p returns the printer, defaulting to English for a zero Messages.
func (m Messages) p() *message.Printer {
	if m.printer == nil {
		return message.NewPrinter(language.English)
	}
	return m.printer
}
