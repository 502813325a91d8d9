// Package l10n serves the user-facing transport failure messages.
package l10n

import (
	"embed"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

// Message IDs in the embedded catalogs.
const (
	MsgUnauthorized = "StatusUnauthorized"
	MsgForbidden    = "StatusForbidden"
	MsgNotFound     = "StatusNotFound"
	MsgServerFault  = "StatusServerFault"
	MsgNetworkFault = "NetworkFault"
)

var fallback = map[string]string{
	MsgUnauthorized: "token invalid, please re-authenticate",
	MsgForbidden:    "access denied",
	MsgNotFound:     "request address incorrect",
	MsgServerFault:  "server fault",
	MsgNetworkFault: "network connection fault",
}

// Catalog resolves status codes to localized messages. Safe for concurrent use.
type Catalog struct {
	lang      string
	localizer *i18n.Localizer
}

// New loads the embedded catalogs and binds a localizer for lang. An empty or
// unknown language resolves to English.
func New(lang string) (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	for _, e := range entries {
		name := path.Join("locales", e.Name())
		data, err := locales.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	}

	lang = strings.TrimSpace(strings.ReplaceAll(lang, "_", "-"))
	if lang == "" {
		lang = language.English.String()
	}
	return &Catalog{
		lang:      lang,
		localizer: i18n.NewLocalizer(bundle, lang),
	}, nil
}

// Default returns a catalog serving the built-in English messages without
// loading any locale file.
func Default() *Catalog {
	return &Catalog{lang: language.English.String()}
}

// MustNew is New for the embedded catalogs, which are known to parse.
func MustNew(lang string) *Catalog {
	c, err := New(lang)
	if err != nil {
		panic(err)
	}
	return c
}

// Language returns the requested language tag.
func (c *Catalog) Language() string { return c.lang }

// StatusMessage maps an HTTP status to its message. Zero means no response
// was received.
func (c *Catalog) StatusMessage(status int) string {
	return c.message(MessageID(status))
}

// MessageID returns the catalog entry used for status.
func MessageID(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return MsgUnauthorized
	case http.StatusForbidden:
		return MsgForbidden
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusInternalServerError:
		return MsgServerFault
	default:
		return MsgNetworkFault
	}
}

func (c *Catalog) message(id string) string {
	if c == nil || c.localizer == nil {
		return fallback[id]
	}
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil || msg == "" {
		return fallback[id]
	}
	return msg
}
