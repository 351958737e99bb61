package i18n

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Catalog holds the translated message strings for every supported locale,
// keyed by dotted path ("contact.title"). Lookups never panic: a missing key
// falls back to the default locale, then to the key itself.
type Catalog struct {
	messages map[string]map[string]string
}

// LoadCatalog reads <locale>.yaml for each supported locale from dir.
// Every supported locale must have a file; nested YAML maps are flattened
// into dotted keys.
func LoadCatalog(dir string) (*Catalog, error) {
	c := &Catalog{messages: make(map[string]map[string]string, len(Supported))}

	for _, locale := range Supported {
		path := filepath.Join(dir, locale+".yaml")
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", locale, err)
		}

		var tree map[string]interface{}
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", locale, err)
		}

		flat := make(map[string]string)
		flatten("", tree, flat)
		c.messages[locale] = flat
	}

	return c, nil
}

func flatten(prefix string, tree map[string]interface{}, out map[string]string) {
	for key, value := range tree {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]interface{}:
			flatten(full, v, out)
		case string:
			out[full] = v
		default:
			out[full] = fmt.Sprintf("%v", v)
		}
	}
}

// Lookup returns the message for key in locale, falling back to the default
// locale and finally to the key itself.
func (c *Catalog) Lookup(locale, key string) string {
	if msgs, ok := c.messages[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if locale != Default {
		if msg, ok := c.messages[Default][key]; ok {
			return msg
		}
	}
	return key
}
