package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/akpradhn/nitiArthik/internal/models"
)

// rulesFile is the on-disk shape of a keyword override file:
//
//	columns:
//	  debit: ["debit", "withdrawal", "paid out"]
//	  balance: ["balance", "running total"]
type rulesFile struct {
	Columns map[string][]string `yaml:"columns"`
}

// LoadRules reads a keyword override file and merges it over the default
// rule table. Roles named in the file replace their default keyword list;
// roles absent from the file keep the defaults, so rule ordering and
// precedence are unchanged.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyword rules: %w", err)
	}

	var rf rulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing keyword rules %s: %w", path, err)
	}

	rules := DefaultRules()
	known := make(map[models.Role]bool, len(rules))
	for _, r := range rules {
		known[r.Role] = true
	}

	for name, keywords := range rf.Columns {
		role := models.Role(name)
		if !known[role] {
			return nil, fmt.Errorf("keyword rules %s: unknown column role %q", path, name)
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("keyword rules %s: empty keyword list for %q", path, name)
		}
		for i := range rules {
			if rules[i].Role == role {
				rules[i].Keywords = keywords
			}
		}
	}

	return rules, nil
}
