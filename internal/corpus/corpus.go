// Package corpus loads the labeled fixture documents the tuning CLI
// trains and scores coefficient vectors against (spec §4.7).
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/domtree/fathom/domhtml"
)

// Case is one labeled fixture: an HTML document plus a CSS selector
// that uniquely identifies the ground-truth element a ruleset under
// test is expected to pick out.
type Case struct {
	Name             string
	Document         *domhtml.Document
	ExpectedSelector string
}

// answerFile is the YAML sidecar format: "<name>.html" is paired with
// "<name>.yaml" holding the expected answer.
type answerFile struct {
	ExpectedSelector string `yaml:"expected_selector"`
}

// Load reads every "<name>.html" + "<name>.yaml" pair under dir into a
// Case, sorted by name for reproducible iteration order.
func Load(dir string) ([]Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".html") {
			names = append(names, strings.TrimSuffix(e.Name(), ".html"))
		}
	}
	sort.Strings(names)

	cases := make([]Case, 0, len(names))
	for _, name := range names {
		htmlPath := filepath.Join(dir, name+".html")
		yamlPath := filepath.Join(dir, name+".yaml")

		raw, err := os.ReadFile(htmlPath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", htmlPath, err)
		}
		doc, err := domhtml.ParseString(string(raw))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", htmlPath, err)
		}

		answerRaw, err := os.ReadFile(yamlPath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", yamlPath, err)
		}
		var answer answerFile
		if err := yaml.Unmarshal(answerRaw, &answer); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", yamlPath, err)
		}
		if answer.ExpectedSelector == "" {
			return nil, fmt.Errorf("%s: missing expected_selector", yamlPath)
		}

		cases = append(cases, Case{
			Name:             name,
			Document:         doc,
			ExpectedSelector: answer.ExpectedSelector,
		})
	}
	return cases, nil
}
