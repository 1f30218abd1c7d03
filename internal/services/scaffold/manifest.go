package scaffold

import (
	"bytes"
	"io/fs"
	"regexp"

	"gopkg.in/yaml.v3"

	"stencil/internal/domain"
	"stencil/internal/errors"
)

// ManifestFile is the manifest name every template directory must contain.
const ManifestFile = "stencil.yaml"

var varNameRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// parseManifest decodes and validates a stencil.yaml.
func parseManifest(b []byte) (domain.Manifest, error) {
	var m domain.Manifest
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return domain.Manifest{}, errors.Wrap(errors.ETemplateInvalid, "invalid stencil.yaml", err)
	}

	if m.Name == "" {
		return domain.Manifest{}, errors.New(errors.ETemplateInvalid, "stencil.yaml: name is required")
	}
	seen := make(map[string]bool, len(m.Variables))
	for _, v := range m.Variables {
		if !varNameRe.MatchString(v.Name) {
			return domain.Manifest{}, errors.Newf(errors.ETemplateInvalid, "stencil.yaml: invalid variable name %q", v.Name)
		}
		if seen[v.Name] {
			return domain.Manifest{}, errors.Newf(errors.ETemplateInvalid, "stencil.yaml: duplicate variable %q", v.Name)
		}
		seen[v.Name] = true
	}
	return m, nil
}

// loadManifest reads and parses the manifest from a template filesystem.
func loadManifest(tfs fs.FS) (domain.Manifest, error) {
	b, err := fs.ReadFile(tfs, ManifestFile)
	if err != nil {
		return domain.Manifest{}, errors.Wrap(errors.ETemplateInvalid, "template has no stencil.yaml", err)
	}
	return parseManifest(b)
}
