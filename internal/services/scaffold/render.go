package scaffold

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"stencil/internal/errors"
)

// skeletonDir is the subdirectory of a template holding the files to render.
const skeletonDir = "skeleton"

// tmplSuffix marks files whose content is rendered; the suffix is stripped
// from the output name.
const tmplSuffix = ".tmpl"

// renderContext is the dot value every template sees.
type renderContext struct {
	Project struct {
		Name        string
		Slug        string
		Description string
	}
	Author struct {
		Name  string
		Email string
	}
	Vars map[string]string
	Year int
}

// renderTree walks the template's skeleton/ and writes the rendered files
// under dest. Returns the relative output paths, sorted.
func renderTree(ctx context.Context, tfs fs.FS, dest string, rc renderContext) ([]string, error) {
	var files []string

	err := fs.WalkDir(tfs, skeletonDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrap(errors.ETemplateInvalid, "template has no skeleton directory", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, skeletonDir+"/")
		outRel, ok, err := renderPath(rel, rc)
		if err != nil {
			return err
		}
		if !ok { // a path segment rendered empty: conditional file, skip
			return nil
		}

		src, err := fs.ReadFile(tfs, p)
		if err != nil {
			return errors.Wrap(errors.EInternal, "failed to read template file", err)
		}

		out := src
		if strings.HasSuffix(outRel, tmplSuffix) {
			outRel = strings.TrimSuffix(outRel, tmplSuffix)
			out, err = renderContent(rel, src, rc)
			if err != nil {
				return err
			}
		}

		target := filepath.Join(dest, filepath.FromSlash(outRel))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target, out, fileMode(outRel)); err != nil {
			return err
		}
		files = append(files, outRel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// renderPath templates each path segment. ok is false when a segment renders
// to "", which drops the file.
func renderPath(rel string, rc renderContext) (string, bool, error) {
	segs := strings.Split(rel, "/")
	for i, seg := range segs {
		if !strings.Contains(seg, "{{") {
			continue
		}
		rendered, err := renderString("path:"+rel, seg, rc)
		if err != nil {
			return "", false, err
		}
		rendered = strings.TrimSpace(rendered)
		if rendered == "" || rendered == tmplSuffix {
			return "", false, nil
		}
		segs[i] = rendered
	}
	return strings.Join(segs, "/"), true, nil
}

func renderContent(name string, src []byte, rc renderContext) ([]byte, error) {
	out, err := renderString(name, string(src), rc)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func renderString(name, text string, rc renderContext) (string, error) {
	t, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", errors.Wrap(errors.ETemplateInvalid, "template parse failed: "+name, err)
	}
	var b strings.Builder
	if err := t.Execute(&b, rc); err != nil {
		return "", errors.Wrap(errors.ETemplateInvalid, "template execution failed: "+name, err)
	}
	return b.String(), nil
}

// fileMode marks shell scripts executable; everything else is a plain file.
func fileMode(rel string) os.FileMode {
	if strings.HasSuffix(rel, ".sh") {
		return 0o755
	}
	return 0o644
}
