package modules

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/funvibe/nixrt/internal/config"
)

// Codegen runs the ahead-of-time translation pipeline: every source file
// under a root is sent to the translator, the generated Go source lands
// in outDir together with registration glue, and the resulting package is
// checked with go/packages before anything depends on it.
type Codegen struct {
	Translator SourceTranslator
	OutDir     string
	// PackageName of the generated tree; defaults to "nixgen".
	PackageName string
}

// TranslateTree walks root for translatable sources and generates one Go
// file per module. It returns the generated file paths.
func (c *Codegen) TranslateTree(ctx context.Context, root string) ([]string, error) {
	if c.Translator == nil {
		return nil, fmt.Errorf("codegen: no translator configured")
	}
	pkg := c.PackageName
	if pkg == "" {
		pkg = "nixgen"
	}
	if err := os.MkdirAll(c.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("codegen: %w", err)
	}

	var generated []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, config.SourceFileExt) {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		src, err := os.ReadFile(abs)
		if err != nil {
			return err
		}
		tr, err := c.Translator.TranslateSource(ctx, abs, src)
		if err != nil {
			return fmt.Errorf("translating %s: %w", abs, err)
		}
		out := filepath.Join(c.OutDir, genFileName(abs))
		if err := os.WriteFile(out, []byte(renderModuleFile(pkg, abs, tr)), 0o644); err != nil {
			return err
		}
		generated = append(generated, out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return generated, nil
}

// Verify loads the generated package and reports the first error
// go/packages sees, so a broken translation fails at generation time
// instead of at the consumer's build.
func (c *Codegen) Verify() error {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedTypes,
		Dir:  c.OutDir,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return fmt.Errorf("codegen verify: %w", err)
	}
	for _, pkg := range pkgs {
		for _, pkgErr := range pkg.Errors {
			return fmt.Errorf("codegen verify: generated package does not compile: %s", pkgErr.Msg)
		}
	}
	return nil
}

// genFileName flattens an absolute source path into a stable generated
// file name.
func genFileName(abs string) string {
	flat := strings.Map(func(r rune) rune {
		switch r {
		case '/', '.', '-':
			return '_'
		}
		return r
	}, strings.TrimPrefix(abs, "/"))
	return flat + "_gen.go"
}

// renderModuleFile wraps the translator's output in registration glue.
// The generated source is expected to define the module function under
// the name the translator reports in package_name, or `moduleFn` when
// unnamed.
func renderModuleFile(pkg, abs string, tr *Translation) string {
	fnName := tr.PackageName
	if fnName == "" {
		fnName = "moduleFn"
	}
	var sb strings.Builder
	sb.WriteString("// Code generated by nixrt codegen from " + abs + ". DO NOT EDIT.\n\n")
	sb.WriteString("package " + pkg + "\n\n")
	sb.WriteString("import nixrt \"github.com/funvibe/nixrt\"\n\n")
	sb.WriteString(tr.GoSource)
	sb.WriteString("\n\nfunc init() {\n")
	sb.WriteString(fmt.Sprintf("\tnixrt.Register(%q, %s)\n", abs, fnName))
	sb.WriteString("}\n")
	if tr.SourceMap != "" {
		sb.WriteString("\n// sourcemap: " + tr.SourceMap + "\n")
	}
	return sb.String()
}
