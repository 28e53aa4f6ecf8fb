// wirebox/cmd/wiregen/main.go
//
// wiregen turns a JSON binding manifest into a composition-root Go file:
// one function that fills a di.Registry with the declared bindings. It
// keeps wiring explicit and reviewable — the manifest is data, the emitted
// file is ordinary code calling the same Bind helpers a hand-written root
// would.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"go/format"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"
)

type Binding struct {
	// Contract is the Go type expression for the bound contract
	// (e.g. "serde.Codec", "*confload.Env").
	Contract string `json:"contract"`

	// Name is an optional qualifier for the binding.
	Name string `json:"name"`

	// Provider is a symbol evaluating to *di.Provider
	// (e.g. "di.Instance(serde.JSON())", "newGreeterProvider()").
	Provider string `json:"provider"`

	// Scope is "transient" (default), "injector" or "global".
	Scope string `json:"scope"`

	// Multi appends to the contract's multi-binding list.
	Multi bool `json:"multi"`
}

type Manifest struct {
	Package  string    `json:"package"`
	Func     string    `json:"func"`
	Imports  []string  `json:"imports"`
	Bindings []Binding `json:"bindings"`
}

var scopes = map[string]string{
	"":          "di.Transient",
	"transient": "di.Transient",
	"injector":  "di.InjectorSingleton",
	"global":    "di.GlobalSingleton",
}

const fileTemplate = `// Code generated by wiregen. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{printf "%q" .}}
{{- end}}
)

func {{.Func}}(reg *di.Registry) error {
{{- range .Bindings}}
{{- if .Multi}}
	if err := reg.BindMulti(di.KeyOf[{{.Contract}}](), {{.Provider}}); err != nil {
		return err
	}
{{- else if .Name}}
	if err := reg.Bind(di.Named[{{.Contract}}]({{printf "%q" .Name}}), {{.Provider}}, {{scope .Scope}}); err != nil {
		return err
	}
{{- else}}
	if err := reg.Bind(di.KeyOf[{{.Contract}}](), {{.Provider}}, {{scope .Scope}}); err != nil {
		return err
	}
{{- end}}
{{- end}}
	return nil
}
`

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("wiregen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	manifestPath := fs.String("manifest", "", "path to bindings.json")
	outPath := fs.String("out", "", "output .gen.go file path")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*manifestPath) == "" {
		return fmt.Errorf("missing -manifest")
	}
	if strings.TrimSpace(*outPath) == "" {
		return fmt.Errorf("missing -out")
	}

	src, err := Generate(*manifestPath)
	if err != nil {
		return err
	}
	return os.WriteFile(*outPath, src, 0o644)
}

// Generate renders and gofmt's the composition root for the manifest at path.
func Generate(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("wiregen: parsing %s: %w", path, err)
	}
	if err := validate(&m); err != nil {
		return nil, err
	}

	tmpl := template.Must(template.New("wiregen").
		Funcs(template.FuncMap{"scope": func(s string) string { return scopes[s] }}).
		Parse(fileTemplate))

	var buf strings.Builder
	if err := tmpl.Execute(&buf, m); err != nil {
		return nil, err
	}
	src, err := format.Source([]byte(buf.String()))
	if err != nil {
		return nil, fmt.Errorf("wiregen: emitted code does not parse: %w", err)
	}
	return src, nil
}

func validate(m *Manifest) error {
	if m.Package == "" {
		return fmt.Errorf("wiregen: manifest missing package")
	}
	if m.Func == "" {
		m.Func = "RegisterBindings"
	}
	if len(m.Bindings) == 0 {
		return fmt.Errorf("wiregen: manifest has no bindings")
	}
	for i, b := range m.Bindings {
		if b.Contract == "" || b.Provider == "" {
			return fmt.Errorf("wiregen: binding %d missing contract or provider", i)
		}
		if _, ok := scopes[b.Scope]; !ok {
			return fmt.Errorf("wiregen: binding %d has unknown scope %q", i, b.Scope)
		}
		if b.Multi && b.Name != "" {
			return fmt.Errorf("wiregen: binding %d cannot be both multi and named", i)
		}
	}

	// The emitted file always needs the di package.
	seen := map[string]bool{}
	for _, imp := range m.Imports {
		seen[imp] = true
	}
	if !seen["github.com/kettleby/wirebox/di"] {
		m.Imports = append(m.Imports, "github.com/kettleby/wirebox/di")
	}
	sort.Strings(m.Imports)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
