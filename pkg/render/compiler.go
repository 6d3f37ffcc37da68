package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/matzehuels/netsketch/pkg/errors"
)

// engine describes one LaTeX compiler candidate. Engines are probed in order
// and the first available one is used for every compilation.
type engine struct {
	name    string
	twoPass bool
}

var engines = []engine{
	{name: "latexmk"},
	{name: "pdflatex", twoPass: true},
}

// Compiler turns a LaTeX document into a PDF using whichever engine is
// installed. Tool availability is probed once at construction.
type Compiler struct {
	available map[string]bool

	lookPath func(string) (string, error)
	run      func(dir, name string, args ...string) error
}

// NewCompiler probes the host for LaTeX engines and returns a compiler bound
// to the result.
func NewCompiler() *Compiler {
	return newCompiler(exec.LookPath, runCommand)
}

func newCompiler(lookPath func(string) (string, error), run func(dir, name string, args ...string) error) *Compiler {
	c := &Compiler{
		available: make(map[string]bool, len(engines)),
		lookPath:  lookPath,
		run:       run,
	}
	for _, e := range engines {
		_, err := c.lookPath(e.name)
		c.available[e.name] = err == nil
	}
	return c
}

// Engines reports the probed engine names that are available, in preference
// order.
func (c *Compiler) Engines() []string {
	var names []string
	for _, e := range engines {
		if c.available[e.name] {
			names = append(names, e.name)
		}
	}
	return names
}

// CompileToPDF compiles the document into a PDF at outPath. Compilation runs
// in a scoped temporary directory that is removed afterwards; only the PDF
// (and, when keepTexPath is non-empty, the source document) survive. Returns
// the absolute output path.
func (c *Compiler) CompileToPDF(document, outPath, keepTexPath string) (string, error) {
	eng, ok := c.pick()
	if !ok {
		return "", errors.New(errors.ErrCodeNoEngine, "no LaTeX engine found (install latexmk or pdflatex)")
	}

	absOut, err := filepath.Abs(outPath)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve output path")
	}
	if err := os.MkdirAll(filepath.Dir(absOut), 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "create output directory")
	}

	workDir, err := os.MkdirTemp("", "netsketch-tex-")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "create work directory")
	}
	defer os.RemoveAll(workDir)

	const stem = "diagram"
	if err := os.WriteFile(filepath.Join(workDir, stem+".tex"), []byte(document), 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "write document")
	}

	if eng.twoPass {
		// First pass resolves references and may exit non-zero even when a
		// usable PDF follows from the second pass.
		_ = c.run(workDir, eng.name, "-interaction=nonstopmode", stem+".tex")
		if err := c.run(workDir, eng.name, "-interaction=nonstopmode", stem+".tex"); err != nil {
			return "", errors.Wrap(errors.ErrCodeCompileFailed, err, "%s failed", eng.name)
		}
	} else {
		if err := c.run(workDir, eng.name, "-pdf", "-interaction=nonstopmode", stem+".tex"); err != nil {
			return "", errors.Wrap(errors.ErrCodeCompileFailed, err, "%s failed", eng.name)
		}
	}

	produced := filepath.Join(workDir, stem+".pdf")
	if _, err := os.Stat(produced); err != nil {
		return "", errors.New(errors.ErrCodeCompileFailed, "%s produced no PDF", eng.name)
	}
	if err := copyFile(produced, absOut); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "copy PDF to output path")
	}

	if keepTexPath != "" {
		if err := os.MkdirAll(filepath.Dir(keepTexPath), 0o755); err != nil {
			return "", errors.Wrap(errors.ErrCodeInternal, err, "create tex directory")
		}
		if err := os.WriteFile(keepTexPath, []byte(document), 0o644); err != nil {
			return "", errors.Wrap(errors.ErrCodeInternal, err, "persist tex document")
		}
	}
	return absOut, nil
}

func (c *Compiler) pick() (engine, bool) {
	for _, e := range engines {
		if c.available[e.name] {
			return e, true
		}
	}
	return engine{}, false
}

// runCommand executes a tool in dir and folds its combined output into the
// returned error so failures carry the tool's diagnostics.
func runCommand(dir, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, tailOf(&out))
	}
	return nil
}

// tailOf keeps error payloads bounded; LaTeX logs run to thousands of lines.
func tailOf(b *bytes.Buffer) string {
	const max = 2048
	s := b.String()
	if len(s) > max {
		s = "..." + s[len(s)-max:]
	}
	return s
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.CreateTemp(filepath.Dir(dst), ".netsketch-*")
	if err != nil {
		return err
	}
	tmp := out.Name()
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}
