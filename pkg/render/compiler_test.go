package render

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/netsketch/pkg/errors"
)

// fakeTools returns a lookPath that reports exactly the given tools as
// installed.
func fakeTools(names ...string) func(string) (string, error) {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", os.ErrNotExist
	}
}

// call records one subprocess invocation.
type call struct {
	dir  string
	name string
	args []string
}

// recorder collects invocations and fakes the artifacts a real tool would
// produce.
type recorder struct {
	calls []call
	fail  func(c call) error
	emit  func(c call) error
}

func (r *recorder) run(dir, name string, args ...string) error {
	c := call{dir: dir, name: name, args: args}
	r.calls = append(r.calls, c)
	if r.fail != nil {
		if err := r.fail(c); err != nil {
			return err
		}
	}
	if r.emit != nil {
		return r.emit(c)
	}
	return nil
}

// emitPDF writes an empty diagram.pdf into the work directory, mimicking a
// successful engine run.
func emitPDF(c call) error {
	return os.WriteFile(filepath.Join(c.dir, "diagram.pdf"), []byte("%PDF-1.5"), 0o644)
}

func TestCompilerNoEngine(t *testing.T) {
	c := newCompiler(fakeTools(), nil)
	_, err := c.CompileToPDF("doc", filepath.Join(t.TempDir(), "out.pdf"), "")
	if errors.GetCode(err) != errors.ErrCodeNoEngine {
		t.Fatalf("expected NO_ENGINE, got %v", err)
	}
}

func TestCompilerPrefersLatexmk(t *testing.T) {
	rec := &recorder{emit: emitPDF}
	c := newCompiler(fakeTools("latexmk", "pdflatex"), rec.run)

	out := filepath.Join(t.TempDir(), "out.pdf")
	got, err := c.CompileToPDF("doc", out, "")
	if err != nil {
		t.Fatalf("CompileToPDF: %v", err)
	}
	if got != out {
		t.Errorf("returned path = %q, want %q", got, out)
	}
	if len(rec.calls) != 1 || rec.calls[0].name != "latexmk" {
		t.Fatalf("expected single latexmk call, got %+v", rec.calls)
	}
	if want := []string{"-pdf", "-interaction=nonstopmode", "diagram.tex"}; !reflect.DeepEqual(rec.calls[0].args, want) {
		t.Errorf("latexmk args = %v, want %v", rec.calls[0].args, want)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("PDF not written: %v", err)
	}
}

func TestCompilerPdflatexRunsTwice(t *testing.T) {
	rec := &recorder{emit: emitPDF}
	c := newCompiler(fakeTools("pdflatex"), rec.run)

	if _, err := c.CompileToPDF("doc", filepath.Join(t.TempDir(), "out.pdf"), ""); err != nil {
		t.Fatalf("CompileToPDF: %v", err)
	}
	if len(rec.calls) != 2 {
		t.Fatalf("expected two pdflatex passes, got %d calls", len(rec.calls))
	}
	for _, c := range rec.calls {
		if c.name != "pdflatex" {
			t.Errorf("unexpected tool %q", c.name)
		}
	}
}

func TestCompilerPdflatexFirstPassFailureIgnored(t *testing.T) {
	rec := &recorder{emit: emitPDF}
	first := true
	rec.fail = func(call) error {
		if first {
			first = false
			return os.ErrInvalid
		}
		return nil
	}
	c := newCompiler(fakeTools("pdflatex"), rec.run)

	if _, err := c.CompileToPDF("doc", filepath.Join(t.TempDir(), "out.pdf"), ""); err != nil {
		t.Fatalf("first-pass failure should be ignored, got %v", err)
	}
}

func TestCompilerSecondPassFailure(t *testing.T) {
	rec := &recorder{fail: func(call) error { return os.ErrInvalid }}
	c := newCompiler(fakeTools("pdflatex"), rec.run)

	out := filepath.Join(t.TempDir(), "out.pdf")
	_, err := c.CompileToPDF("doc", out, "")
	if errors.GetCode(err) != errors.ErrCodeCompileFailed {
		t.Fatalf("expected COMPILE_FAILED, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("failed compilation must not leave an output file")
	}
}

func TestCompilerNoPDFProduced(t *testing.T) {
	rec := &recorder{}
	c := newCompiler(fakeTools("latexmk"), rec.run)

	_, err := c.CompileToPDF("doc", filepath.Join(t.TempDir(), "out.pdf"), "")
	if errors.GetCode(err) != errors.ErrCodeCompileFailed {
		t.Fatalf("expected COMPILE_FAILED when engine produces no PDF, got %v", err)
	}
}

func TestCompilerKeepsTeX(t *testing.T) {
	rec := &recorder{emit: emitPDF}
	c := newCompiler(fakeTools("latexmk"), rec.run)

	dir := t.TempDir()
	texPath := filepath.Join(dir, "kept.tex")
	if _, err := c.CompileToPDF("the document", filepath.Join(dir, "out.pdf"), texPath); err != nil {
		t.Fatalf("CompileToPDF: %v", err)
	}
	data, err := os.ReadFile(texPath)
	if err != nil {
		t.Fatalf("kept tex missing: %v", err)
	}
	if string(data) != "the document" {
		t.Errorf("kept tex content = %q", data)
	}
}

func TestCompilerDiscardsWorkDir(t *testing.T) {
	var workDir string
	rec := &recorder{emit: func(c call) error {
		workDir = c.dir
		return emitPDF(c)
	}}
	c := newCompiler(fakeTools("latexmk"), rec.run)

	if _, err := c.CompileToPDF("doc", filepath.Join(t.TempDir(), "out.pdf"), ""); err != nil {
		t.Fatalf("CompileToPDF: %v", err)
	}
	if _, err := os.Stat(workDir); !os.IsNotExist(err) {
		t.Errorf("work directory %s should be removed", workDir)
	}
}

func TestCompilerEngines(t *testing.T) {
	c := newCompiler(fakeTools("pdflatex"), nil)
	if got := c.Engines(); !reflect.DeepEqual(got, []string{"pdflatex"}) {
		t.Errorf("Engines() = %v", got)
	}
}
