package module

import (
	"context"
	"sync"
	"testing"
)

type languagePort interface {
	Languages(context.Context) ([]string, error)
}

type fixedLanguages []string

func (f fixedLanguages) Languages(context.Context) ([]string, error) { return f, nil }

// the registry is process global, so these tests do not run in parallel
func TestRegistry(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	Register("translit", fixedLanguages{"ru", "lo"})
	Register("meta", nil)

	p, ok := PortsAs[languagePort]("translit")
	if !ok {
		t.Fatal("translit port not found")
	}
	if langs, _ := p.Languages(context.Background()); len(langs) != 2 {
		t.Fatalf("languages = %v", langs)
	}

	if _, ok := PortsAs[languagePort]("meta"); ok {
		t.Fatal("nil ports should not satisfy an interface")
	}
	if _, ok := PortsAs[languagePort]("missing"); ok {
		t.Fatal("missing module found")
	}
	if _, ok := PortsAs[int]("translit"); ok {
		t.Fatal("type mismatch reported ok")
	}

	Register("translit", fixedLanguages{"ru"})
	p, _ = PortsAs[languagePort]("translit")
	if langs, _ := p.Languages(context.Background()); len(langs) != 1 {
		t.Fatalf("re-register did not replace: %v", langs)
	}

	Reset()
	if _, ok := PortsAs[languagePort]("translit"); ok {
		t.Fatal("Reset kept entries")
	}
}

func TestRegistry_ConcurrentRegisterAndLookup(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Register("translit", fixedLanguages{string(rune('a' + i))})
		}()
		go func() {
			defer wg.Done()
			_, _ = PortsAs[languagePort]("translit")
		}()
	}
	wg.Wait()
	if _, ok := PortsAs[languagePort]("translit"); !ok {
		t.Fatal("port missing after concurrent registers")
	}
}
