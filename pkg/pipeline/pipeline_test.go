package pipeline

import (
	"bytes"
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/warnet/warcli/pkg/errors"
	"github.com/warnet/warcli/pkg/graphml"
)

func ptr[T any](v T) *T { return &v }

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr errors.Code
	}{
		{"zero nodes", Options{Nodes: 0}, ""},
		{"defaults", Options{Nodes: 12}, ""},
		{"negative nodes", Options{Nodes: -1}, errors.ErrCodeInvalidInput},
		{"negative extra", Options{Nodes: 3, ExtraOutbound: ptr(-1)}, errors.ErrCodeInvalidInput},
		{"extra above default", Options{Nodes: 3, ExtraOutbound: ptr(8)}, errors.ErrCodeInvalidInput},
		{"extra at default", Options{Nodes: 3, ExtraOutbound: ptr(7)}, ""},
		{"bad version", Options{Nodes: 3, Values: graphml.Values{Version: "2 7"}}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if got := errors.GetCode(err); got != tt.wantErr || (tt.wantErr == "") != (err == nil) {
				t.Errorf("Validate() = %v, want code %q", err, tt.wantErr)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil)
	result, err := r.Execute(context.Background(), Options{
		Nodes:  5,
		Seed:   ptr(uint64(1)),
		Values: graphml.Values{Version: "27.0"},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Stats.NodeCount != 5 || result.Stats.EdgeCount != 20 {
		t.Errorf("stats = %+v, want 5 nodes and 20 edges", result.Stats)
	}
	if result.Stats.Size != len(result.Document) {
		t.Errorf("Stats.Size = %d, want %d", result.Stats.Size, len(result.Document))
	}
	if result.Conf != nil {
		t.Error("Conf should be nil without a bitcoin.conf")
	}

	report, err := graphml.Validate(bytes.NewReader(result.Document))
	if err != nil {
		t.Fatalf("document does not validate: %v", err)
	}
	if report.Versions["27.0"] != 5 {
		t.Errorf("versions = %v, want 27.0 on all 5 nodes", report.Versions)
	}
}

func TestExecuteSeeded(t *testing.T) {
	r := NewRunner(nil)
	opts := Options{Nodes: 30, Seed: ptr(uint64(2024))}

	a, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Document, b.Document) {
		t.Error("same seed produced different documents")
	}
}

func TestExecuteRandOverridesSeed(t *testing.T) {
	r := NewRunner(nil)
	withRand := func(seed uint64) []byte {
		res, err := r.Execute(context.Background(), Options{
			Nodes: 15,
			Seed:  ptr(uint64(1)),
			Rand:  rand.New(rand.NewPCG(seed, seed)),
		})
		if err != nil {
			t.Fatal(err)
		}
		return res.Document
	}
	if !bytes.Equal(withRand(9), withRand(9)) {
		t.Error("same source produced different documents")
	}
}

func TestExecuteExtraOutbound(t *testing.T) {
	r := NewRunner(nil)
	result, err := r.Execute(context.Background(), Options{Nodes: 10, ExtraOutbound: ptr(0)})
	if err != nil {
		t.Fatal(err)
	}
	if result.Stats.EdgeCount != 10 {
		t.Errorf("EdgeCount = %d, want ring only (10)", result.Stats.EdgeCount)
	}
}

func TestExecuteBitcoinConf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bitcoin.conf")
	if err := os.WriteFile(path, []byte("txindex=1\n[signet]\nsignetchallenge=51\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := NewRunner(nil).Execute(context.Background(), Options{
		Nodes:       2,
		BitcoinConf: path,
		Values:      graphml.Values{BitcoinConfig: "ignored"},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if result.Conf == nil {
		t.Fatal("Conf not set")
	}
	want := `<data key="bitcoin_config">txindex=1,[signet],signetchallenge=51</data>`
	if got := string(result.Document); !strings.Contains(got, want) {
		t.Errorf("document missing %s", want)
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil)

	if _, err := r.Execute(context.Background(), Options{Nodes: 3, BitcoinConf: "/nonexistent/bitcoin.conf"}); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing conf: got %v, want FILE_NOT_FOUND", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Execute(ctx, Options{Nodes: 3}); err != context.Canceled {
		t.Errorf("cancelled context: got %v, want context.Canceled", err)
	}
}

func TestGenerateWrapsConstructionErrors(t *testing.T) {
	_, err := NewRunner(nil).Generate(context.Background(), Options{Nodes: -2})
	if !errors.Is(err, errors.ErrCodeConstruction) {
		t.Errorf("Generate(-2) = %v, want CONSTRUCTION_FAILED", err)
	}
}
