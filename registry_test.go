package tiktoken

import "testing"

func TestRegistryHasExpectedEncodings(t *testing.T) {
	r := registry()
	for _, name := range []string{"gpt2", "r50k_base", "p50k_base", "p50k_edit", "cl100k_base"} {
		entry, ok := r[name]
		if !ok {
			t.Fatalf("registry missing %q", name)
		}
		if entry.pattern == "" {
			t.Fatalf("%s: empty pattern", name)
		}
		if len(entry.specials) == 0 {
			t.Fatalf("%s: no special tokens", name)
		}
		if entry.loadRanks == nil {
			t.Fatalf("%s: no loadRanks func", name)
		}
	}
}

func TestRegistryExplicitVocabSizes(t *testing.T) {
	r := registry()
	if r["gpt2"].explicitVocab != 50257 {
		t.Fatalf("gpt2 explicitVocab = %d, want 50257", r["gpt2"].explicitVocab)
	}
	if r["r50k_base"].explicitVocab != 50257 {
		t.Fatalf("r50k_base explicitVocab = %d, want 50257", r["r50k_base"].explicitVocab)
	}
	if r["p50k_base"].explicitVocab != 50281 {
		t.Fatalf("p50k_base explicitVocab = %d, want 50281", r["p50k_base"].explicitVocab)
	}
	if r["p50k_edit"].explicitVocab != 0 {
		t.Fatalf("p50k_edit explicitVocab = %d, want 0 (unspecified)", r["p50k_edit"].explicitVocab)
	}
	if r["cl100k_base"].explicitVocab != 0 {
		t.Fatalf("cl100k_base explicitVocab = %d, want 0 (unspecified)", r["cl100k_base"].explicitVocab)
	}
}

func TestP50kEditSpecialsUsesDistinctFimSuffix(t *testing.T) {
	specials := p50kEditSpecials()
	if specials["<|fim_suffix|>"] != 50283 {
		t.Fatalf(`p50k_edit <|fim_suffix|> = %d, want 50283`, specials["<|fim_suffix|>"])
	}
	if specials["<|fim_middle|>"] != 50282 {
		t.Fatalf(`p50k_edit <|fim_middle|> = %d, want 50282`, specials["<|fim_middle|>"])
	}
	if len(specials) != 4 {
		t.Fatalf("p50k_edit specials count = %d, want 4", len(specials))
	}
}

func TestCl100kSpecials(t *testing.T) {
	specials := cl100kSpecials()
	want := map[string]Rank{
		"<|endoftext|>":   100257,
		"<|fim_prefix|>":  100258,
		"<|fim_middle|>":  100259,
		"<|fim_suffix|>":  100260,
		"<|endofprompt|>": 100276,
	}
	for lit, rank := range want {
		if specials[lit] != rank {
			t.Fatalf("cl100k_base %s = %d, want %d", lit, specials[lit], rank)
		}
	}
}
