package gpu

import "testing"

func TestCompileConeShaderProducesWords(t *testing.T) {
	words, err := compileConeShader()
	if err != nil {
		t.Fatalf("compileConeShader() = %v", err)
	}
	if len(words) == 0 {
		t.Fatal("compileConeShader() returned no SPIR-V words")
	}
}
