package parser

import "testing"

// wellFormed is a report line with exactly 7 whitespace tokens and a
// positive count in the third token.
const wellFormed = "Samples collected: 520 (kernel cl_gemm, 3 calls)"

func TestSampleCount(t *testing.T) {
	testCases := []struct {
		name   string
		stdout string
		want   int
	}{
		{
			name:   "well formed line",
			stdout: "Matrix multiplication CORRECT\n" + wellFormed + "\n",
			want:   520,
		},
		{
			name:   "no report line",
			stdout: "Matrix multiplication CORRECT\n",
			want:   0,
		},
		{
			name:   "empty input",
			stdout: "",
			want:   0,
		},
		{
			name:   "zero count",
			stdout: "Samples collected: 0 (kernel cl_gemm, 0 calls)\n",
			want:   0,
		},
		{
			name:   "too few tokens",
			stdout: "Samples collected: 5\n",
			want:   0,
		},
		{
			name:   "too many tokens",
			stdout: "Samples collected: 5 a b c d e f g\n",
			want:   0,
		},
		{
			name:   "prefix must start the line",
			stdout: "  Samples collected: 520 (kernel cl_gemm, 3 calls)\n",
			want:   0,
		},
		{
			name: "first malformed match wins over later valid line",
			stdout: "Samples collected: 5\n" +
				wellFormed + "\n",
			want: 0,
		},
		{
			name: "first valid match wins over later lines",
			stdout: wellFormed + "\n" +
				"Samples collected: 999 (kernel cl_gemm, 9 calls)\n",
			want: 520,
		},
		{
			name:   "non-integer count token",
			stdout: "Samples collected: many (kernel cl_gemm, 3 calls)\n",
			want:   0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := SampleCount(tc.stdout)
			if got != tc.want {
				t.Errorf("SampleCount() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSuccess(t *testing.T) {
	if !Success(wellFormed) {
		t.Error("Success() = false for positive count")
	}
	if Success("Samples collected: 0 (kernel cl_gemm, 0 calls)") {
		t.Error("Success() = true for zero count")
	}
	if Success("no report here") {
		t.Error("Success() = true with no report line")
	}
}

// The parser is a pure function: repeated calls on identical input
// must return identical results.
func TestSampleCount_Idempotent(t *testing.T) {
	input := "noise\n" + wellFormed + "\nnoise\n"
	first := SampleCount(input)
	second := SampleCount(input)
	if first != second {
		t.Errorf("SampleCount not idempotent: %d then %d", first, second)
	}
}
