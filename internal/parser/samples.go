// Package parser provides parsing for benchmark output streams.
//
// The instrumented GEMM sample reports its measurement count on a line
// of the form:
//
//	Samples collected: 1024 (kernel cl_gemm, 3 calls)
//
// The line is whitespace-tokenized and the count is the third token.
// A well-formed report line has exactly 7 tokens; anything else is
// treated as a malformed report.
package parser

import (
	"strconv"
	"strings"
)

// samplesPrefix marks the report line in the benchmark's stdout.
const samplesPrefix = "Samples collected:"

// reportTokens is the token count of a well-formed report line.
const reportTokens = 7

// SampleCount extracts the sample count from benchmark stdout.
//
// Only the first line with the report prefix is consulted. If that
// line has the wrong token count, or its count token is not an
// integer, the result is 0 even when a later line would have parsed
// cleanly. This matches the established log-scraping behavior that
// downstream tooling depends on.
func SampleCount(stdout string) int {
	count := 0
	for _, line := range strings.Split(stdout, "\n") {
		if !strings.HasPrefix(line, samplesPrefix) {
			continue
		}
		items := strings.Fields(line)
		if len(items) != reportTokens {
			break
		}
		if n, err := strconv.Atoi(items[2]); err == nil {
			count = n
		}
		break
	}
	return count
}

// Success reports whether stdout contains a positive sample count.
func Success(stdout string) bool {
	return SampleCount(stdout) > 0
}
