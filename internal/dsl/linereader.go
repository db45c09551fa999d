package dsl

import (
	"bufio"
	"os"
	"strings"
)

// readLines splits DSL source text into raw, untokenized lines, preserving
// the exact text of each line (minus its line terminator) so later error
// reporting can echo the offending source verbatim.
func readLines(source string) []string {
	scanner := bufio.NewScanner(strings.NewReader(source))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

// readFile loads DSL source from one file on disk. It does not accept a
// directory; ParseFile handles a directory by walking it (parseDir) and
// calling readFile once per regular file.
func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
