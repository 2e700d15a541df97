package parser

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/html5parse/parser/spec"
)

type scriptingMode uint

const (
	scriptBoth scriptingMode = iota
	scriptOff
	scriptOn
)

type treeTest struct {
	file       string
	in         string
	context    string
	fragment   bool
	scriptMode scriptingMode
	expected   string
}

// parseTreeTests reads an html5lib tree construction .dat file.
func parseTreeTests(t *testing.T, path string) []treeTest {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var (
		tests   []treeTest
		cur     *treeTest
		section string
		body    []string
	)
	flush := func() {
		if cur == nil {
			return
		}
		switch section {
		case "#data":
			cur.in = strings.Join(body, "\n")
		case "#document-fragment":
			cur.context = strings.TrimSpace(strings.Join(body, "\n"))
		case "#document":
			cur.expected = strings.TrimRight(strings.Join(body, "\n"), "\n")
		}
		body = nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		switch line {
		case "#data":
			flush()
			if cur != nil {
				tests = append(tests, *cur)
			}
			cur = &treeTest{file: filepath.Base(path)}
			section = line
			continue
		case "#errors", "#new-errors", "#document":
			flush()
			section = line
			continue
		case "#document-fragment":
			flush()
			cur.fragment = true
			section = line
			continue
		case "#script-on":
			flush()
			cur.scriptMode = scriptOn
			section = line
			continue
		case "#script-off":
			flush()
			cur.scriptMode = scriptOff
			section = line
			continue
		}
		body = append(body, line)
	}
	require.NoError(t, scanner.Err())
	flush()
	if cur != nil {
		tests = append(tests, *cur)
	}
	return tests
}

func TestTreeConstructor(t *testing.T) {
	t.Parallel()
	files, err := filepath.Glob(filepath.Join("testdata", "tree_construction", "*.dat"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		for _, test := range parseTreeTests(t, file) {
			switch test.scriptMode {
			case scriptBoth:
				runTreeConstructorTest(t, test, false)
				runTreeConstructorTest(t, test, true)
			case scriptOn:
				runTreeConstructorTest(t, test, true)
			case scriptOff:
				runTreeConstructorTest(t, test, false)
			}
		}
	}
}

func runTreeConstructorTest(t *testing.T, test treeTest, scripting bool) {
	name := test.file + "/" + test.in
	if scripting {
		name += "/script-on"
	}
	t.Run(name, func(t *testing.T) {
		t.Parallel()
		opts := []Option{WithScripting(scripting), WithEncoding("utf-8")}
		if test.fragment {
			res, err := ParseFragment(strings.NewReader(test.in), test.context, opts...)
			require.NoError(t, err)
			assert.Equal(t, test.expected, spec.DumpFragment(res.Fragment))
			return
		}

		res, err := Parse(strings.NewReader(test.in), opts...)
		require.NoError(t, err)
		assert.Equal(t, test.expected, res.Document.(*spec.Node).String())
	})
}
