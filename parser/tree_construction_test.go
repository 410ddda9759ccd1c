package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type docFramementTest struct {
	enabled bool
	context string
}

type treeTest struct {
	file     string
	in       string
	errors   []string
	docFrag  docFramementTest
	expected string
}

// parseTests reads a file in the html5lib tree-construction format. Only
// the #data, #errors, #document-fragment and #document sections are used;
// #errors lists one error code per line.
func parseTests(t *testing.T, path string) []treeTest {
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	tests := strings.Split(string(data), "#data\n")
	var treeTests []treeTest
	for i, test := range tests {
		if i == 0 {
			continue
		}
		tt := treeTest{file: filepath.Base(path)}
		var (
			section string
			inLines []string
			docLine []string
		)
		for _, s := range strings.Split(test, "\n") {
			switch s {
			case "#errors", "#document-fragment", "#document":
				section = s
				continue
			}
			switch section {
			case "":
				inLines = append(inLines, s)
			case "#errors":
				if s != "" {
					tt.errors = append(tt.errors, s)
				}
			case "#document-fragment":
				if s != "" {
					tt.docFrag = docFramementTest{enabled: true, context: s}
				}
			case "#document":
				if s != "" {
					docLine = append(docLine, s)
				}
			}
		}
		tt.in = strings.Join(inLines, "\n")
		tt.expected = "#document\n"
		for _, l := range docLine {
			tt.expected += l + "\n"
		}
		treeTests = append(treeTests, tt)
	}

	return treeTests
}

func TestTreeConstructor(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "tree", "*.dat"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, path := range files {
		for _, test := range parseTests(t, path) {
			runTreeConstructorTest(test, t)
		}
	}
}

func runTreeConstructorTest(test treeTest, t *testing.T) {
	t.Run(test.file+"/"+test.in, func(t *testing.T) {
		t.Parallel()
		var (
			s     string
			perrs []*ParseError
		)
		if test.docFrag.enabled {
			doc, root, errs, err := ParseHTMLFragment(test.docFrag.context, test.in, nil)
			require.NoError(t, err)
			s, perrs = doc.DumpChildren(root), errs
		} else {
			p, err := NewParser(strings.NewReader(test.in), nil)
			require.NoError(t, err)
			doc, errs, err := p.Parse()
			require.NoError(t, err)
			s, perrs = doc.String(), errs
		}

		if s != test.expected {
			t.Errorf("Wrong document. Expected: \n\n%s\nGot: \n\n%s", test.expected, s)
		}
		var got []string
		for _, e := range perrs {
			got = append(got, e.Code.String())
		}
		if diff := cmp.Diff(test.errors, got); diff != "" {
			t.Errorf("errors mismatch (-want +got):\n%s", diff)
		}
	})
}
