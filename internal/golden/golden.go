// Copyright 2020-2025 The Roam Language Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package golden provides a mechanism for golden-file test corpora: a
// collection of files in testdata that each define one test case.
package golden

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes a test data corpus. This is essentially a way of doing
// table-driven tests where the "table" is in your file system.
type Corpus struct {
	// The root of the test data directory, relative to the test's working
	// directory (i.e., the package under test).
	Root string

	// An environment variable holding a glob; test cases matching the glob
	// run in "refresh" mode, overwriting their golden outputs with whatever
	// the test produced.
	Refresh string

	// The file extensions (without a dot) of files which define a test
	// case, e.g. "roam".
	Extensions []string

	// Possible outputs of each test case, found at the test case's path
	// plus the output's extension. A missing output file is treated as
	// being expected to be empty.
	Outputs []Output
}

// Output represents one output of a test case.
type Output struct {
	// The extension of the output. For a test case "foo.roam" and an
	// extension "stderr.txt", the runner compares against the file
	// "foo.roam.stderr.txt".
	Extension string
}

// Run executes every test case in the corpus.
//
// test is handed each case's path and contents, and fills in outputs, one
// string per [Corpus.Outputs] entry.
func (c Corpus) Run(t *testing.T, test func(t *testing.T, path, text string, outputs []string)) {
	var tests []string
	err := filepath.WalkDir(c.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && slices.Contains(c.Extensions, strings.TrimPrefix(path.Ext(p), ".")) {
			tests = append(tests, p)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("golden: error while walking testdata: %v", err)
	}

	refresh := os.Getenv(c.Refresh)
	if refresh != "" {
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("golden: invalid glob %q in $%s", refresh, c.Refresh)
		}
		t.Logf("golden: refreshing test data because %s=%s", c.Refresh, refresh)
		// Refreshed outputs were not compared against anything, so the run
		// must not be reported as passing.
		t.Fail()
	}

	for _, testPath := range tests {
		t.Run(testPath, func(t *testing.T) {
			bytes, err := os.ReadFile(testPath)
			if err != nil {
				t.Fatalf("golden: error while loading input file %q: %v", testPath, err)
			}

			outputs := make([]string, len(c.Outputs))
			test(t, testPath, string(bytes), outputs)

			refreshThis, _ := doublestar.Match(refresh, testPath)
			for i, output := range c.Outputs {
				path := fmt.Sprint(testPath, ".", output.Extension)

				if refreshThis {
					if outputs[i] == "" {
						err := os.Remove(path)
						if err != nil && !errors.Is(err, os.ErrNotExist) {
							t.Errorf("golden: error while deleting output file %q: %v", path, err)
						}
						continue
					}
					if err := os.WriteFile(path, []byte(outputs[i]), 0o666); err != nil {
						t.Errorf("golden: error while writing output file %q: %v", path, err)
					}
					continue
				}

				bytes, err := os.ReadFile(path)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("golden: error while loading output file %q: %v", path, err)
					continue
				}

				if diff := diff(string(bytes), outputs[i]); diff != "" {
					t.Errorf("golden: output mismatch for %q:\n%s", path, diff)
				}
			}
		})
	}
}

// diff builds a unified diff between want and got; returns "" if they are
// equal.
func diff(want, got string) string {
	if want == got {
		return ""
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return fmt.Sprintf("want: %q\ngot:  %q", want, got)
	}
	return text
}
