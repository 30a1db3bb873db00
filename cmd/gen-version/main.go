// Writes a Go file that stamps the server package with the git description of
// the working tree.  Run through go:generate in the server package.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

var (
	outputfile = flag.String("o", "version_git.go", "generated Go file")
	pkgName    = flag.String("pkg", "server", "package of the generated file")
)

const code = `// Code generated by gen-version. DO NOT EDIT.

package %s

func init() {
	gitVersion = %q
}
`

// describe returns the nearest tag with a dirty marker, or "notag" outside a
// tagged repository.
func describe() string {
	out, err := exec.Command("git", "describe", "--abbrev=5", "--tags", "--dirty").Output()
	if err != nil {
		return "notag"
	}
	return strings.TrimSpace(string(out))
}

func main() {
	flag.Parse()
	if !strings.HasSuffix(*outputfile, ".go") {
		fmt.Fprintf(os.Stderr, "output file %q must end in .go\n", *outputfile)
		os.Exit(2)
	}
	if err := os.WriteFile(*outputfile, []byte(fmt.Sprintf(code, *pkgName, describe())), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "writing %s: %v\n", *outputfile, err)
		os.Exit(1)
	}
}
