package env

import (
	"os"
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestMap(t *testing.T) {
	var a Accessor = Map{"GTOOLS_PANEL": "a.vcf"}
	expect.EQ(t, a.Getenv("GTOOLS_PANEL"), "a.vcf")
	expect.EQ(t, a.Getenv("GTOOLS_MISSING"), "")
}

func TestOS(t *testing.T) {
	const name = "GTOOLS_ENV_TEST_VAR"
	expect.EQ(t, OS{}.Getenv(name), "")
	os.Setenv(name, "x")
	defer os.Unsetenv(name)
	expect.EQ(t, OS{}.Getenv(name), "x")
}
