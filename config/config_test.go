package config

import (
	"testing"

	"github.com/ascendo/LACHESIS/env"
	"github.com/ascendo/LACHESIS/textio"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/pkg/errors"
)

func TestLoad(t *testing.T) {
	c, err := Load(env.Map{
		EnvChromOrder:  " ../interval/testdata/ref.fa.fai ",
		EnvParallelism: "4",
		EnvPanel:       "a.vcf::b.vcf: ",
	})
	assert.NoError(t, err)
	expect.EQ(t, c, Config{
		ChromOrderPath: "../interval/testdata/ref.fa.fai",
		Parallelism:    4,
		PanelPaths:     []string{"a.vcf", "b.vcf"},
	})

	order, err := c.ChromOrder(vcontext.Background())
	assert.NoError(t, err)
	expect.EQ(t, order.Names(), []string{"chr1", "chr2", "chr10", "chrX"})
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(env.Map{})
	assert.NoError(t, err)
	expect.EQ(t, c.Parallelism, 0)
	expect.True(t, c.PanelPaths == nil)
	order, err := c.ChromOrder(vcontext.Background())
	assert.NoError(t, err)
	expect.True(t, order == nil)
}

func TestLoadErrors(t *testing.T) {
	for _, v := range []string{"x", "-1", "1.5"} {
		_, err := Load(env.Map{EnvParallelism: v})
		expect.True(t, err != nil, v)
	}
	c, err := Load(env.Map{EnvChromOrder: "testdata/missing.fai"})
	assert.NoError(t, err)
	_, err = c.ChromOrder(vcontext.Background())
	expect.True(t, errors.Is(err, textio.ErrFileNotFound))
}
