package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterAdmits(t *testing.T) {
	chr2Het := Filter{Chrom: "chr2", Genotype: Het}
	for _, test := range []struct {
		r    Record
		want bool
	}{
		{Record{Chrom: "chr2", Genotype: Het}, true},
		{Record{Chrom: "chr2", Genotype: Het, InDB: True}, true},
		{Record{Chrom: "chr2", Genotype: HomAlt}, false},
		{Record{Chrom: "chr1", Genotype: Het}, false},
		{Record{Chrom: "chr1", Genotype: OtherGenotype}, false},
	} {
		assert.Equal(t, test.want, chr2Het.Admits(&test.r), "%+v", test.r)
	}

	all := Filter{}
	assert.True(t, all.Admits(&Record{Chrom: "chrM", Genotype: OtherGenotype, InDB: False}))

	notDB := Filter{InDB: False}
	assert.True(t, notDB.Admits(&Record{InDB: False}))
	assert.False(t, notDB.Admits(&Record{InDB: True}))
	assert.False(t, notDB.Admits(&Record{InDB: Unknown}))
}
