package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeQuotedComma(t *testing.T) {
	rows := Decode("a,b\n1,\"x,y\"\n2,z")

	require.Len(t, rows, 2)
	assert.Equal(t, Row{"a": "1", "b": "x,y"}, rows[0])
	assert.Equal(t, Row{"a": "2", "b": "z"}, rows[1])
}

func TestDecodeEmptyAndHeaderOnly(t *testing.T) {
	assert.Empty(t, Decode(""))
	assert.Empty(t, Decode("   \n  "))
	assert.Empty(t, Decode("a,b"))
	assert.Empty(t, Decode("a,b\n"))
}

func TestDecodeNormalizesHeaders(t *testing.T) {
	rows := Decode("Episode ID, Bölüm Adı ,Option A\n3,Giriş,Evet")

	require.Len(t, rows, 1)
	assert.Equal(t, "3", rows[0]["episode_id"])
	assert.Equal(t, "Giriş", rows[0]["bölüm_adı"])
	assert.Equal(t, "Evet", rows[0]["option_a"])
}

func TestDecodeQuotedHeader(t *testing.T) {
	rows := Decode("\"Soru, Metin\",\"Doğru Cevap\",zorluk\nNe?,A,kolay")

	require.Len(t, rows, 1)
	assert.Equal(t, Row{"soru,_metin": "Ne?", "doğru_cevap": "A", "zorluk": "kolay"}, rows[0])
}

func TestDecodeShortAndLongRows(t *testing.T) {
	rows := Decode("a,b,c\n1,2\n1,2,3,4")

	require.Len(t, rows, 1)
	assert.Equal(t, Row{"a": "1", "b": "2", "c": "3"}, rows[0])
}

func TestDecodeTrimsCarriageReturns(t *testing.T) {
	rows := Decode("a,b\r\n1,2\r\n3,4\r\n")

	require.Len(t, rows, 2)
	assert.Equal(t, "2", rows[0]["b"])
	assert.Equal(t, "4", rows[1]["b"])
}

func TestRowLookup(t *testing.T) {
	row := Row{"episode_id": "", "id": "7", "bolum_no": "9"}

	v, ok := row.Lookup("episode_id", "id", "bolum_no")
	assert.True(t, ok)
	assert.Equal(t, "7", v)

	_, ok = row.Lookup("missing", "episode_id")
	assert.False(t, ok)
}
