package gameid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	ids := make(map[string]bool)
	for range 100 {
		id := New()
		require.NoError(t, Validate(id))
		assert.False(t, ids[id], "duplicate ID %s", id)
		ids[id] = true
	}
}

func TestSeededIsReproducible(t *testing.T) {
	t.Parallel()

	a, b := Seeded(42), Seeded(42)
	for range 5 {
		assert.Equal(t, a.Next(), b.Next())
	}
	assert.NotEqual(t, Seeded(42).Next(), Seeded(43).Next())

	first := Seeded(7)
	assert.NotEqual(t, first.Next(), first.Next())
}

func TestNilGenerator(t *testing.T) {
	t.Parallel()

	var g *Generator
	assert.NoError(t, Validate(g.Next()))
	assert.NoError(t, Validate((&Generator{}).Next()))
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "00000000000000000000000000", Encode(uuid.Nil))

	var full uuid.UUID
	for i := range full {
		full[i] = 0xff
	}
	assert.Equal(t, "7zzzzzzzzzzzzzzzzzzzzzzzzz", Encode(full))

	u := uuid.MustParse("01890a5d-ac96-774b-bcce-b302099a8057")
	id := Encode(u)
	got, err := Parse(id)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		wantErr string
	}{
		{"valid", "01h455vb4pex5vsknk084sn02q", ""},
		{"short", "01h455vb4pex5vsknk084sn02", "exactly 26"},
		{"long", "01h455vb4pex5vsknk084sn02qq", "exactly 26"},
		{"high first char", "81h455vb4pex5vsknk084sn02q", "first character"},
		{"excluded letter", "01h455vb4pex5vsknk084sn0iq", "invalid character"},
		{"upper case", "01H455VB4PEX5VSKNK084SN02Q", "invalid character"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	t.Parallel()

	_, err := Parse("nope")
	assert.Error(t, err)
}
