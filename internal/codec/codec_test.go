package codec_test

import (
	"testing"

	"github.com/aretw0/dicejourney/internal/codec"
	"github.com/aretw0/dicejourney/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConfig() *domain.Config {
	cfg := domain.NewConfig()
	cfg.Set("zeta", domain.Journey{ID: "zeta", Name: "Zeta", Rolls: []domain.Roll{{
		ID: "r", Name: "R", Dice: []domain.Die{{
			ID: "d", Value: 20, Count: 1, Success: domain.IntPtr(10),
			OnSuccess: &domain.Callback{Message: "yes", RollIDs: []string{"r"}},
		}},
	}}})
	cfg.Set("alpha", domain.Journey{ID: "alpha", Name: "Alpha", Rolls: []domain.Roll{{
		ID: "q", Name: "Q", Dice: []domain.Die{{
			ID: "d", Mode: domain.ModeRange, Value: 6, Count: 2,
			Ranges: []domain.Range{{ID: "x", Min: 2, Max: 12, Label: "all"}},
		}},
	}}})
	return cfg
}

func keys(cfg *domain.Config) []string {
	var out []string
	for pair := cfg.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []codec.Format{codec.JSON, codec.YAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := codec.Encode(sampleConfig(), format)
			require.NoError(t, err)

			got, err := codec.Decode(data, format)
			require.NoError(t, err)
			assert.Equal(t, []string{"zeta", "alpha"}, keys(got), "document order is preserved")

			want := sampleConfig()
			for _, id := range []string{"zeta", "alpha"} {
				w, _ := want.Get(id)
				g, _ := got.Get(id)
				assert.Equal(t, w, g)
			}
		})
	}
}

func TestDecode_LegacyRollID(t *testing.T) {
	doc := `{"j":{"id":"j","name":"J","rolls":[{"id":"a","name":"A","dice":[
		{"id":"d","value":6,"count":1,"success":3,"onSuccess":{"message":"m","rollId":"b"}}]}]}}`

	cfg, err := codec.Decode([]byte(doc), codec.JSON)
	require.NoError(t, err)
	j, _ := cfg.Get("j")
	assert.Equal(t, []string{"b"}, j.Rolls[0].Dice[0].OnSuccess.RollIDs)

	yamlDoc := "j:\n  id: j\n  rolls:\n    - id: a\n      dice:\n        - id: d\n          onFailure:\n            message: m\n            rollId: c\n            rollIds: [e]\n"
	cfg, err = codec.Decode([]byte(yamlDoc), codec.YAML)
	require.NoError(t, err)
	j, _ = cfg.Get("j")
	assert.Equal(t, []string{"c", "e"}, j.Rolls[0].Dice[0].OnFailure.RollIDs)
}

func TestDecode_Invalid(t *testing.T) {
	cases := map[string]struct {
		data   string
		format codec.Format
	}{
		"empty":      {"  ", codec.JSON},
		"json array": {`[1,2]`, codec.JSON},
		"bad json":   {`{"a":`, codec.JSON},
		"yaml list":  {"- a\n- b\n", codec.YAML},
		"bad die":    {"j:\n  rolls:\n    - dice:\n        - value: lots\n", codec.YAML},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Decode([]byte(tc.data), tc.format)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestFormats(t *testing.T) {
	assert.Equal(t, codec.YAML, codec.FormatForPath("trip.YML"))
	assert.Equal(t, codec.JSON, codec.FormatForPath("trip.txt"))

	f, err := codec.ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, codec.YAML, f)

	_, err = codec.ParseFormat("toml")
	assert.Error(t, err)
}
