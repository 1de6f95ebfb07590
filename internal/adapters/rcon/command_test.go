package rcon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddMarkerCommand(t *testing.T) {
	tests := []struct {
		name string
		spec MarkerSpec
		want string
	}{
		{
			name: "plain label",
			spec: MarkerSpec{Label: "Spawn Castle", X: 100, Y: 64, Z: -200, Icon: "star", World: "world"},
			want: `dmarker add "Spawn Castle" icon:star x:100 y:64 z:-200 world:world`,
		},
		{
			name: "embedded quotes cannot close the argument",
			spec: MarkerSpec{Label: `Bob's "Big" Base`, X: 1, Y: 64, Z: 2, Icon: "star", World: "world"},
			want: `dmarker add "Bob's 'Big' Base" icon:star x:1 y:64 z:2 world:world`,
		},
		{
			name: "injection attempt stays inside the label",
			spec: MarkerSpec{Label: "x\" world:nether\nop steve", X: 0, Y: 64, Z: 0, Icon: "star", World: "world"},
			want: `dmarker add "x' world:netherop steve" icon:star x:0 y:64 z:0 world:world`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMarkerCommand(tt.spec))
		})
	}
}

func TestDeleteMarkerCommand(t *testing.T) {
	assert.Equal(t, "dmarker delete id:marker_42", DeleteMarkerCommand("marker_42"))
}

func TestSanitizeLabel_StripsControlCharacters(t *testing.T) {
	assert.Equal(t, "ab", SanitizeLabel("a\tb\r\n"))
	assert.Equal(t, "Château", SanitizeLabel("Château"))
}
