package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
)

func TestSnapshotRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		list model.List
	}{
		{"nil", nil},
		{"empty", model.List{}},
		{"ordered", model.List{
			{ID: "b", Date: 1714816200000, Title: "Walk dog"},
			{ID: "a", Date: 1714816100000, Title: "Buy milk", Completed: true},
			{ID: "c", Date: 1714816300000, Title: "  spaced  ", Completed: false},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Encode(tt.list)
			require.NoError(t, err)
			got, err := Decode(b)
			require.NoError(t, err)
			assert.Equal(t, tt.list.Clone(), got)
		})
	}
}

func TestEncodeWireFormat(t *testing.T) {
	b, err := Encode(model.List{{ID: "x1", Date: 1700000000000, Title: "Buy milk", Completed: true}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"x1","date":1700000000000,"title":"Buy milk","completed":true}]`, string(b))

	b, err = Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestDecodeAcceptsForeignSnapshots(t *testing.T) {
	// Written by another client: extra fields and missing ones are tolerated.
	got, err := Decode([]byte(`[{"id":"1","title":"t","extra":42}]`))
	require.NoError(t, err)
	assert.Equal(t, model.List{{ID: "1", Title: "t"}}, got)
}
