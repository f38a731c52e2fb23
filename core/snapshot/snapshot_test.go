package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	s := Snapshot{"10.0.0.2": "a.example.com", "10.0.0.1": "b.example.com"}

	data, err := Encode(s)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"10.0.0.1\": \"b.example.com\",\n  \"10.0.0.2\": \"a.example.com\"\n}\n", string(data))

	back, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Snapshot
		corrupt bool
	}{
		{"Empty", "", Snapshot{}, false},
		{"Whitespace", " \n", Snapshot{}, false},
		{"Null", "null", Snapshot{}, false},
		{"EmptyObject", "{}", Snapshot{}, false},
		{"Garbage", "{not json", Snapshot{}, true},
		{"WrongShape", `["10.0.0.1"]`, Snapshot{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.input))
			if tt.corrupt {
				assert.ErrorIs(t, err, ErrCorrupt)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnapshot_CloneAndIPs(t *testing.T) {
	s := Snapshot{"10.0.0.9": "c", "10.0.0.1": "a"}
	c := s.Clone()
	c["10.0.0.5"] = "b"

	assert.Len(t, s, 2)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.5", "10.0.0.9"}, c.IPs())
	assert.Empty(t, Snapshot(nil).IPs())
}
