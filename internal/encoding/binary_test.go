package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/poissondisk/internal/encoding"
)

func TestKeyLayout(t *testing.T) {
	cases := []struct {
		name   string
		depth  int
		coords []int
		want   []byte
	}{
		{"Origin", 0, []int{0, 0}, []byte{0, 0, 0}},
		{"Deep", 17, []int{1 << 20, 3}, []byte{17, 0x80, 0x80, 0x40, 3}},
		{"HighDim", 2, []int{1, 2, 3, 4, 5, 300}, []byte{2, 1, 2, 3, 4, 5, 0xac, 0x02}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, string(tc.want), encoding.Key(tc.depth, tc.coords))
		})
	}
}

func TestKeyDistinct(t *testing.T) {
	// same digits, different split between depth & axes
	assert.NotEqual(t, encoding.Key(1, []int{2, 3}), encoding.Key(2, []int{1, 3}))
	assert.NotEqual(t, encoding.Key(0, []int{128, 0}), encoding.Key(0, []int{0, 128}))
	assert.Equal(t, encoding.Key(4, []int{9, 9}), string(encoding.AppendKey(nil, 4, []int{9, 9})))
}

func TestAppendKeyReusesBuffer(t *testing.T) {
	buf := make([]byte, 0, 16)
	buf = encoding.AppendKey(buf, 3, []int{1, 2})
	require.Equal(t, encoding.Key(3, []int{1, 2}), string(buf))

	// previous contents are overwritten, not appended to
	buf = encoding.AppendKey(buf, 1, []int{7})
	assert.Equal(t, encoding.Key(1, []int{7}), string(buf))
}
