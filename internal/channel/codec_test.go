package channel

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memohai/agentcore/internal/identity"
)

func mustDM(t *testing.T, a, b string) Channel {
	t.Helper()
	c, err := NewDMChannel(identity.MustParse(a), identity.MustParse(b))
	require.NoError(t, err)
	return c
}

func TestSerializeCoin(t *testing.T) {
	c, err := NewCoinChannel(8453, "0x52908400098527886E0F7030069857D2E4169EE7")
	require.NoError(t, err)

	s, err := Serialize(c)
	require.NoError(t, err)
	assert.Equal(t, "coin:8453:0x52908400098527886E0F7030069857D2E4169EE7", s)
}

func TestSerializeDMPreservesCase(t *testing.T) {
	c := Channel{Kind: KindDM, First: "Bob", Second: "alice"}
	s, err := Serialize(c)
	require.NoError(t, err)
	assert.Equal(t, "dm:alice:Bob", s)
}

func TestSerializeDMSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"alice", "bob"},
		{"Bob", "alice"},
		{"3f2504e0-4f89-11d3-9a0c-0305e82c3301", "0x52908400098527886E0F7030069857D2E4169EE7"},
		{"same", "same"},
		{"Carol", "carol"},
	}
	for _, p := range pairs {
		ab, err := Serialize(Channel{Kind: KindDM, First: identity.Identity(p[0]), Second: identity.Identity(p[1])})
		require.NoError(t, err)
		ba, err := Serialize(Channel{Kind: KindDM, First: identity.Identity(p[1]), Second: identity.Identity(p[0])})
		require.NoError(t, err)
		assert.Equal(t, ab, ba, "pair %v", p)
	}
}

func TestNewDMChannelCanonical(t *testing.T) {
	assert.Equal(t, mustDM(t, "alice", "Bob"), mustDM(t, "Bob", "alice"))
	c := mustDM(t, "Bob", "alice")
	assert.Equal(t, identity.Identity("alice"), c.First)
	assert.Equal(t, identity.Identity("Bob"), c.Second)
}

func TestSerializeRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		in   Channel
	}{
		{name: "unknown kind", in: Channel{Kind: "group", Address: "x"}},
		{name: "empty kind", in: Channel{}},
		{name: "zero chain id", in: Channel{Kind: KindCoin, Address: "0xabc"}},
		{name: "negative chain id", in: Channel{Kind: KindCoin, ChainID: -1, Address: "0xabc"}},
		{name: "empty address", in: Channel{Kind: KindCoin, ChainID: 1}},
		{name: "address with delimiter", in: Channel{Kind: KindCoin, ChainID: 1, Address: "a:b"}},
		{name: "address with space", in: Channel{Kind: KindCoin, ChainID: 1, Address: "a b"}},
		{name: "address with nbsp", in: Channel{Kind: KindCoin, ChainID: 1, Address: "a\u00a0b"}},
		{name: "address with line separator", in: Channel{Kind: KindCoin, ChainID: 1, Address: "a\u2028b"}},
		{name: "address with control char", in: Channel{Kind: KindCoin, ChainID: 1, Address: "a\x01b"}},
		{name: "address with invalid utf8", in: Channel{Kind: KindCoin, ChainID: 1, Address: "a\xffb"}},
		{name: "coin with dm fields", in: Channel{Kind: KindCoin, ChainID: 1, Address: "x", First: "alice"}},
		{name: "dm missing second", in: Channel{Kind: KindDM, First: "alice"}},
		{name: "dm identity with delimiter", in: Channel{Kind: KindDM, First: "al:ice", Second: "bob"}},
		{name: "dm with coin fields", in: Channel{Kind: KindDM, First: "alice", Second: "bob", ChainID: 1}},
		{name: "dm identity with control char", in: Channel{Kind: KindDM, First: "al\x01ice", Second: "bob"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Serialize(tc.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidChannel), "got %v", err)
		})
	}
}

func TestDeserialize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Channel
	}{
		{
			name: "coin",
			in:   "coin:1:0xdead",
			want: Channel{Kind: KindCoin, ChainID: 1, Address: "0xdead"},
		},
		{
			name: "coin max chain id",
			in:   "coin:" + strconv.FormatInt(math.MaxInt64, 10) + ":addr",
			want: Channel{Kind: KindCoin, ChainID: math.MaxInt64, Address: "addr"},
		},
		{
			name: "dm canonical",
			in:   "dm:alice:Bob",
			want: Channel{Kind: KindDM, First: "alice", Second: "Bob"},
		},
		{
			name: "dm out of order is re-canonicalized",
			in:   "dm:Bob:alice",
			want: Channel{Kind: KindDM, First: "alice", Second: "Bob"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Deserialize(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDeserializeErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{name: "two fields", in: "coin:1", want: ErrInvalidChannelFormat},
		{name: "four fields", in: "dm:a:b:c", want: ErrInvalidChannelFormat},
		{name: "empty", in: "", want: ErrInvalidChannelFormat},
		{name: "unknown kind", in: "foo:1:2", want: ErrUnknownChannelKind},
		{name: "kind is case sensitive", in: "COIN:1:2", want: ErrUnknownChannelKind},
		{name: "non numeric chain id", in: "coin:abc:0xdead", want: ErrInvalidChannel},
		{name: "signed chain id", in: "coin:+1:0xdead", want: ErrInvalidChannel},
		{name: "fractional chain id", in: "coin:1.5:0xdead", want: ErrInvalidChannel},
		{name: "chain id overflow", in: "coin:9223372036854775808:0xdead", want: ErrInvalidChannel},
		{name: "zero chain id", in: "coin:0:0xdead", want: ErrInvalidChannel},
		{name: "empty address", in: "coin:1:", want: ErrInvalidChannel},
		{name: "address with nbsp", in: "coin:1:a\u00a0b", want: ErrInvalidChannel},
		{name: "address with line separator", in: "coin:1:a\u2028b", want: ErrInvalidChannel},
		{name: "address with control char", in: "coin:1:a\x01b", want: ErrInvalidChannel},
		{name: "address with invalid utf8", in: "coin:1:a\xffb", want: ErrInvalidChannel},
		{name: "empty first identity", in: "dm::bob", want: identity.ErrInvalidIdentity},
		{name: "empty second identity", in: "dm:alice:", want: identity.ErrInvalidIdentity},
		{name: "identity with space", in: "dm:al ice:bob", want: identity.ErrInvalidIdentity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Deserialize(tc.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "want %v, got %v", tc.want, err)
			assert.Equal(t, Channel{}, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	coins := []Channel{
		{Kind: KindCoin, ChainID: 1, Address: "0x52908400098527886E0F7030069857D2E4169EE7"},
		{Kind: KindCoin, ChainID: 8453, Address: "So11111111111111111111111111111111111111112"},
	}
	for _, c := range coins {
		s, err := Serialize(c)
		require.NoError(t, err)
		got, err := Deserialize(s)
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	dms := []Channel{
		{Kind: KindDM, First: "Bob", Second: "alice"},
		{Kind: KindDM, First: "alice", Second: "Bob"},
		{Kind: KindDM, First: "Zed", Second: "Zed"},
	}
	for _, c := range dms {
		s, err := Serialize(c)
		require.NoError(t, err)
		got, err := Deserialize(s)
		require.NoError(t, err)
		assert.Equal(t, c.Canonical(), got)
		assert.True(t, c.Equal(got))
	}
}

func TestParticipantAndPeer(t *testing.T) {
	c := mustDM(t, "Bob", "alice")
	assert.True(t, c.Participant("BOB"))
	assert.False(t, c.Participant("carol"))

	peer, ok := c.Peer("ALICE")
	require.True(t, ok)
	assert.Equal(t, identity.Identity("Bob"), peer)

	_, ok = c.Peer("carol")
	assert.False(t, ok)

	coin := Channel{Kind: KindCoin, ChainID: 1, Address: "x"}
	assert.False(t, coin.Participant("alice"))
	_, ok = coin.Peer("alice")
	assert.False(t, ok)
}

func TestTextAndJSONEncoding(t *testing.T) {
	type envelope struct {
		Channel Channel `json:"channel"`
	}
	raw, err := json.Marshal(envelope{Channel: Channel{Kind: KindDM, First: "Bob", Second: "alice"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"channel":"dm:alice:Bob"}`, string(raw))

	var decoded envelope
	require.NoError(t, json.Unmarshal([]byte(`{"channel":"dm:Bob:alice"}`), &decoded))
	assert.Equal(t, Channel{Kind: KindDM, First: "alice", Second: "Bob"}, decoded.Channel)

	err = json.Unmarshal([]byte(`{"channel":"coin:1"}`), &decoded)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidChannelFormat))

	_, err = json.Marshal(envelope{Channel: Channel{Kind: "group"}})
	require.Error(t, err)
}

func TestString(t *testing.T) {
	assert.Equal(t, "coin:1:x", Channel{Kind: KindCoin, ChainID: 1, Address: "x"}.String())
	assert.Empty(t, Channel{}.String())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("dm")
	require.NoError(t, err)
	assert.Equal(t, KindDM, k)

	_, err = ParseKind("group")
	assert.True(t, errors.Is(err, ErrUnknownChannelKind))
}
