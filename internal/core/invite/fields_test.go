package invite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-realminvite/pkg/types"
)

// TestValidateOnionAddress_Boundary 测试 onion 地址长度与大小写边界
func TestValidateOnionAddress_Boundary(t *testing.T) {
	valid := testOnions[0]
	require.Len(t, valid, 56)

	assert.NoError(t, ValidateOnionAddress(testPeerIDs[0], valid))
	assert.Error(t, ValidateOnionAddress(testPeerIDs[0], valid[:55]), "55 chars")
	assert.Error(t, ValidateOnionAddress(testPeerIDs[0], valid+"a"), "57 chars")
	assert.Error(t, ValidateOnionAddress(testPeerIDs[0], strings.ToUpper(valid[:1])+valid[1:]), "uppercase")
	assert.Error(t, ValidateOnionAddress(testPeerIDs[0], valid[:55]+"-"), "punctuation")
	assert.Error(t, ValidateOnionAddress(testPeerIDs[0], valid+".onion"), "suffix")

	// 错误以 peerID 作为键报告
	var fe *types.FieldFormatError
	require.ErrorAs(t, ValidateOnionAddress(testPeerIDs[0], valid[:55]), &fe)
	assert.Equal(t, testPeerIDs[0], fe.Key)
	assert.Equal(t, valid[:55], fe.Value)

	require.ErrorAs(t, ValidatePair(types.InvitationPair{PeerID: testPeerIDs[1], OnionAddress: "bad"}), &fe)
	assert.Equal(t, testPeerIDs[1], fe.Key)
}

// TestValidatePeerID_Boundary 测试 PeerID 长度边界
func TestValidatePeerID_Boundary(t *testing.T) {
	valid := testPeerIDs[0]
	require.Len(t, valid, 46)

	assert.NoError(t, ValidatePeerID(valid))
	assert.Error(t, ValidatePeerID(valid[:45]), "45 chars")
	assert.Error(t, ValidatePeerID(valid+"x"), "47 chars")
	assert.Error(t, ValidatePeerID(valid[:45]+"_"), "non alphanumeric")

	err := ValidatePeerID("")
	assert.ErrorIs(t, err, types.ErrInvalidField)
	assert.ErrorIs(t, err, types.ErrInvalidInvitation)
}

// TestValidators_Idempotent 测试校验函数的纯函数性
func TestValidators_Idempotent(t *testing.T) {
	pskOK := validatePSK(types.NewPSKValidator(32))
	cases := []struct {
		name     string
		validate ValidateFunc
		value    string
	}{
		{"psk", pskOK, testPSK},
		{"owner", validateOwnerIdentity, testOwner},
		{"communityName", validateCommunityName, "Rockets Team-2"},
		{"seed", validateSeed, testSeed},
		{"authData", validateAuthData, testAuthData},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first, err := tc.validate(tc.value, nil)
			require.NoError(t, err)
			second, err := tc.validate(tc.value, nil)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

// TestValidatePSK_DelegatesToPredicate 测试 PSK 只交给外部谓词判断
func TestValidatePSK_DelegatesToPredicate(t *testing.T) {
	var seen []string
	validate := validatePSK(func(psk string) bool {
		seen = append(seen, psk)
		return psk == "opaque"
	})

	frag, err := validate("opaque", nil)
	require.NoError(t, err)
	assert.Equal(t, Fragment{FieldPSK: "opaque"}, frag)

	_, err = validate("other", nil)
	assert.Error(t, err)

	_, err = validate("", nil)
	assert.Error(t, err)
	assert.Equal(t, []string{"opaque", "other"}, seen, "empty value never reaches the predicate")

	_, err = validatePSK(nil)("opaque", nil)
	assert.Error(t, err, "nil predicate rejects everything")
}

// TestValidateSeed 测试种子格式
func TestValidateSeed(t *testing.T) {
	_, err := validateSeed(testSeed, nil)
	assert.NoError(t, err)

	for _, bad := range []string{testSeed[:15], testSeed + "A", "5GpnEVMTEx3Fy9J_", ""} {
		_, err := validateSeed(bad, nil)
		assert.Error(t, err, bad)
	}
}

// TestValidateCommunityName 测试社区名称字符集
func TestValidateCommunityName(t *testing.T) {
	for _, ok := range []string{"Rockets", "rockets team", "a-b-c", "42"} {
		_, err := validateCommunityName(ok, nil)
		assert.NoError(t, err, ok)
	}
	for _, bad := range []string{"", "rockets!", "名字", "a&b"} {
		_, err := validateCommunityName(bad, nil)
		assert.Error(t, err, bad)
	}
}

// TestValidateAuthData 测试 authData 字符集检查与解码处理
func TestValidateAuthData(t *testing.T) {
	frag, err := validateAuthData(testAuthData, decodeAuthData)
	require.NoError(t, err)
	assert.Equal(t, "c=Rockets&s="+testSeed, frag[FieldAuthData])

	// padding 可选
	frag, err = validateAuthData(testAuthData+"==", decodeAuthData)
	require.NoError(t, err)
	assert.Equal(t, "c=Rockets&s="+testSeed, frag[FieldAuthData])

	_, err = validateAuthData("abc+def", decodeAuthData)
	assert.Error(t, err, "std alphabet is not accepted")

	_, err = validateAuthData("a", decodeAuthData)
	assert.Error(t, err, "truncated base64")
}

// TestAuthDataCodec 测试 authData 编解码互逆
func TestAuthDataCodec(t *testing.T) {
	query := "c=Rockets+Team&s=" + testSeed
	encoded := encodeAuthData(query)
	assert.NotContains(t, encoded, "=")

	decoded, err := decodeAuthData(encoded)
	require.NoError(t, err)
	assert.Equal(t, query, decoded)
	assert.Equal(t, testAuthData, encodeAuthData("c=Rockets&s="+testSeed))
}
