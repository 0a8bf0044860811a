package invite

import (
	"fmt"
	"strings"

	"github.com/dep2p/go-realminvite/pkg/types"
)

const (
	testPSK   = "Iz7fpYyEhHcS6RFXJTOQfcRnccKvAizqB2a0ItRPMeU="
	testOwner = "0489a3b1e8c2d7f0aa11bb22cc33dd44ee55ff6677889900aabbccddeeff00112233"
	testSeed  = "5GpnEVMTEx3Fy9JK"
	testName  = "Rockets"

	// base64url("c=Rockets&s=5GpnEVMTEx3Fy9JK")
	testAuthData = "Yz1Sb2NrZXRzJnM9NUdwbkVWTVRFeDNGeTlKSw"

	testBaseURL = "https://tryquiet.org/join"
)

var testPeerIDs = []string{
	"QmezmET248XqH8VZFUMbEiw5sbiBJCbn2kEmR8tTC4Eyv5",
	"QmVSbC2t7EN59erRtZ2MkD73C6N5HJ5xq5ieZc1mzmyfCt",
	"QmSKUACzWJ9fSgEaakhJhHzjbgXjbF1iRnHYALAiyzGdGY",
	"QmdhLMaoS3efnK65ZKikzn8Nydac46L3nV5KPGbfiXYnNm",
	"QmZczRcE9H4UVXBQC9nq8wJZ1bqMkXSqHokfdUFyNLNXNY",
	"QmTS53HbMygtx16gP9bvYETGKFYHJRGAzbNGW2H9MR7u7P",
}

var testOnions = []string{
	"p3vghqmvj5sjvm3bjoguh7n6kjxqdzc4ccwoj27sjynmzovie4iagaic",
	"xofgiiy2wzgnyfxsjy7lcxf6aqoajclfbi7m7vzxlbveqo2r6rdagaic",
	"wsrnrijnxvsxuzx7pbmy4v63mmqhdgk2wyc3j4z4p6uarhhm36zagaic",
	"wtht5ptpxa67mnbng4ymlbcej55pudpctonjakjug2tfmdf6rigqgaic",
	"7ui23lnhpswm4lkbhs7tnjvtu3t3pmmp3wyseiyk6qiwryocnc5qgaic",
	"dr3h3cn2pfovnfw3lsyo5qsvtrllixirgymg3ing7tyoh5ryieeagaic",
}

// opaquePeerIDs 格式合法但不是 multihash 的节点 ID
var opaquePeerIDs = []string{
	strings.Repeat("0", 46),
	"Qm" + strings.Repeat("l", 44),
}

func opaqueAddr(i int) string {
	return fmt.Sprintf("/dns4/%s.onion/tcp/80/ws/p2p/%s", testOnions[i], opaquePeerIDs[i])
}

func testPair(i int) types.InvitationPair {
	return types.InvitationPair{PeerID: testPeerIDs[i], OnionAddress: testOnions[i]}
}

func testAddr(i int) string {
	return fmt.Sprintf("/dns4/%s.onion/tcp/80/ws/p2p/%s", testOnions[i], testPeerIDs[i])
}

func testAddrs(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = testAddr(i)
	}
	return out
}

// link 以 key=value 片段拼接链接
func link(parts ...string) string {
	return testBaseURL + "?" + strings.Join(parts, "&")
}

func pairParam(i int) string {
	return testPeerIDs[i] + "=" + testOnions[i]
}

func pskParam() string {
	return "k=" + strings.NewReplacer("+", "%2B", "/", "%2F", "=", "%3D").Replace(testPSK)
}

func newTestRegistry() *Registry {
	return NewRegistry(types.NewPSKValidator(types.DefaultPSKSize))
}

func newTestDecoder() *Decoder {
	return NewDecoder(newTestRegistry(), DefaultMaxDepth)
}
