package telemetry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-realminvite/pkg/types"
)

// KeyPrefix 遥测在存储中的键前缀
var KeyPrefix = []byte("t/")

func (t *Tracker) persistLoop(ctx context.Context, ticker *clock.Ticker) {
	defer t.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.save(); err != nil {
				log.Warn("持久化节点遥测失败", "error", err)
			}
		}
	}
}

// save 写回所有节点的当前视图
func (t *Tracker) save() error {
	t.persistMu.Lock()
	defer t.persistMu.Unlock()

	snap := t.Snapshot()
	for id, entry := range snap {
		if err := t.store.PutJSON([]byte(id), entry); err != nil {
			return err
		}
	}
	log.Debug("节点遥测已持久化", "peers", len(snap))
	return nil
}

// load 从存储恢复历史数据
//
// 损坏的条目被跳过，不影响其它节点。
func (t *Tracker) load() (int, error) {
	loaded := 0
	err := t.store.ForEach(func(key, value []byte) error {
		var entry types.PeerTelemetry
		if err := json.Unmarshal(value, &entry); err != nil {
			log.Warn("跳过损坏的遥测条目", "peer", string(key), "error", err)
			return nil
		}

		t.mu.Lock()
		if _, ok := t.peers[string(key)]; !ok {
			t.peers[string(key)] = &peerState{
				lastSeen: time.Unix(entry.LastSeen, 0),
				duration: time.Duration(entry.ConnectionDuration) * time.Second,
			}
			loaded++
		}
		t.mu.Unlock()
		return nil
	})
	return loaded, err
}
