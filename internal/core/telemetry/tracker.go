// Package telemetry 实现节点连接遥测模块
//
// Telemetry 模块负责：
// - 记录节点连接/断开事件
// - 累计连接时长与最后在线时间
// - 为邀请链接的节点排序提供不可变快照
// - 可选地持久化到 BadgerDB
package telemetry

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-realminvite/internal/core/storage/kv"
	"github.com/dep2p/go-realminvite/pkg/types"
)

// ErrTrackerClosed 遥测服务已关闭
var ErrTrackerClosed = errors.New("telemetry tracker closed")

// ============================================================================
//                              peerState 节点状态
// ============================================================================

type peerState struct {
	lastSeen       time.Time
	duration       time.Duration
	connectedSince time.Time
	// 同一节点可能存在多条连接，计数归零时才结算时长
	conns int
}

func (s *peerState) connected() bool {
	return s.conns > 0
}

// ============================================================================
//                              Tracker 实现
// ============================================================================

// Tracker TelemetryRecorder 实现
type Tracker struct {
	clock   clock.Clock
	store   *kv.Store
	persist time.Duration

	peers map[string]*peerState
	mu    sync.RWMutex

	// persistMu 串行化写回与 Forget，避免已删除的节点被写回
	persistMu sync.Mutex

	running int32
	closed  int32
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Option Tracker 选项
type Option func(*Tracker)

// WithClock 设置时间源
func WithClock(c clock.Clock) Option {
	return func(t *Tracker) {
		if c != nil {
			t.clock = c
		}
	}
}

// WithStore 设置持久化存储与周期
//
// interval 为 0 时只在 Stop 时写回。
func WithStore(store *kv.Store, interval time.Duration) Option {
	return func(t *Tracker) {
		t.store = store
		t.persist = interval
	}
}

// NewTracker 创建遥测服务
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		clock: clock.New(),
		peers: make(map[string]*peerState),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ============================================================================
//                              生命周期
// ============================================================================

// Start 启动遥测服务
//
// 配置了存储时先加载历史数据，再启动周期持久化。
func (t *Tracker) Start(_ context.Context) error {
	if atomic.LoadInt32(&t.closed) == 1 {
		return ErrTrackerClosed
	}
	if !atomic.CompareAndSwapInt32(&t.running, 0, 1) {
		return nil
	}

	if t.store != nil {
		n, err := t.load()
		if err != nil {
			atomic.StoreInt32(&t.running, 0)
			return err
		}
		log.Debug("已加载节点遥测", "peers", n)
	}

	if t.store != nil && t.persist > 0 {
		// Fx OnStart 的 ctx 在返回后即被取消，后台循环使用独立 ctx
		ctx, cancel := context.WithCancel(context.Background())
		t.cancel = cancel
		t.wg.Add(1)
		go t.persistLoop(ctx, t.clock.Ticker(t.persist))
	}
	return nil
}

// Stop 停止遥测服务并写回数据
func (t *Tracker) Stop(_ context.Context) error {
	if !atomic.CompareAndSwapInt32(&t.closed, 0, 1) {
		return nil
	}
	if t.cancel != nil {
		t.cancel()
	}
	t.wg.Wait()

	var err error
	if t.store != nil && atomic.LoadInt32(&t.running) == 1 {
		err = t.save()
	}
	atomic.StoreInt32(&t.running, 0)
	return err
}

// ============================================================================
//                              事件记录
// ============================================================================

// Connected 记录与节点建立连接
func (t *Tracker) Connected(peerID string) {
	if peerID == "" {
		return
	}
	now := t.clock.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.peers[peerID]
	if !ok {
		st = &peerState{}
		t.peers[peerID] = st
	}
	if !st.connected() {
		st.connectedSince = now
	}
	st.conns++
	st.lastSeen = now
}

// Disconnected 记录与节点断开连接
//
// 未记录过连接的节点被忽略。
func (t *Tracker) Disconnected(peerID string) {
	now := t.clock.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.peers[peerID]
	if !ok || !st.connected() {
		return
	}
	st.conns--
	st.lastSeen = now
	if st.conns == 0 {
		st.duration += now.Sub(st.connectedSince)
		st.connectedSince = time.Time{}
	}
}

// Forget 删除节点的遥测数据
func (t *Tracker) Forget(peerID string) {
	t.persistMu.Lock()
	defer t.persistMu.Unlock()

	t.mu.Lock()
	delete(t.peers, peerID)
	t.mu.Unlock()

	if t.store != nil && peerID != "" {
		if err := t.store.Delete([]byte(peerID)); err != nil {
			log.Warn("删除节点遥测失败", "peer", peerID, "error", err)
		}
	}
}

// Snapshot 返回当前遥测的不可变副本
//
// 仍在连接中的节点按当前时刻结算。
func (t *Tracker) Snapshot() types.TelemetrySnapshot {
	now := t.clock.Now()

	t.mu.RLock()
	defer t.mu.RUnlock()

	snap := make(types.TelemetrySnapshot, len(t.peers))
	for id, st := range t.peers {
		snap[id] = st.view(id, now)
	}
	return snap
}

func (s *peerState) view(id string, now time.Time) types.PeerTelemetry {
	lastSeen := s.lastSeen
	duration := s.duration
	if s.connected() {
		lastSeen = now
		duration += now.Sub(s.connectedSince)
	}
	return types.PeerTelemetry{
		PeerID:             id,
		LastSeen:           lastSeen.Unix(),
		ConnectionDuration: int64(duration / time.Second),
	}
}
