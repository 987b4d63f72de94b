package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"stores_api_v1/internal/repository"
)

// ==================== 黑名单清理任务 ====================

// BlocklistTask 定期清理内存黑名单里已过期的条目
// Redis 后端自带 TTL，清理是空操作
type BlocklistTask struct {
	blocklist repository.TokenBlocklist
	log       *zap.Logger
	cron      *cron.Cron
}

// NewBlocklistTask 创建黑名单清理任务
func NewBlocklistTask(blocklist repository.TokenBlocklist, log *zap.Logger) *BlocklistTask {
	return &BlocklistTask{
		blocklist: blocklist,
		log:       log,
		cron:      cron.New(),
	}
}

// Start 启动定时任务，每 10 分钟清理一次
func (t *BlocklistTask) Start() {
	t.cron.AddFunc("@every 10m", t.run)
	t.cron.Start()
}

// Stop 停止定时任务
func (t *BlocklistTask) Stop() {
	t.cron.Stop()
}

func (t *BlocklistTask) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	purged, err := t.blocklist.PurgeExpired(ctx)
	if err != nil {
		t.log.Warn("blocklist purge failed", zap.Error(err))
		return
	}
	if purged > 0 {
		t.log.Info("blocklist purged", zap.Int("entries", purged))
	}
}
