// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"
	"time"

	ctxPkg "github.com/yeisme/photovault/pkg/context"
	"github.com/yeisme/photovault/pkg/internal/model"
	"github.com/yeisme/photovault/pkg/internal/service"
	"github.com/yeisme/photovault/pkg/internal/storage"
	"github.com/yeisme/photovault/pkg/log"
	"github.com/yeisme/photovault/pkg/scheduler"
)

// 远端删除失败或中途崩溃会留下孤儿对象，只清理落盘超过该时长的，
// 避免误删正在进行的上传.
const orphanMinAge = 24 * time.Hour

// 行为事件保留时长.
const analyticsRetention = 180 * 24 * time.Hour

// RegisterCronJobs 配置业务定时任务：
//   - 每天 03:30 清理对象存储中没有元数据对应的孤儿对象
//   - 每天 04:10 清理超过保留期的行为事件
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	// 将 storage manager 注入到 context，便于 service 使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	// 每天 03:30 孤儿对象清理
	_ = sched.AddCron(JobOrphanObjectSweep, CronOrphanObjectSweep, func(ctx context.Context) {
		runOrphanSweep(ctx, mgr)
	}, baseCtx)

	// 每天 04:10 行为事件清理
	_ = sched.AddCron(JobAnalyticsPrune, CronAnalyticsPrune, func(ctx context.Context) {
		runAnalyticsPrune(ctx)
	}, baseCtx)

	return nil
}

// runOrphanSweep 对比对象存储与图片元数据，删除没有记录对应且已落盘超过
// orphanMinAge 的对象。远端删除失败时元数据仍会被清理，该任务负责兜底.
func runOrphanSweep(ctx context.Context, mgr *storage.Manager) {
	l := log.Logger().With().Str("job", JobOrphanObjectSweep).Logger()

	obj := mgr.GetObjectStore()
	if obj == nil {
		l.Error().Msg("object store not initialized")
		return
	}

	dbc := mgr.GetDBClient()
	if dbc == nil || dbc.GetDB() == nil {
		l.Error().Msg("db not initialized")
		return
	}

	objects, err := obj.List(ctx, "collections/")
	if err != nil {
		l.Error().Err(err).Msg("list objects failed")
		return
	}

	var keys []string
	if err := dbc.GetDB().WithContext(ctx).
		Model(&model.Image{}).
		Pluck("storage_key", &keys).Error; err != nil {
		l.Error().Err(err).Msg("load storage keys failed")
		return
	}

	known := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		known[k] = struct{}{}
	}

	cutoff := time.Now().Add(-orphanMinAge)
	removed := 0

	for _, o := range objects {
		if _, ok := known[o.Key]; ok {
			continue
		}

		if o.LastModified.After(cutoff) {
			continue
		}

		if err := obj.Delete(ctx, o.Key); err != nil {
			l.Error().Err(err).Str("key", o.Key).Msg("delete orphan object failed")
			continue
		}

		removed++
	}

	if removed > 0 {
		l.Info().Int("removed", removed).Int("scanned", len(objects)).Msg("orphan objects swept")
	}
}

// runAnalyticsPrune 清理超过保留期的行为事件.
func runAnalyticsPrune(ctx context.Context) {
	l := log.Logger().With().Str("job", JobAnalyticsPrune).Logger()

	svc := service.NewAnalyticsService(ctx)

	cutoff := time.Now().Add(-analyticsRetention)

	n, err := svc.PruneOlderThan(ctx, cutoff)
	if err != nil {
		l.Error().Err(err).Msg("prune analytics events failed")
		return
	}

	if n > 0 {
		l.Info().Int64("removed", n).Time("cutoff", cutoff).Msg("analytics events pruned")
	}
}
