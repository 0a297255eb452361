package jobs

// 任务名称常量，便于统一管理与引用.
const (
	JobOrphanObjectSweep = "storage.orphan_sweep"
	JobAnalyticsPrune    = "analytics.prune"
)

// Cron 表达式常量（可选，但推荐一并集中管理）.
const (
	CronOrphanObjectSweep = "30 3 * * *"
	CronAnalyticsPrune    = "10 4 * * *"
)
