// Package storage 聚合应用使用的所有存储资源：对象存储、数据库、消息队列和键值缓存.
//
// Example:
//
// 初始化
//
//	 ctx := context.Background()
//	 mgr, err := storage.Init(ctx)
//
//		if err != nil {
//		    // 处理错误
//		}
//
// 获取存储客户端
//
//	objClient := mgr.GetObjectStore()
//	dbClient := mgr.GetDBClient()
package storage

import (
	"context"
	"sync"

	dbc "github.com/yeisme/photovault/pkg/internal/storage/db"
	kvc "github.com/yeisme/photovault/pkg/internal/storage/kv"
	mqc "github.com/yeisme/photovault/pkg/internal/storage/mq"
	"github.com/yeisme/photovault/pkg/internal/storage/objstore"
	nlog "github.com/yeisme/photovault/pkg/log"
)

// Manager 聚合所有存储资源.
// Obj 与 DB 为必需资源，初始化失败则启动失败；MQ 与 KV 为可选资源，
// 初始化失败时降级运行（事件发布与缓存被跳过）.
type Manager struct {
	Obj *objstore.Client
	DB  *dbc.Client
	MQ  *mqc.Client
	KV  *kvc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		m := &Manager{}

		// DB
		dbi, e := dbc.New(ctx)
		if e != nil {
			err = e
			return
		}

		m.DB = dbi

		// 对象存储（S3 或本地回退）
		obj, e := objstore.New(ctx)
		if e != nil {
			err = e
			return
		}

		m.Obj = obj

		// MQ 可选，失败降级
		if mqi, e := mqc.New(ctx); e != nil {
			nlog.Logger().Warn().Err(e).Msg("MQ 初始化失败，事件发布被禁用")
		} else {
			m.MQ = mqi
		}

		// KV 可选，失败降级
		if kvi, e := kvc.NewKVClient(ctx); e != nil {
			nlog.Logger().Warn().Err(e).Msg("KV 初始化失败，缓存被禁用")
		} else {
			m.KV = kvi
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetObjectStore 获取对象存储客户端.
func (m *Manager) GetObjectStore() *objstore.Client {
	return m.Obj
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetMQClient 获取 MQ 客户端，可能为 nil.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}

// GetKVClient 获取 KV 客户端，可能为 nil.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}
