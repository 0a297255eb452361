// Package service 实现相册服务的业务逻辑层.
// 每个领域服务从请求 context 注入的 storage.Manager 获取所需客户端.
package service

import (
	"context"

	ctxPkg "github.com/yeisme/photovault/pkg/context"
	"github.com/yeisme/photovault/pkg/internal/storage/db"
	"github.com/yeisme/photovault/pkg/internal/storage/kv"
	"github.com/yeisme/photovault/pkg/internal/storage/mq"
	"github.com/yeisme/photovault/pkg/internal/storage/objstore"
)

// clients 聚合各领域服务共享的存储客户端.
// mq 与 kv 可能为 nil，调用方需做降级处理.
type clients struct {
	db  *db.Client
	obj *objstore.Client
	mq  *mq.Client
	kv  *kv.Client
}

func clientsFromContext(c context.Context) clients {
	return clients{
		db:  ctxPkg.GetDBClient(c),
		obj: ctxPkg.GetObjectStore(c),
		mq:  ctxPkg.GetMQClient(c),
		kv:  ctxPkg.GetKVClient(c),
	}
}
